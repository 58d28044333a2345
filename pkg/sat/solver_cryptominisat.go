package sat

// cryptominisat prints "s INDETERMINATE" with exit code 0 when it gives up,
// which the exit code handling already maps to Unknown.
func NewCryptominisatSolver(path string) SATSolver {
	return newExternalSolver("cryptominisat", path, competitionFormat, "--verb", "0")
}
