package sat

// glucose-simp shares the minisat command line and result file.
func NewGlucoseSolver(path string) SATSolver {
	if path == "" {
		path = "glucose-simp"
	}
	return newExternalSolver("glucose", path, minisatFormat, "-verb=0")
}
