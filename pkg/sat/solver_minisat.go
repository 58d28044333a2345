package sat

func NewMinisatSolver(path string) SATSolver {
	return newExternalSolver("minisat", path, minisatFormat, "-verb=0")
}
