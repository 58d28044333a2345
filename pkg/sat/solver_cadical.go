package sat

func NewCadicalSolver(path string) SATSolver {
	return newExternalSolver("cadical", path, competitionFormat, "-q")
}
