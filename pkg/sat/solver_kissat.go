package sat

func NewKissatSolver(path string) SATSolver {
	return newExternalSolver("kissat", path, competitionFormat, "-q", "--relaxed")
}
