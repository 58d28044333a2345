package sat

func NewSlimeSolver(path string) SATSolver {
	return newExternalSolver("slime", path, fileInputFormat)
}
