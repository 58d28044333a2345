package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Exit codes of the SAT competition convention
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

type outputFormat int

const (
	// "s SATISFIABLE" and "v ..." lines on standard output, DIMACS on standard input
	competitionFormat outputFormat = iota
	// DIMACS and result passed as files, result is "SAT\n<literals> 0"
	minisatFormat
	// DIMACS passed as a file, competition output on standard output
	fileInputFormat
)

// externalSolver drives a solver binary through DIMACS. The budget is enforced
// by killing the process; a killed process counts as Unknown.
type externalSolver struct {
	name   string
	path   string
	flags  []string
	format outputFormat
}

func newExternalSolver(name, path string, format outputFormat, flags ...string) *externalSolver {
	if path == "" {
		path = name
	}
	return &externalSolver{
		name:   name,
		path:   path,
		flags:  flags,
		format: format,
	}
}

func (solver *externalSolver) Solve(ctx context.Context, instance SAT, budget time.Duration) (Result, error) {
	budget = effectiveBudget(ctx, budget)
	if budget <= 0 {
		return Result{Status: Unknown}, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	dimacs := instance.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	var (
		solution SATSolution
		status   Status
		err      error
	)
	switch solver.format {
	case minisatFormat:
		status, solution, err = solver.runWithFiles(runCtx, dimacs)
	case fileInputFormat:
		status, solution, err = solver.runWithInputFile(runCtx, dimacs)
	default:
		status, solution, err = solver.runWithPipes(runCtx, dimacs)
	}

	if runCtx.Err() != nil {
		return Result{Status: Unknown}, nil
	} else if err != nil {
		return Result{}, err
	}

	if status != Satisfiable {
		return Result{Status: status}, nil
	}
	return Result{Status: Satisfiable, Assignment: NewAssignment(instance.Variables, solution)}, nil
}

func (solver *externalSolver) runWithPipes(ctx context.Context, dimacs string) (Status, SATSolution, error) {
	cmd := exec.CommandContext(ctx, solver.path, solver.flags...)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	status, err := solver.exitStatus(cmd, err, stderr.String())
	if err != nil || status != Satisfiable {
		return status, nil, err
	}

	solution, err := parseSolution(stdOut.String())
	if err != nil {
		return Unknown, nil, fmt.Errorf("%w: %v output: %v", ErrSolverFailure, solver.name, err)
	}
	return Satisfiable, solution, nil
}

func (solver *externalSolver) runWithInputFile(ctx context.Context, dimacs string) (Status, SATSolution, error) {
	inputTempFile, err := writeDimacs(dimacs)
	if err != nil {
		return Unknown, nil, err
	}
	defer os.Remove(inputTempFile)

	args := append(append([]string{}, solver.flags...), inputTempFile)
	cmd := exec.CommandContext(ctx, solver.path, args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	status, err := solver.exitStatus(cmd, cmd.Run(), stderr.String())
	if err != nil || status != Satisfiable {
		return status, nil, err
	}

	solution, err := parseSolution(stdOut.String())
	if err != nil {
		return Unknown, nil, fmt.Errorf("%w: %v output: %v", ErrSolverFailure, solver.name, err)
	}
	return Satisfiable, solution, nil
}

// writeDimacs stores dimacs in a temporary file and returns its name.
func writeDimacs(dimacs string) (string, error) {
	file, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := file.WriteString(dimacs); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return file.Name(), nil
}

func (solver *externalSolver) runWithFiles(ctx context.Context, dimacs string) (Status, SATSolution, error) {
	inputTempFile, err := writeDimacs(dimacs)
	if err != nil {
		return Unknown, nil, err
	}
	defer os.Remove(inputTempFile) // Ensure the file is removed after execution

	outputTempFile, err := os.CreateTemp("", solver.name+"_output-*.txt")
	if err != nil {
		return Unknown, nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(outputTempFile.Name())
	defer outputTempFile.Close()

	args := append(append([]string{}, solver.flags...), inputTempFile, outputTempFile.Name())
	cmd := exec.CommandContext(ctx, solver.path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	status, err := solver.exitStatus(cmd, cmd.Run(), stderr.String())
	if err != nil || status != Satisfiable {
		return status, nil, err
	}

	output, err := os.ReadFile(outputTempFile.Name())
	if err != nil {
		return Unknown, nil, fmt.Errorf("failed to read output file: %w", err)
	}
	solution, err := parseMinisatSolution(string(output))
	if err != nil {
		return Unknown, nil, fmt.Errorf("%w: %v output: %v", ErrSolverFailure, solver.name, err)
	}
	return Satisfiable, solution, nil
}

// exitStatus interprets the exit code: 10 stands for satisfiable, 20 for
// unsatisfiable and 0 for an indeterminate answer.
func (solver *externalSolver) exitStatus(cmd *exec.Cmd, err error, stderr string) (Status, error) {
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Unknown, fmt.Errorf("%w: cannot run %v: %v", ErrSolverFailure, solver.name, err)
	}

	switch code := cmd.ProcessState.ExitCode(); code {
	case exitSatisfiable:
		return Satisfiable, nil
	case exitUnsatisfiable:
		return Unsatisfiable, nil
	case 0:
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("%w: an error occurred during %v execution: exit code %d: %v", ErrSolverFailure, solver.name, code, stderr)
	}
}
