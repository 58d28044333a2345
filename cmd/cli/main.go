package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes follow the SAT competition: 10 when every instance got a
// schedule, 20 when one was proven infeasible. 15 flags a record or schedule
// that failed verification.
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
	exitInvalid       = 15
)

type exitError struct {
	code int
}

func (err *exitError) Error() string {
	return fmt.Sprintf("exit status %d", err.code)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, out, errOut io.Writer) int {
	root := newRootCommand(out)
	root.SetArgs(args)
	root.SetErr(errOut)

	err := root.Execute()
	var exit *exitError
	switch {
	case errors.As(err, &exit):
		return exit.code
	case err != nil:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "tournament",
		Short:         "Round-robin tournament scheduling on SAT solvers",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(out)
	root.AddCommand(
		newSolveCommand(out),
		newCheckCommand(out),
		newReportCommand(out),
	)
	return root
}
