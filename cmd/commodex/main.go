// Command commodex generates synthetic commodity datasets and validates
// them against the contract declared in a spec document.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roach88/commodex/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	// Command errors have already been reported through the output formatter.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(stderr, "commodex:", err)
	}
	return cli.GetExitCode(err)
}
