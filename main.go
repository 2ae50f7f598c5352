package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	cli "github.com/jawher/mow.cli"
	"github.com/mkbook/coverbuild/build"
)

func main() {
	verbose := false
	quiet := false
	trial := false
	arg1 := ""
	arg2 := ""

	app := cli.App("coverbuild", "Paperback book cover build driver")
	app.Spec = "[-v] [-q] [-t] [ARG1 [ARG2]]"
	app.BoolOptPtr(&verbose, "v verbose", false, "echo each command line before running it")
	app.BoolOptPtr(&quiet, "q quiet", false, "suppress progress messages")
	app.BoolOptPtr(&trial, "t trial", false, "trial run: print commands instead of executing them")
	app.StringArgPtr(&arg1, "ARG1", "", "reserved")
	app.StringArgPtr(&arg2, "ARG2", "", "reserved")
	app.Version("V version", "coverbuild "+app_version())

	app.Action = func() {
		if quiet {
			log.SetOutput(io.Discard)
		}

		root, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "coverbuild: %v\n", err)
			cli.Exit(1)
		}

		p := &build.Pipeline{
			Root:    root,
			Trial:   trial,
			Verbose: verbose,
		}

		err = p.Run()
		if err == nil {
			return
		}

		var inputErr *build.InputError
		var stepErr *build.StepError
		switch {
		case errors.As(err, &inputErr):
			// precondition messages honor quiet mode
			log.Printf("fatal: %v\n", err)
			cli.Exit(build.ExitBadInput)
		case errors.As(err, &stepErr):
			// strict step failures are reported even in quiet mode
			fmt.Fprintf(os.Stderr, "coverbuild: %v\n", err)
			cli.Exit(stepErr.Status)
		default:
			fmt.Fprintf(os.Stderr, "coverbuild: %v\n", err)
			cli.Exit(1)
		}
	}

	app.Run(os.Args)
}
