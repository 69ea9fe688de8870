package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tensorplex-labs/taocli/internal/cli"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
)

func main() {
	app := cli.NewApp()
	root := cli.NewRootCmd(app)

	if err := root.Execute(); err != nil {
		// A declined confirmation is a clean cancellation, not a fault.
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
