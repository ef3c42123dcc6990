package main

import (
	"context"
	"fmt"
	"os"

	"github.com/r3c/creep/pkg/cli"
	"github.com/r3c/creep/pkg/console"
)

func main() {
	root := cli.NewRootCommand()

	if err := root.ExecuteContext(context.Background()); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(msg))
		}
		os.Exit(1)
	}
}
