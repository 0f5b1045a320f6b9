package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/rolodex/cmd"
	"github.com/thenoetrevino/rolodex/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Command errors were already reported through the output formatter
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	_, code := cli.Classify(err)
	os.Exit(code)
}
