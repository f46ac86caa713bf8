package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/tless/internal/cli"
	"github.com/macropower/tless/pkg/version"
)

func main() {
	err := fang.Execute(context.Background(), cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		os.Exit(1)
	}
}
