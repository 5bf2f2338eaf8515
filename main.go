package main

import (
	"os"

	"github.com/firefly-engineering/golden/cmd"
	"github.com/firefly-engineering/golden/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
