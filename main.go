package main

import (
	"os"

	"github.com/abhisek/tracetutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
