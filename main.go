package main

import (
	"os"

	"github.com/dsisolutions/shopsched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
