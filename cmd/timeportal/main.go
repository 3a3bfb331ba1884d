package main

import (
	"os"

	"github.com/jask/timeportal/cmd/timeportal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
