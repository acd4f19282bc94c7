package main

import (
	"os"

	"github.com/adidahl/techlingo-agent-framework/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
