package main

import (
	"os"

	"github.com/risqcapital/hcl2go/cmd/hcl2/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
