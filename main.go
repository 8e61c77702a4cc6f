package main

import (
	"os"

	"github.com/abhisek/wordfill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
