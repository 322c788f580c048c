package main

import (
	"os"

	"github.com/sreekanth370/gammapy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
