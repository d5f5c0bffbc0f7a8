package main

import (
	"os"

	"inscope/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
