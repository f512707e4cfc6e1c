package main

import (
	"os"

	"github.com/ppiankov/evidentia/internal/cli"
)

func main() {
	os.Exit(cli.HandleError(cli.Execute(), os.Stdout, os.Stderr))
}
