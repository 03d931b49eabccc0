package main

import (
	"os"

	"github.com/niels/pre-commit-checkstyle/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
