package main

import (
	"os"

	"github.com/T1mof/review-tracker/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
