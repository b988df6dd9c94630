package main

import (
	"context"
	"os"

	"github.com/nero7007/Professional-To-Do-List/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
