package main

import (
	"context"
	"os"

	"github.com/run-with-secrets/run-with-secrets/internal/interfaces/cli"
	"github.com/run-with-secrets/run-with-secrets/internal/interfaces/di"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], di.Options{}))
}
