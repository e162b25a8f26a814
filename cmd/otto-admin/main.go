package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/otto8-ai/otto-admin/cmd/commands"
	"github.com/otto8-ai/otto-admin/internal/cli"
)

// version is set during build with -ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		cli.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
