package main

import (
	"context"
	"os"

	"coopledger/internal/cli"
	"coopledger/internal/commands"
)

func main() {
	ctx, stop := cli.SignalContext(context.Background())
	err := commands.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
