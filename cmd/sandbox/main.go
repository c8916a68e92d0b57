package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rigid2d/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCommand(runWindow))
	stop()
	os.Exit(code)
}
