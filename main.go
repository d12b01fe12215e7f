package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"twodo/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "twodo:", err)
		os.Exit(1)
	}
}
