package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spudtrooper/bilifollow/cli"
	"github.com/spudtrooper/goutil/check"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	check.Err(cli.Main(ctx))
}
