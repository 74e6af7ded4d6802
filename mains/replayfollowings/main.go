// Command replayfollowings follows every account listed in followings.json
// with the [auto_follow_credential] account.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/spudtrooper/bilifollow/cli"
	"github.com/spudtrooper/goutil/check"
)

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	check.Err(cli.Follow(ctx))
}
