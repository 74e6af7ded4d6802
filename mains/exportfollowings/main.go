// Command exportfollowings writes the followings of the [download_credential]
// account to followings.json.
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
	check.Err(cli.Export(ctx))
}
