package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spudtrooper/bilifollow/api"
	"github.com/spudtrooper/bilifollow/config"
	"github.com/spudtrooper/bilifollow/followings"
	"github.com/spudtrooper/bilifollow/log"
	"github.com/spudtrooper/bilifollow/transfer"
	"github.com/spudtrooper/goutil/flags"
	"github.com/spudtrooper/goutil/formatstruct"
	"github.com/spudtrooper/goutil/or"
	"github.com/spudtrooper/goutil/sets"
)

var (
	actions        = flag.String("actions", "", "comma-delimited list of actions to run")
	configFile     = flag.String("config", config.DefaultFile, "TOML file holding both credentials")
	followingsFile = flags.String("followings_file", "JSON file the followings are exported to and replayed from")
	pageSize       = flag.Int("page_size", 0, "followings per page when exporting")
	pagePause      = flag.Duration("page_pause", time.Second, "pause between pages when exporting")
	followPause    = flag.Duration("follow_pause", 3*time.Second, "pause between follows")
	retryPause     = flag.Duration("retry_pause", 10*time.Second, "pause before retrying a failed follow")
	followRetries  = flag.Int("follow_retries", 0, "extra attempts for a failed follow")
	checkRelation  = flags.Bool("check_relation", "check the relation before following and skip accounts already followed")
	apiHost        = flag.String("api_host", "", "API host; empty uses the platform's")
	debug          = flags.Bool("debug", "print every API response")
	clientStats    = flags.Bool("client_stats", "print per-route request timings at exit")
)

// runSettings are the values a run uses. A flag given on the command line
// beats the config's [settings], which beats the flag's default.
type runSettings struct {
	followingsFile string
	pageSize       int
	pagePause      time.Duration
	followPause    time.Duration
	retryPause     time.Duration
	followRetries  int
	checkRelation  bool
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	res := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		res[f.Name] = true
	})
	return res
}

func resolveSettings(s config.Settings, set map[string]bool) runSettings {
	duration := func(name string, flagVal time.Duration, cfgVal config.Duration) time.Duration {
		if set[name] || !cfgVal.IsSet() {
			return flagVal
		}
		return cfgVal.Duration
	}
	res := runSettings{
		followingsFile: or.String(*followingsFile, or.String(s.FollowingsFile, followings.DefaultFile)),
		pageSize:       *pageSize,
		pagePause:      duration("page_pause", *pagePause, s.PagePause),
		followPause:    duration("follow_pause", *followPause, s.FollowPause),
		retryPause:     duration("retry_pause", *retryPause, s.RetryPause),
		followRetries:  s.FollowRetries,
		checkRelation:  s.CheckRelation,
	}
	if set["follow_retries"] {
		res.followRetries = *followRetries
	}
	if set["check_relation"] {
		res.checkRelation = *checkRelation
	}
	return res
}

func absPath(f string) string {
	if abs, err := filepath.Abs(f); err == nil {
		return abs
	}
	return f
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded config from %s", absPath(cfg.Path()))
	return cfg, nil
}

func makeClient(ctx context.Context, cfg *config.Config, section string) (*api.Client, api.NavInfo, error) {
	cred, err := cfg.Credential(section)
	if err != nil {
		return nil, api.NavInfo{}, err
	}
	client := api.MakeClient(cred,
		api.MakeClientHost(*apiHost),
		api.MakeClientDebugFlag(debug),
		api.MakeClientStatsFlag(clientStats))
	log.Printf("verifying the [%s] credential...", section)
	info, err := client.Verify(ctx)
	if err != nil {
		return nil, api.NavInfo{}, errors.Wrapf(err, "[%s] credential is invalid or expired; check sessdata, bili_jct and uid", section)
	}
	log.Printf("credential is valid, logged in as %s (%d)", info.Uname, info.Mid)
	return client, info, nil
}

// Export writes the followings of the download account to the followings file.
func Export(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, _, err := makeClient(ctx, cfg, config.DownloadSection)
	if err != nil {
		return err
	}
	defer client.PrintStats()

	st := resolveSettings(cfg.Settings, setFlags())
	uid := client.UID()
	out := st.followingsFile
	log.Printf("exporting the followings of %d", uid)
	entries, err := transfer.Export(ctx, client, uid,
		transfer.ExportPageSize(st.pageSize),
		transfer.ExportPagePause(st.pagePause))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Printf("%d follows nobody, or the list is hidden; leaving %s alone", uid, out)
		return nil
	}
	if err := followings.Write(out, entries); err != nil {
		return err
	}
	log.Printf("exported %d followings to %s", len(entries), absPath(out))
	return nil
}

// Follow replays the followings file on the auto-follow account.
func Follow(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, _, err := makeClient(ctx, cfg, config.AutoFollowSection)
	if err != nil {
		return err
	}
	defer client.PrintStats()

	st := resolveSettings(cfg.Settings, setFlags())
	in := st.followingsFile
	res, err := followings.Read(in)
	if err != nil {
		return err
	}
	log.Printf("loaded %d followings from %s (%d skipped)", len(res.Entries), absPath(in), len(res.Skipped))
	if len(res.Entries) == 0 {
		log.Println("nothing to follow")
		return nil
	}

	var ids []string
	for _, e := range res.Entries {
		ids = append(ids, strconv.FormatInt(e.Mid, 10))
	}
	if dups := len(ids) - len(sets.String(ids)); dups > 0 {
		log.Printf("%s lists %d ids more than once; each occurrence is followed", in, dups)
	}

	summary, err := transfer.Replay(ctx, client, res.Entries,
		transfer.ReplayPause(st.followPause),
		transfer.ReplayRetries(st.followRetries),
		transfer.ReplayRetryPause(st.retryPause),
		transfer.ReplayCheckRelation(st.checkRelation))
	summary.Print()
	return err
}

// Whoami verifies both credentials and prints the accounts they belong to.
func Whoami(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, section := range []string{config.DownloadSection, config.AutoFollowSection} {
		_, info, err := makeClient(ctx, cfg, section)
		if err != nil {
			return err
		}
		log.Printf("[%s] %s: %s", section, info.URI(), formatstruct.MustFormatString(info))
	}
	return nil
}

// Main parses the command line itself so actions may come before the flags.
func Main(ctx context.Context) error {
	leading := leadingActions(os.Args[1:])
	if err := flag.CommandLine.Parse(os.Args[1+len(leading):]); err != nil {
		return err
	}

	app := makeApp()

	app.Register("Export", "export the download account's followings to JSON", Export)
	app.Register("Follow", "follow every account in the JSON file with the auto-follow account", Follow)
	app.Register("Whoami", "verify both credentials", Whoami)
	app.Register("Help", "show this message", func(context.Context) error {
		app.ShowHelp(os.Stdout)
		return nil
	})

	if err := app.Init(leading, *actions, flag.Args()); err != nil {
		app.ShowHelp(os.Stderr)
		fmt.Fprintln(os.Stderr)
		return err
	}
	return app.Run(ctx)
}
