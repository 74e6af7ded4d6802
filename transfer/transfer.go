// Package transfer exports one account's followings and replays them on another.
package transfer

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spudtrooper/bilifollow/api"
	"github.com/spudtrooper/bilifollow/followings"
	"github.com/spudtrooper/bilifollow/log"
)

type Lister interface {
	AllFollowings(ctx context.Context, uid int64, f func(page int, infos api.FollowingInfos, total int) error, fOpts ...api.AllFollowingsOption) error
}

// Export returns every account uid follows, in the order the platform lists them.
func Export(ctx context.Context, l Lister, uid int64, eOpts ...ExportOption) ([]followings.Entry, error) {
	opts := MakeExportOptions(eOpts...)
	var res []followings.Entry
	if err := l.AllFollowings(ctx, uid, func(page int, infos api.FollowingInfos, total int) error {
		res = append(res, infos...)
		log.Printf("got page %d of followings: %d users (%d/%d)", page, len(infos), len(res), total)
		return nil
	},
		api.AllFollowingsPageSize(opts.PageSize()),
		api.AllFollowingsPause(opts.PagePause()),
		api.AllFollowingsOrder(opts.Order())); err != nil {
		return nil, err
	}
	return res, nil
}

type Follower interface {
	Follow(ctx context.Context, fid int64) error
	GetRelation(ctx context.Context, fid int64) (api.Relation, error)
}

type Failure struct {
	Entry followings.Entry
	Err   error
}

type Summary struct {
	Total           int
	Attempted       int
	Followed        int
	AlreadyFollowed int
	Failed          []Failure
	Interrupted     bool
}

func (s Summary) Print() {
	log.Printf("done: %s entries, %s followed, %s already followed, %s failed",
		color.New(color.FgHiWhite).Sprintf("%d", s.Total),
		color.GreenString(fmt.Sprintf("%d", s.Followed)),
		color.CyanString(fmt.Sprintf("%d", s.AlreadyFollowed)),
		color.RedString(fmt.Sprintf("%d", len(s.Failed))))
	for _, f := range s.Failed {
		log.Printf("  failed %d (%s): %v", f.Entry.Mid, f.Entry.Uname, f.Err)
	}
	if s.Interrupted {
		log.Printf("interrupted after %d of %d entries", s.Attempted, s.Total)
	}
}

var sleep = api.Sleep

type outcome int

const (
	outcomeFollowed outcome = iota
	outcomeAlreadyFollowed
	outcomeFailed
)

type replayer struct {
	f    Follower
	opts ReplayOptions
}

// Replay follows every entry in order, one call at a time. Per-entry failures
// are logged and recorded in the summary; only a credential failure, which
// every later call would repeat, stops the run early with an error.
func Replay(ctx context.Context, f Follower, entries []followings.Entry, rOpts ...ReplayOption) (Summary, error) {
	r := &replayer{f: f, opts: MakeReplayOptions(rOpts...)}
	res := Summary{Total: len(entries)}
	for i, e := range entries {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		prefix := fmt.Sprintf("[%d/%d] %d (%s)", i+1, len(entries), e.Mid, e.Uname)

		out, attempted, err := r.replayOne(ctx, e)
		if attempted {
			res.Attempted++
		}
		if out == outcomeFailed && ctx.Err() != nil {
			log.Printf("%s interrupted", prefix)
			res.Interrupted = true
			break
		}
		switch out {
		case outcomeFollowed:
			res.Followed++
			log.Printf("%s followed", prefix)
		case outcomeAlreadyFollowed:
			res.AlreadyFollowed++
			log.Printf("%s already followed", prefix)
		case outcomeFailed:
			res.Failed = append(res.Failed, Failure{Entry: e, Err: err})
			log.Printf("%s failed: %v", prefix, err)
			if api.IsCredentialFailure(err) {
				return res, errors.Wrapf(err, "stopping after %d of %d entries", i+1, len(entries))
			}
		}

		if i < len(entries)-1 {
			if err := sleep(ctx, r.opts.Pause()); err != nil {
				res.Interrupted = true
				break
			}
		}
	}
	return res, nil
}

func (r *replayer) replayOne(ctx context.Context, e followings.Entry) (outcome, bool, error) {
	if r.opts.CheckRelation() {
		rel, err := r.f.GetRelation(ctx, e.Mid)
		switch {
		case err == nil && rel.Following():
			return outcomeAlreadyFollowed, false, nil
		case api.IsNotFound(err) || api.IsCredentialFailure(err):
			return outcomeFailed, false, err
		case err != nil:
			log.Printf("checking relation to %d: %v; trying to follow anyway", e.Mid, err)
		}
	}

	var err error
	for try := 0; try <= r.opts.Retries(); try++ {
		if try > 0 {
			log.Printf("retrying %d (%d/%d) after %v", e.Mid, try, r.opts.Retries(), r.opts.RetryPause())
			if serr := sleep(ctx, r.opts.RetryPause()); serr != nil {
				return outcomeFailed, true, err
			}
		}
		err = r.f.Follow(ctx, e.Mid)
		if err == nil {
			return outcomeFollowed, true, nil
		}
		if api.IsAlreadyFollowed(err) {
			return outcomeAlreadyFollowed, true, nil
		}
		if !retryable(err) {
			break
		}
	}
	return outcomeFailed, true, err
}

func retryable(err error) bool {
	return !api.IsNotFound(err) && !api.IsFollowSelf(err) && !api.IsCredentialFailure(err)
}
