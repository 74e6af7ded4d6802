package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/spudtrooper/bilifollow/log"
	"github.com/spudtrooper/goutil/or"
)

const (
	defaultPageSize = 50
	defaultStart    = 1
	defaultOrder    = "desc"
)

type NavInfo struct {
	IsLogin bool   `json:"isLogin"`
	Mid     int64  `json:"mid"`
	Uname   string `json:"uname"`
	Face    string `json:"face"`
	Level   struct {
		CurrentLevel int `json:"current_level"`
	} `json:"level_info"`
}

func (n NavInfo) URI() string { return userURI(n.Mid) }

// Nav returns the login state of the client's credential.
func (c *Client) Nav(ctx context.Context) (NavInfo, error) {
	var payload NavInfo
	if err := c.get(ctx, "x/web-interface/nav", &payload); err != nil {
		if hasCode(err, CodeNotLoggedIn) {
			return NavInfo{}, errors.Wrap(ErrNotLoggedIn, err.Error())
		}
		return NavInfo{}, err
	}
	return payload, nil
}

// Verify checks that the credential is logged in. A mismatch between the
// logged-in account and the configured uid is logged, not returned.
func (c *Client) Verify(ctx context.Context) (NavInfo, error) {
	info, err := c.Nav(ctx)
	if err != nil {
		return NavInfo{}, err
	}
	if !info.IsLogin {
		return NavInfo{}, ErrNotLoggedIn
	}
	if c.cred.UID != 0 && info.Mid != c.cred.UID {
		log.Printf("credential is logged in as %d (%s) but configured uid is %d", info.Mid, info.Uname, c.cred.UID)
	}
	return info, nil
}

type OfficialVerify struct {
	Type int    `json:"type"`
	Desc string `json:"desc"`
}

type VipInfo struct {
	VipType   int `json:"vipType"`
	VipStatus int `json:"vipStatus"`
}

type FollowingInfo struct {
	Mid            int64          `json:"mid"`
	Attribute      int            `json:"attribute"`
	Mtime          int64          `json:"mtime"`
	Tag            []int64        `json:"tag"`
	Special        int            `json:"special"`
	Uname          string         `json:"uname"`
	Face           string         `json:"face"`
	Sign           string         `json:"sign"`
	OfficialVerify OfficialVerify `json:"official_verify"`
	Vip            VipInfo        `json:"vip"`

	// Raw is the record as the platform sent it. When set it is what gets
	// marshaled, with only mid rewritten from Mid.
	Raw json.RawMessage `json:"-"`
}

func (f FollowingInfo) URI() string { return userURI(f.Mid) }

type followingInfo FollowingInfo

func (f *FollowingInfo) UnmarshalJSON(b []byte) error {
	var v followingInfo
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FollowingInfo(v)
	f.Raw = append(json.RawMessage{}, b...)
	return nil
}

func (f FollowingInfo) MarshalJSON() ([]byte, error) {
	if len(f.Raw) == 0 {
		return json.Marshal(followingInfo(f))
	}
	return jsonparser.Set(append([]byte{}, f.Raw...), []byte(strconv.FormatInt(f.Mid, 10)), "mid")
}

type FollowingInfos []FollowingInfo

type FollowingsResult struct {
	List      FollowingInfos `json:"list"`
	Total     int            `json:"total"`
	ReVersion int64          `json:"re_version"`
}

func (c *Client) GetFollowings(ctx context.Context, uid int64, fOpts ...FollowingsOption) (FollowingsResult, error) {
	opts := MakeFollowingsOptions(fOpts...)
	page := or.Int(opts.Page(), defaultStart)
	pageSize := or.Int(opts.PageSize(), defaultPageSize)
	order := or.String(opts.Order(), defaultOrder)
	route := createRoute("x/relation/followings",
		param{"vmid", uid}, param{"pn", page}, param{"ps", pageSize}, param{"order", order})
	var payload FollowingsResult
	if err := c.get(ctx, route, &payload); err != nil {
		return FollowingsResult{}, err
	}
	return payload, nil
}

// AllFollowings calls f with each page of uid's followings, starting at page
// 1 unless told otherwise. It stops on an empty page or once total entries
// have been seen.
func (c *Client) AllFollowings(ctx context.Context, uid int64, f func(page int, infos FollowingInfos, total int) error, fOpts ...AllFollowingsOption) error {
	opts := MakeAllFollowingsOptions(fOpts...)
	pageSize := or.Int(opts.PageSize(), defaultPageSize)
	start := or.Int(opts.Start(), defaultStart)
	seen := (start - 1) * pageSize
	for page := start; ; page++ {
		res, err := c.GetFollowings(ctx, uid, FollowingsPage(page), FollowingsPageSize(pageSize), FollowingsOrder(opts.Order()))
		if err != nil {
			return errors.Wrapf(err, "getting page %d of followings of %d", page, uid)
		}
		if len(res.List) == 0 {
			break
		}
		if err := f(page, res.List, res.Total); err != nil {
			return err
		}
		seen += len(res.List)
		if seen >= res.Total {
			break
		}
		if err := Sleep(ctx, opts.Pause()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) GetAllFollowings(ctx context.Context, uid int64, fOpts ...AllFollowingsOption) (FollowingInfos, error) {
	var res FollowingInfos
	if err := c.AllFollowings(ctx, uid, func(page int, infos FollowingInfos, total int) error {
		res = append(res, infos...)
		return nil
	}, fOpts...); err != nil {
		return nil, err
	}
	return res, nil
}

type Relation struct {
	Mid       int64 `json:"mid"`
	Attribute int   `json:"attribute"`
	Mtime     int64 `json:"mtime"`
	Special   int   `json:"special"`
}

// Following is true for attribute 2 (following) and 6 (mutual).
func (r Relation) Following() bool { return r.Attribute == 2 || r.Attribute == 6 }

// GetRelation returns the client account's relation to fid.
func (c *Client) GetRelation(ctx context.Context, fid int64) (Relation, error) {
	route := createRoute("x/relation", param{"fid", fid})
	var payload Relation
	if err := c.get(ctx, route, &payload); err != nil {
		return Relation{}, err
	}
	return payload, nil
}

type RelationAct int

const (
	RelationFollow   RelationAct = 1
	RelationUnfollow RelationAct = 2
)

// relationSource is the "re_src" the web client sends from a user's space page.
const relationSource = "11"

func (c *Client) ModifyRelation(ctx context.Context, fid int64, act RelationAct) error {
	form := url.Values{}
	form.Set("fid", strconv.FormatInt(fid, 10))
	form.Set("act", strconv.Itoa(int(act)))
	form.Set("re_src", relationSource)
	return c.postForm(ctx, "x/relation/modify", form, nil)
}

func (c *Client) Follow(ctx context.Context, fid int64) error {
	return c.ModifyRelation(ctx, fid, RelationFollow)
}

func (c *Client) Unfollow(ctx context.Context, fid int64) error {
	return c.ModifyRelation(ctx, fid, RelationUnfollow)
}

func userURI(mid int64) string {
	return fmt.Sprintf("https://space.bilibili.com/%d", mid)
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
