package api

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spudtrooper/bilifollow/log"
	"github.com/spudtrooper/goutil/or"
)

var (
	clientVerbose = flag.Bool("client_verbose", false, "verbose client messages")
)

const (
	defaultHost      = "https://api.bilibili.com"
	defaultReferer   = "https://www.bilibili.com/"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTimeout   = 30 * time.Second
)

// Credential is the cookie bundle bound to one account.
type Credential struct {
	SessData string
	BiliJct  string
	Buvid3   string
	UID      int64
}

func (c Credential) cookies() []*http.Cookie {
	res := []*http.Cookie{
		{Name: "SESSDATA", Value: c.SessData},
		{Name: "bili_jct", Value: c.BiliJct},
	}
	if c.Buvid3 != "" {
		res = append(res, &http.Cookie{Name: "buvid3", Value: c.Buvid3})
	}
	if c.UID != 0 {
		res = append(res, &http.Cookie{Name: "DedeUserID", Value: strconv.FormatInt(c.UID, 10)})
	}
	return res
}

type Client struct {
	cred  Credential
	host  string
	debug bool
	http  *http.Client
	stats *clientStats
}

func MakeClient(cred Credential, mOpts ...MakeClientOption) *Client {
	opts := MakeMakeClientOptions(mOpts...)
	host := strings.TrimSuffix(or.String(opts.Host(), defaultHost), "/")
	timeout := opts.Timeout()
	if timeout == 0 {
		timeout = defaultTimeout
	}
	var stats *clientStats
	if opts.Stats() {
		stats = makeClientStats()
	}
	return &Client{
		cred:  cred,
		host:  host,
		debug: opts.Debug(),
		http:  &http.Client{Timeout: timeout},
		stats: stats,
	}
}

func (c *Client) UID() int64 { return c.cred.UID }

// PrintStats logs per-route timings; it does nothing unless the client was made with stats.
func (c *Client) PrintStats() {
	if c.stats != nil {
		c.stats.Print()
	}
}

type param struct {
	key string
	val interface{}
}

func createRoute(base string, ps ...param) string {
	if len(ps) == 0 {
		return base
	}
	var ss []string
	for _, p := range ps {
		s := fmt.Sprintf("%s=%s", p.key, url.QueryEscape(fmt.Sprintf("%v", p.val)))
		ss = append(ss, s)
	}
	return fmt.Sprintf("%s?%s", base, strings.Join(ss, "&"))
}

func (c *Client) get(ctx context.Context, route string, result interface{}, rOpts ...RequestOption) error {
	return c.request(ctx, "GET", route, nil, result, rOpts...)
}

// postForm sends a form-encoded write. Every write needs the CSRF token that
// rides along in the bili_jct cookie.
func (c *Client) postForm(ctx context.Context, route string, form url.Values, result interface{}, rOpts ...RequestOption) error {
	form.Set("csrf", c.cred.BiliJct)
	extraHeaders := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}
	rOpts = append([]RequestOption{RequestExtraHeaders(extraHeaders)}, rOpts...)
	return c.request(ctx, "POST", route, strings.NewReader(form.Encode()), result, rOpts...)
}

func (c *Client) request(ctx context.Context, method, route string, body io.Reader, result interface{}, rOpts ...RequestOption) error {
	opts := MakeRequestOptions(rOpts...)
	host := strings.TrimSuffix(or.String(opts.Host(), c.host), "/")
	url := fmt.Sprintf("%s/%s", host, route)
	if *clientVerbose {
		log.Printf("requesting %s %s", method, url)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Referer", defaultReferer)
	for k, v := range opts.ExtraHeaders() {
		req.Header.Set(k, v)
	}
	for _, ck := range c.cred.cookies() {
		req.AddCookie(ck)
	}

	start := time.Now()
	doRes, err := c.http.Do(req)
	if err != nil {
		return err
	}
	data, err := ioutil.ReadAll(doRes.Body)
	doRes.Body.Close()
	if err != nil {
		return err
	}
	if c.stats != nil {
		c.stats.record(routePath(route), time.Since(start))
	}

	if c.debug {
		if prettyJSON, err := prettyPrintJSON(data); err == nil {
			log.Printf("from route %q have response %s", route, prettyJSON)
		} else {
			log.Printf("from route %q have non-JSON response (status %d): %s", route, doRes.StatusCode, string(data))
		}
	}

	var payload struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return errors.Errorf("%s %s: status %d: cannot decode response: %v", method, routePath(route), doRes.StatusCode, err)
	}

	if payload.Code != 0 {
		return &ResponseError{
			Route:   routePath(route),
			Code:    payload.Code,
			Message: payload.Message,
		}
	}

	if result == nil || len(payload.Data) == 0 || string(payload.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload.Data, result); err != nil {
		return errors.Wrapf(err, "decoding data from %s", routePath(route))
	}

	return nil
}

func routePath(route string) string {
	if i := strings.Index(route, "?"); i >= 0 {
		return route[:i]
	}
	return route
}

func prettyPrintJSON(b []byte) (string, error) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, b, "", "\t"); err != nil {
		return "", err
	}
	return prettyJSON.String(), nil
}
