package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// Response codes returned in the envelope's "code" field.
const (
	CodeNotLoggedIn     = -101
	CodeCSRFFailed      = -111
	CodeNotFound        = -404
	CodeFollowSelf      = 22001
	CodeFollowLimit     = 22009
	CodeAlreadyFollowed = 22014
)

var ErrNotLoggedIn = errors.New("credential is not logged in")

// ResponseError is a well-formed response whose code is non-zero.
type ResponseError struct {
	Route   string
	Code    int
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: code %d: %s", e.Route, e.Code, e.Message)
}

// ResponseCode returns the code carried by err, if err wraps a *ResponseError.
func ResponseCode(err error) (int, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}

func hasCode(err error, code int) bool {
	c, ok := ResponseCode(err)
	return ok && c == code
}

func IsAlreadyFollowed(err error) bool { return hasCode(err, CodeAlreadyFollowed) }
func IsNotFound(err error) bool        { return hasCode(err, CodeNotFound) }
func IsCSRFFailure(err error) bool     { return hasCode(err, CodeCSRFFailed) }
func IsFollowLimit(err error) bool     { return hasCode(err, CodeFollowLimit) }
func IsFollowSelf(err error) bool      { return hasCode(err, CodeFollowSelf) }

func IsNotLoggedIn(err error) bool {
	return errors.Is(err, ErrNotLoggedIn) || hasCode(err, CodeNotLoggedIn)
}

// IsCredentialFailure reports errors that no later call with the same credential can get past.
func IsCredentialFailure(err error) bool {
	return IsNotLoggedIn(err) || IsCSRFFailure(err)
}
