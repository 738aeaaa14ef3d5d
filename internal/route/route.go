// Package route maps URL paths to views and keeps the navigation history.
package route

import (
	"strconv"
	"strings"
)

type Kind int

const (
	Home Kind = iota
	SignUp
	Login
	Users
	UserDetail
	Activate
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case SignUp:
		return "signup"
	case Login:
		return "login"
	case Users:
		return "users"
	case UserDetail:
		return "user"
	case Activate:
		return "activate"
	default:
		return "unknown"
	}
}

// Route is the view selected by a path. UserID is set for UserDetail, Token for Activate.
type Route struct {
	Kind   Kind
	UserID int64
	Token  string
}

// Path renders the canonical path for r.
func (r Route) Path() string {
	switch r.Kind {
	case SignUp:
		return "/signup"
	case Login:
		return "/login"
	case Users:
		return "/users"
	case UserDetail:
		return UserPath(r.UserID)
	case Activate:
		return "/activate/" + r.Token
	default:
		return "/"
	}
}

func UserPath(id int64) string {
	return "/user/" + strconv.FormatInt(id, 10)
}

// Resolve maps a path to a Route. The first matching rule wins; ok is false when nothing matches.
func Resolve(path string) (Route, bool) {
	switch path {
	case "/":
		return Route{Kind: Home}, true
	case "/signup":
		return Route{Kind: SignUp}, true
	case "/login":
		return Route{Kind: Login}, true
	case "/users":
		return Route{Kind: Users}, true
	}

	if seg, ok := singleSegment(path, "/user/"); ok && allDigits(seg) {
		// Digit strings beyond int64 are not backend ids; fall through.
		if id, err := strconv.ParseInt(seg, 10, 64); err == nil {
			return Route{Kind: UserDetail, UserID: id}, true
		}
	}
	if seg, ok := singleSegment(path, "/activate/"); ok {
		return Route{Kind: Activate, Token: seg}, true
	}
	return Route{}, false
}

// singleSegment returns the rest of path after prefix when it is exactly one non-empty segment.
func singleSegment(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	seg := path[len(prefix):]
	if seg == "" || strings.Contains(seg, "/") {
		return "", false
	}
	return seg, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stripLocation drops query and fragment so "/users?page=2" resolves like "/users".
func stripLocation(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	return p
}
