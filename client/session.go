package client

import "CineReel.com/model"

// Session is whatever the auth collaborator hands us: the signed-in user's
// summary plus an opaque credential attached to every authenticated call.
type Session struct {
	User  *model.UserSummary
	Token string
}

// SessionProvider exposes the current session, or nil when signed out. The
// data layer only ever reads it.
type SessionProvider interface {
	Session() *Session
}

// StaticSession is a SessionProvider pinned to one session value. Tests and
// short-lived tools use it; interactive callers wrap their auth state instead.
type StaticSession struct {
	S *Session
}

func (p StaticSession) Session() *Session { return p.S }

// CurrentUser returns the signed-in user from a provider, or nil.
func CurrentUser(p SessionProvider) *model.UserSummary {
	if p == nil {
		return nil
	}
	s := p.Session()
	if s == nil {
		return nil
	}
	return s.User
}
