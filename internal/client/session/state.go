package session

import (
	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// State is the coarse lifecycle position of the session.
type State int

const (
	StateUninitialized State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the authentication state.
type Session struct {
	Token              string
	User               *models.User
	MustChangePassword bool
}

// IsAuthenticated is true iff a token is present.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Username returns the user's name or "" when there is no identity.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// Record converts the session to its persisted form.
func (s Session) Record() models.SessionRecord {
	return models.SessionRecord{Token: s.Token, User: copyUser(s.User), MustChangePassword: s.MustChangePassword}
}

func (s Session) clone() Session {
	s.User = copyUser(s.User)
	return s
}

// Action is a state transition request consumed by Reduce.
type Action interface {
	isAction()
}

// LoginAction replaces the whole session with fresh credentials.
type LoginAction struct {
	Token              string
	User               *models.User
	MustChangePassword bool
}

// LogoutAction resets the session to its unauthenticated zero value.
type LogoutAction struct{}

// InitFromStorageAction seeds the session from the persisted record. A
// record without a token yields the zero session even if other keys
// survived.
type InitFromStorageAction struct {
	Record models.SessionRecord
}

func (LoginAction) isAction()           {}
func (LogoutAction) isAction()          {}
func (InitFromStorageAction) isAction() {}

// Reduce returns the session that results from applying a to s. It has no
// side effects; unknown actions leave s unchanged.
func Reduce(s Session, a Action) Session {
	switch act := a.(type) {
	case LoginAction:
		return Session{Token: act.Token, User: copyUser(act.User), MustChangePassword: act.MustChangePassword}
	case LogoutAction:
		return Session{}
	case InitFromStorageAction:
		if act.Record.Empty() {
			return Session{}
		}
		return Session{Token: act.Record.Token, User: copyUser(act.Record.User), MustChangePassword: act.Record.MustChangePassword}
	default:
		return s
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
