// Package session owns the client's authentication state.
//
// # Model
//
// A Session holds the credential token, the user identity and the
// must-change-password flag. IsAuthenticated is derived from the token and
// never stored. Transitions are expressed as actions (LoginAction,
// LogoutAction, InitFromStorageAction) folded by the pure Reduce function,
// so the state machine can be tested without any store or UI.
//
// # Manager
//
// Manager is the single writer. It is created once per process and handed
// to whoever needs it; there is no package-level session. It persists the
// record through a store.Store before committing an in-memory transition,
// and it owns the session-expiry gate:
//
//	TriggerExpiration      raise the gate, keep the (stale) credentials
//	AcknowledgeExpiration  lower the gate, log out, navigate to login
//
// Every login, logout and gate raise bumps an epoch counter. Callers that
// capture Epoch before a request can drop the response if IsStale reports
// a change.
//
// ExpiryWatcher periodically reads the exp claim of JWT credentials and
// raises the gate once it has passed.
package session
