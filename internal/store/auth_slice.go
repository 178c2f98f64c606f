package store

import "smartpark/internal/domain"

// AuthState owns the current session. The token is additionally persisted
// outside the store so a restart can restore the session.
type AuthState struct {
	User            *domain.User
	Token           string
	RefreshToken    string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	OTPMobile       string
}

func reduceAuth(s AuthState, ev Event) AuthState {
	switch e := ev.(type) {
	case AuthRequested:
		s.IsLoading = true
		s.Error = ""
	case AuthSucceeded:
		u := e.Session.User
		s.User = &u
		s.Token = e.Session.Token
		s.RefreshToken = e.Session.RefreshToken
		s.IsAuthenticated = true
		s.IsLoading = false
		s.Error = ""
	case AuthFailed:
		s.IsLoading = false
		s.Error = e.Reason
	case AuthCleared:
		s = AuthState{}
	case UserLoaded:
		u := e.User
		s.User = &u
		s.IsAuthenticated = true
		s.IsLoading = false
		s.Error = ""
	case TokensRefreshed:
		s.Token = e.Token
		s.RefreshToken = e.RefreshToken
	case OTPSent:
		s.IsLoading = false
		s.Error = ""
		s.OTPMobile = e.Mobile
	}
	return s
}
