// Package flow orchestrates calls across the async boundary into the
// service facades: each operation dispatches a pending event, awaits the
// facade, then dispatches fulfilled or rejected. Completions check the
// context before dispatching so a torn-down caller never writes into the
// store.
package flow

import (
	"context"

	"go.uber.org/zap"

	"smartpark/internal/domain"
	"smartpark/internal/service"
	"smartpark/internal/session"
	"smartpark/internal/store"
)

// AuthFlow drives authentication state and token persistence.
type AuthFlow struct {
	store  *store.Store
	auth   *service.AuthService
	tokens session.TokenStore
	logger *zap.Logger
}

// NewAuthFlow wires the flow.
func NewAuthFlow(st *store.Store, auth *service.AuthService, tokens session.TokenStore, logger *zap.Logger) *AuthFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthFlow{store: st, auth: auth, tokens: tokens, logger: logger}
}

// Login authenticates with email and password, persisting tokens on
// success.
func (f *AuthFlow) Login(ctx context.Context, email, password string) error {
	f.store.Dispatch(store.AuthRequested{})

	sess, err := f.auth.Login(ctx, email, password)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.AuthFailed{Reason: err.Error()})
		return err
	}

	if err := f.tokens.Save(ctx, sess.Token, sess.RefreshToken); err != nil {
		f.logger.Warn("token persistence failed", zap.Error(err))
	}
	f.store.Dispatch(store.AuthSucceeded{Session: sess})
	return nil
}

// Register creates an account and opens a session.
func (f *AuthFlow) Register(ctx context.Context, req service.RegisterRequest) error {
	f.store.Dispatch(store.AuthRequested{})

	sess, err := f.auth.Register(ctx, req)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.AuthFailed{Reason: err.Error()})
		return err
	}

	if err := f.tokens.Save(ctx, sess.Token, sess.RefreshToken); err != nil {
		f.logger.Warn("token persistence failed", zap.Error(err))
	}
	f.store.Dispatch(store.AuthSucceeded{Session: sess})
	return nil
}

// SendOTP requests a one-time code for the mobile number.
func (f *AuthFlow) SendOTP(ctx context.Context, mobile string) error {
	f.store.Dispatch(store.AuthRequested{})

	err := f.auth.SendOTP(ctx, mobile)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.AuthFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.OTPSent{Mobile: mobile})
	return nil
}

// VerifyOTP exchanges the code for a session.
func (f *AuthFlow) VerifyOTP(ctx context.Context, mobile, code string) error {
	f.store.Dispatch(store.AuthRequested{})

	sess, err := f.auth.VerifyOTP(ctx, mobile, code)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.AuthFailed{Reason: err.Error()})
		return err
	}

	if err := f.tokens.Save(ctx, sess.Token, sess.RefreshToken); err != nil {
		f.logger.Warn("token persistence failed", zap.Error(err))
	}
	f.store.Dispatch(store.AuthSucceeded{Session: sess})
	return nil
}

// Restore replays a persisted token into a live session on startup.
// A missing or stale token leaves the store unauthenticated.
func (f *AuthFlow) Restore(ctx context.Context) error {
	token, refresh, err := f.tokens.Load(ctx)
	if err != nil {
		return err
	}

	f.store.Dispatch(store.AuthRequested{})
	user, err := f.auth.CurrentUser(ctx, token)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.AuthFailed{Reason: err.Error()})
		if clearErr := f.tokens.Clear(ctx); clearErr != nil {
			f.logger.Warn("stale token cleanup failed", zap.Error(clearErr))
		}
		return err
	}

	f.store.Dispatch(store.AuthSucceeded{Session: domain.AuthSession{
		User:         user,
		Token:        token,
		RefreshToken: refresh,
	}})
	return nil
}

// Refresh exchanges the refresh token for a new pair.
func (f *AuthFlow) Refresh(ctx context.Context) error {
	refresh := f.store.State().Auth.RefreshToken
	if refresh == "" {
		_, stored, err := f.tokens.Load(ctx)
		if err != nil {
			return err
		}
		refresh = stored
	}

	sess, err := f.auth.Refresh(ctx, refresh)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.AuthFailed{Reason: err.Error()})
		return err
	}

	if err := f.tokens.Save(ctx, sess.Token, sess.RefreshToken); err != nil {
		f.logger.Warn("token persistence failed", zap.Error(err))
	}
	f.store.Dispatch(store.TokensRefreshed{Token: sess.Token, RefreshToken: sess.RefreshToken})
	return nil
}

// Logout clears the session everywhere: facade, persisted tokens, store.
func (f *AuthFlow) Logout(ctx context.Context) error {
	if err := f.auth.Logout(ctx); err != nil {
		f.logger.Warn("logout call failed", zap.Error(err))
	}
	if err := f.tokens.Clear(ctx); err != nil {
		f.logger.Warn("token cleanup failed", zap.Error(err))
	}
	f.store.Dispatch(store.AuthCleared{})
	return nil
}

// ClearSession drops auth state without a facade round trip. Used by the
// request facade's unauthorized hook.
func (f *AuthFlow) ClearSession(ctx context.Context) {
	if err := f.tokens.Clear(ctx); err != nil {
		f.logger.Warn("token cleanup failed", zap.Error(err))
	}
	f.store.Dispatch(store.AuthCleared{})
}
