package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartpark/internal/service"
	"smartpark/internal/session"
	"smartpark/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthFlow, *store.Store, *session.MemoryStore) {
	t.Helper()
	st := store.New(nil)
	tokens := session.NewMemoryStore()
	auth := service.NewAuthService(service.NewTokenService("test-secret", time.Hour, 24*time.Hour), 0, nil)
	return NewAuthFlow(st, auth, tokens, nil), st, tokens
}

func TestLoginUpdatesStoreAndPersistsTokens(t *testing.T) {
	flow, st, tokens := newAuthFixture(t)

	if err := flow.Login(context.Background(), "user@test.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	auth := st.State().Auth
	if !auth.IsAuthenticated || auth.IsLoading || auth.Error != "" {
		t.Fatalf("unexpected auth state: %+v", auth)
	}
	if auth.User == nil || auth.User.Email != "user@test.com" {
		t.Fatalf("user not loaded: %+v", auth.User)
	}

	token, refresh, err := tokens.Load(context.Background())
	if err != nil {
		t.Fatalf("tokens not persisted: %v", err)
	}
	if token != auth.Token || refresh != auth.RefreshToken {
		t.Fatalf("persisted pair differs from store")
	}
}

func TestLoginFailureRecordsError(t *testing.T) {
	flow, st, tokens := newAuthFixture(t)

	err := flow.Login(context.Background(), "user@test.com", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	auth := st.State().Auth
	if auth.IsAuthenticated || auth.IsLoading {
		t.Fatalf("unexpected auth state: %+v", auth)
	}
	if auth.Error == "" {
		t.Fatalf("error not recorded in store")
	}
	if _, _, err := tokens.Load(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("tokens persisted on failure")
	}
}

func TestCancelledLoginNeverTouchesStore(t *testing.T) {
	flow, st, _ := newAuthFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := flow.Login(ctx, "user@test.com", "password123")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	auth := st.State().Auth
	if auth.IsAuthenticated || auth.Error != "" {
		t.Fatalf("cancelled completion reached the store: %+v", auth)
	}
}

func TestOTPLoginFlow(t *testing.T) {
	flow, st, _ := newAuthFixture(t)
	ctx := context.Background()

	if err := flow.SendOTP(ctx, "9876543210"); err != nil {
		t.Fatalf("sendOTP: %v", err)
	}
	if got := st.State().Auth.OTPMobile; got != "9876543210" {
		t.Fatalf("otp mobile = %q", got)
	}

	if err := flow.VerifyOTP(ctx, "9876543210", "123456"); err != nil {
		t.Fatalf("verifyOTP: %v", err)
	}
	if !st.State().Auth.IsAuthenticated {
		t.Fatalf("OTP login did not authenticate")
	}
}

func TestVerifyOTPWrongCodeRecordsError(t *testing.T) {
	flow, st, _ := newAuthFixture(t)
	err := flow.VerifyOTP(context.Background(), "9876543210", "999999")
	if !errors.Is(err, service.ErrInvalidOTP) {
		t.Fatalf("err = %v, want ErrInvalidOTP", err)
	}
	if st.State().Auth.Error == "" {
		t.Fatalf("error not recorded")
	}
}

func TestRestoreReplaysPersistedSession(t *testing.T) {
	flow, _, tokens := newAuthFixture(t)
	ctx := context.Background()

	if err := flow.Login(ctx, "user@test.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A new store and flow over the same token store simulates a restart.
	st2 := store.New(nil)
	auth := service.NewAuthService(service.NewTokenService("test-secret", time.Hour, 24*time.Hour), 0, nil)
	flow2 := NewAuthFlow(st2, auth, tokens, nil)

	if err := flow2.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := st2.State().Auth
	if !got.IsAuthenticated || got.User == nil || got.User.Email != "user@test.com" {
		t.Fatalf("restored state wrong: %+v", got)
	}
}

func TestRestoreWithNoSession(t *testing.T) {
	flow, st, _ := newAuthFixture(t)
	err := flow.Restore(context.Background())
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if st.State().Auth.IsAuthenticated {
		t.Fatalf("restore without session authenticated")
	}
}

func TestRestoreClearsStaleToken(t *testing.T) {
	flow, st, tokens := newAuthFixture(t)
	ctx := context.Background()

	if err := tokens.Save(ctx, "garbage", "garbage"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := flow.Restore(ctx); err == nil {
		t.Fatalf("expected restore failure on garbage token")
	}
	if _, _, err := tokens.Load(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("stale token pair not cleared")
	}
	if st.State().Auth.Error == "" {
		t.Fatalf("failure not recorded")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	flow, st, tokens := newAuthFixture(t)
	ctx := context.Background()

	if err := flow.Login(ctx, "user@test.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := flow.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if st.State().Auth.IsAuthenticated || st.State().Auth.Token != "" {
		t.Fatalf("auth state survived logout: %+v", st.State().Auth)
	}
	if _, _, err := tokens.Load(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("token pair survived logout")
	}
}

func TestRefreshUpdatesTokens(t *testing.T) {
	flow, st, tokens := newAuthFixture(t)
	ctx := context.Background()

	if err := flow.Login(ctx, "user@test.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	before := st.State().Auth

	time.Sleep(time.Second + time.Millisecond)
	if err := flow.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	after := st.State().Auth
	if after.Token == before.Token {
		t.Fatalf("access token unchanged by refresh")
	}
	if !after.IsAuthenticated || after.User == nil {
		t.Fatalf("refresh lost authentication: %+v", after)
	}
	token, _, err := tokens.Load(ctx)
	if err != nil || token != after.Token {
		t.Fatalf("persisted token not rotated: %v", err)
	}
}
