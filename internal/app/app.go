// Package app wires the application graph: config, store, facades, token
// persistence, the request facade and the realtime channel client.
package app

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"smartpark/internal/api"
	"smartpark/internal/config"
	"smartpark/internal/flow"
	"smartpark/internal/realtime"
	"smartpark/internal/service"
	"smartpark/internal/session"
	"smartpark/internal/store"
)

// App owns every long-lived component.
type App struct {
	cfg         *config.Config
	store       *store.Store
	client      *realtime.Client
	redisClient *redis.Client
	logger      *zap.Logger

	Auth    *flow.AuthFlow
	Parking *flow.ParkingFlow
	Booking *flow.BookingFlow
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	st := store.New(logger)

	var (
		tokenStore  session.TokenStore
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		redisClient = client
		tokenStore = session.NewRedisStore(client)
	} else {
		tokenStore = session.NewMemoryStore()
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiry(), cfg.RefreshExpiry())
	authSvc := service.NewAuthService(tokens, cfg.MockLatency(), logger)
	parkingSvc := service.NewParkingService(cfg.MockLatency(), logger)
	bookingSvc := service.NewBookingService(parkingSvc, cfg.MockLatency(), logger)

	authFlow := flow.NewAuthFlow(st, authSvc, tokenStore, logger)

	var parkingAPI service.ParkingAPI = parkingSvc
	if cfg.API.BaseURL != "" {
		apiClient := api.NewClient(cfg.API.BaseURL, nil,
			func() string { return st.State().Auth.Token },
			func() { authFlow.ClearSession(context.Background()) })
		parkingAPI = service.NewRemoteParkingService(apiClient)
	}

	client := realtime.NewClient(realtime.Config{
		URL:         cfg.Realtime.URL,
		DialTimeout: cfg.DialTimeout(),
		Reconnect: realtime.ReconnectConfig{
			MaxAttempts: cfg.Reconnect.MaxAttempts,
			BaseDelay:   cfg.BaseDelay(),
		},
	}, st, logger)

	return &App{
		cfg:         cfg,
		store:       st,
		client:      client,
		redisClient: redisClient,
		logger:      logger,
		Auth:        authFlow,
		Parking:     flow.NewParkingFlow(st, parkingAPI, logger),
		Booking:     flow.NewBookingFlow(st, bookingSvc, logger),
	}, nil
}

// Store exposes the state container.
func (a *App) Store() *store.Store {
	return a.store
}

// Realtime exposes the channel client.
func (a *App) Realtime() *realtime.Client {
	return a.client
}

// Run restores a persisted session, connects the realtime channel,
// subscribes to configured channels and blocks until the context ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.Auth.Restore(ctx); err != nil && !errors.Is(err, session.ErrNoSession) {
		a.logger.Warn("session restore failed", zap.Error(err))
	}

	if err := a.client.Connect(); err != nil {
		a.logger.Warn("initial connect failed, reconnect scheduled", zap.Error(err))
	}
	for _, channel := range a.cfg.ChannelList() {
		a.client.Subscribe(channel)
	}

	<-ctx.Done()
	return ctx.Err()
}

// Close releases resources. The channel client goes first so no timer
// fires into torn-down state.
func (a *App) Close() {
	a.client.Disconnect()
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
