package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxAttempts = 5
	defaultBaseDelay   = time.Second
)

// ReconnectPolicy schedules retry attempts with exponential backoff after
// connection failures. It owns its attempt counter and the pending timer,
// so Stop can deterministically cancel a scheduled retry during teardown.
//
// Attempts reset to zero only on Reset (a successful connection). Once the
// attempt budget is spent the policy goes terminal: no further automatic
// retries happen until a manual connect succeeds.
type ReconnectPolicy struct {
	mu          sync.Mutex
	attempts    int
	maxAttempts int
	baseDelay   time.Duration
	timer       *time.Timer
	stopped     bool
	retry       func()
	onExhausted func()
	logger      *zap.Logger
}

// ReconnectConfig tunes the policy. Zero values fall back to defaults.
type ReconnectConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// NewReconnectPolicy builds a policy that invokes retry when a scheduled
// backoff timer fires and onExhausted when the attempt budget is spent.
func NewReconnectPolicy(cfg ReconnectConfig, retry func(), onExhausted func(), logger *zap.Logger) *ReconnectPolicy {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconnectPolicy{
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		retry:       retry,
		onExhausted: onExhausted,
		logger:      logger,
	}
}

// Failure records a triggering failure and schedules a single-shot retry.
// It returns false when the budget is exhausted and nothing was scheduled.
func (p *ReconnectPolicy) Failure() bool {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return false
	}
	if p.attempts >= p.maxAttempts {
		onExhausted := p.onExhausted
		p.mu.Unlock()
		p.logger.Warn("reconnect attempts exhausted", zap.Int("max_attempts", p.maxAttempts))
		if onExhausted != nil {
			onExhausted()
		}
		return false
	}

	p.attempts++
	attempt := p.attempts
	delay := p.baseDelay << (attempt - 1)

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(delay, func() {
		p.mu.Lock()
		stopped := p.stopped
		p.mu.Unlock()
		if stopped {
			return
		}
		p.retry()
	})
	p.mu.Unlock()

	p.logger.Info("reconnect scheduled",
		zap.Int("attempt", attempt),
		zap.Duration("delay", delay))
	return true
}

// Reset clears the attempt counter after a successful connection.
func (p *ReconnectPolicy) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts = 0
	p.stopped = false
}

// Stop cancels any pending retry. A stopped policy schedules nothing until
// Reset is called again.
func (p *ReconnectPolicy) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Attempts reports how many retries have been consumed.
func (p *ReconnectPolicy) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}
