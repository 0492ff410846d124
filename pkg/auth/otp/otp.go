package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/stylehaven/stylehaven-backend/pkg/config"
	redisclient "github.com/stylehaven/stylehaven-backend/pkg/redis"
)

const codeDigits = 4

var (
	ErrCodeMismatch = errors.New("otp code mismatch")
	ErrCodeExpired  = errors.New("otp code expired or never issued")
	ErrTooManyTries = errors.New("otp verification attempts exhausted")
)

type codeStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Del(ctx context.Context, keys ...string) error
}

type codeKeyer interface {
	OTPKey(identity string) string
	OTPAttemptsKey(identity string) string
}

// Manager issues and verifies short-lived numeric login codes backed by Redis.
type Manager struct {
	store       codeStore
	keyer       codeKeyer
	ttl         time.Duration
	maxAttempts int
}

// NewManager constructs an OTP manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.OTPConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("otp max attempts must be positive")
	}
	return &Manager{
		store:       client,
		keyer:       client,
		ttl:         cfg.TTL,
		maxAttempts: cfg.MaxAttempts,
	}, nil
}

// Issue generates a fresh code for the identity, replacing any previous one.
func (m *Manager) Issue(ctx context.Context, identity string) (string, error) {
	identity = normalize(identity)
	if identity == "" {
		return "", fmt.Errorf("identity is required")
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	if err := m.store.Set(ctx, m.keyer.OTPKey(identity), code, m.ttl); err != nil {
		return "", fmt.Errorf("storing otp code: %w", err)
	}
	if err := m.store.Del(ctx, m.keyer.OTPAttemptsKey(identity)); err != nil {
		return "", fmt.Errorf("resetting otp attempts: %w", err)
	}
	return code, nil
}

// Verify consumes the stored code when it matches. Failed attempts are
// counted against the code's remaining lifetime.
func (m *Manager) Verify(ctx context.Context, identity, provided string) error {
	identity = normalize(identity)
	provided = strings.TrimSpace(provided)
	if identity == "" || provided == "" {
		return ErrCodeMismatch
	}

	key := m.keyer.OTPKey(identity)
	stored, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return ErrCodeExpired
		}
		return err
	}

	attempts, err := m.store.IncrWithTTL(ctx, m.keyer.OTPAttemptsKey(identity), m.ttl)
	if err != nil {
		return err
	}
	if attempts > int64(m.maxAttempts) {
		if delErr := m.store.Del(ctx, key); delErr != nil {
			return delErr
		}
		return ErrTooManyTries
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) != 1 {
		return ErrCodeMismatch
	}

	return m.store.Del(ctx, key, m.keyer.OTPAttemptsKey(identity))
}

func normalize(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generating otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
