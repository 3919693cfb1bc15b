package iam

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/infra/cache"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"golang.org/x/sync/singleflight"
)

const DefaultSkew = 60 * time.Second

// CachingExchanger reuses tokens until skew before they expire. Keys are
// hashed so raw API keys are never held in the cache. Concurrent misses for
// the same key share a single exchange. The shared exchange is detached from
// any one caller's cancellation and bounded by timeout instead.
type CachingExchanger struct {
	inner   Exchanger
	tokens  *cache.TTLMap
	group   singleflight.Group
	skew    time.Duration
	timeout time.Duration
	now     func() time.Time
}

// NewCachingExchanger wraps inner. A negative skew falls back to DefaultSkew
// and a non-positive timeout to DefaultTimeout.
func NewCachingExchanger(inner Exchanger, skew, timeout time.Duration) *CachingExchanger {
	if skew < 0 {
		skew = DefaultSkew
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CachingExchanger{
		inner:   inner,
		tokens:  cache.NewTTLMap(time.Hour),
		skew:    skew,
		timeout: timeout,
		now:     time.Now,
	}
}

func (c *CachingExchanger) AcquireToken(ctx context.Context, apiKey string) (Credential, error) {
	key := hashKey(apiKey)

	if cred, ok := c.cached(key); ok {
		prometheus.IAMTokenCacheHits.Inc()
		return cred, nil
	}

	flight := c.group.DoChan(key, func() (interface{}, error) {
		// A flight that finished between the lookup above and DoChan already
		// stored a token.
		if cred, ok := c.cached(key); ok {
			return cred, nil
		}
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		cred, err := c.inner.AcquireToken(flightCtx, apiKey)
		if err != nil {
			return Credential{}, err
		}
		if cred.ValidAt(c.now(), c.skew) {
			c.tokens.SetWithTTL(key, cred, cred.ExpiresAt.Sub(c.now())-c.skew)
		}
		return cred, nil
	})

	select {
	case <-ctx.Done():
		return Credential{}, &AuthError{Err: fmt.Errorf("token exchange abandoned: %w", ctx.Err())}
	case res := <-flight:
		if res.Err != nil {
			return Credential{}, res.Err
		}
		cred, _ := res.Val.(Credential)
		return cred, nil
	}
}

func (c *CachingExchanger) cached(key string) (Credential, bool) {
	value, ok := c.tokens.Get(key)
	if !ok {
		return Credential{}, false
	}
	cred, ok := value.(Credential)
	if !ok || !cred.ValidAt(c.now(), c.skew) {
		return Credential{}, false
	}
	return cred, true
}

// Invalidate drops the cached token for apiKey, e.g. after the generation
// endpoint rejected it.
func (c *CachingExchanger) Invalidate(apiKey string) {
	c.tokens.Delete(hashKey(apiKey))
}

func hashKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}
