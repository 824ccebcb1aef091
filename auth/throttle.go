package auth

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
)

type (
	Throttle interface {
		// Check returns true when key should not be allowed to try again
		// and how long it should wait.
		Check(key string) (time.Duration, bool)
		Fail(key string)
		Reset(key string)
	}

	// LoginThrottle counts failures per key for a window that restarts on
	// every failure.
	LoginThrottle struct {
		sync.Mutex
		cache       *bigcache.BigCache
		maxFailures uint32
		window      time.Duration
		now         func() time.Time
	}

	noThrottle struct{}
)

// NewLoginThrottle blocks a key after maxFailures failed attempts, the block
// lasts for window since the last failure.
func NewLoginThrottle(maxFailures int, window time.Duration) (*LoginThrottle, error) {
	if maxFailures <= 0 || window <= 0 {
		return nil, fmt.Errorf("auth: invalid throttle settings, max failures %v window %v", maxFailures, window)
	}
	cfg := bigcache.DefaultConfig(window)
	cfg.Shards = 64
	cfg.MaxEntrySize = 64
	cfg.MaxEntriesInWindow = 10_000
	cfg.Verbose = false
	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("auth: unable to create throttle cache, cause %w", err)
	}
	return &LoginThrottle{
		cache:       cache,
		maxFailures: uint32(maxFailures),
		window:      window,
		now:         time.Now,
	}, nil
}

func (l *LoginThrottle) Check(key string) (time.Duration, bool) {
	l.Lock()
	defer l.Unlock()
	count, last, ok := l.load(key)
	if !ok || count < l.maxFailures {
		return 0, false
	}
	elapsed := l.now().Sub(last)
	if elapsed >= l.window {
		return 0, false
	}
	return l.window - elapsed, true
}

func (l *LoginThrottle) Fail(key string) {
	l.Lock()
	defer l.Unlock()
	now := l.now()
	count, last, ok := l.load(key)
	if !ok || now.Sub(last) >= l.window {
		count = 0
	}
	count++
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[:4], count)
	binary.BigEndian.PutUint64(buf[4:], uint64(now.UnixNano()))
	l.cache.Set(key, buf[:])
}

func (l *LoginThrottle) Reset(key string) {
	l.Lock()
	defer l.Unlock()
	l.cache.Delete(key)
}

func (l *LoginThrottle) Close() error {
	return l.cache.Close()
}

func (l *LoginThrottle) load(key string) (uint32, time.Time, bool) {
	buf, err := l.cache.Get(key)
	if err != nil || len(buf) != 12 {
		return 0, time.Time{}, false
	}
	count := binary.BigEndian.Uint32(buf[:4])
	last := time.Unix(0, int64(binary.BigEndian.Uint64(buf[4:])))
	return count, last, true
}

func (noThrottle) Check(string) (time.Duration, bool) { return 0, false }
func (noThrottle) Fail(string)                        {}
func (noThrottle) Reset(string)                       {}
