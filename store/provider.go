package store

import (
	"context"
	"errors"
	"sync"
)

type (
	// Provider opens the database the first time it is needed and hands
	// the same *Store to every caller after that.
	Provider struct {
		file string

		sync.Mutex
		store  *Store
		closed bool
	}
)

var (
	ErrProviderClosed = errors.New("store: provider is closed")
)

func NewProvider(file string) *Provider {
	return &Provider{file: file}
}

// Get returns the shared store, opening it on the first call. A failed open
// is not remembered, the next call tries again.
func (p *Provider) Get(ctx context.Context) (*Store, error) {
	p.Lock()
	defer p.Unlock()
	if p.closed {
		return nil, ErrProviderClosed
	}
	if p.store != nil {
		return p.store, nil
	}
	s, err := Open(ctx, p.file)
	if err != nil {
		return nil, err
	}
	p.store = s
	return s, nil
}

// Close closes the shared store, Get fails after that.
func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()
	p.closed = true
	if p.store == nil {
		return nil
	}
	s := p.store
	p.store = nil
	return s.Close()
}
