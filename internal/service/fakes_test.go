package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type published struct {
	Topic string
	Key   string
	Event events.Event
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{Topic: topic, Key: key, Event: ev})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, s := range p.sent {
		out = append(out, s.Event.Type)
	}
	return out
}

type fakeIndex struct {
	indexed   map[uint]models.Product
	deleted   []uint
	searchErr error
	total     int64
	hits      []models.Product
	lastFrom  int
	lastSize  int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uint]models.Product{}}
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.indexed[p.ID] = p
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, from, size int) (int64, []models.Product, error) {
	f.lastFrom, f.lastSize = from, size
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	return f.total, f.hits, nil
}

var errEngineDown = errors.New("engine down")

func newAuthService(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &AuthService{
		Repo:   repo.NewGormRepo(testutil.NewDB(t)),
		Tokens: tokens.NewIssuer([]byte("test-secret")),
		Events: pub,
	}, pub
}

func newCatalogService(t *testing.T, idx ProductIndex) (*CatalogService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &CatalogService{
		Repo:   repo.NewGormRepo(testutil.NewDB(t)),
		Search: idx,
		Events: pub,
	}, pub
}
