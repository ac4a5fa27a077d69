package handler

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/hitoshi/grown/internal/catalog"
	"github.com/hitoshi/grown/internal/model"
	"github.com/hitoshi/grown/internal/repository"
	"github.com/hitoshi/grown/internal/security"
	"github.com/hitoshi/grown/internal/subscriber"
	"github.com/hitoshi/grown/internal/web"
)

// --- モック定義 ---

// mockSubscribeService はSubscribeServiceInterfaceのモック実装。
type mockSubscribeService struct {
	subscribeFn func(ctx context.Context, p subscriber.Payload) (*model.Subscriber, error)
}

func (m *mockSubscribeService) Subscribe(ctx context.Context, p subscriber.Payload) (*model.Subscriber, error) {
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, p)
	}
	return &model.Subscriber{}, nil
}

// mockSubscriberLister はSubscriberListerInterfaceのモック実装。
type mockSubscriberLister struct {
	listSubscribersFn func(ctx context.Context) ([]*model.Subscriber, error)
}

func (m *mockSubscriberLister) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	if m.listSubscribersFn != nil {
		return m.listSubscribersFn(ctx)
	}
	return nil, nil
}

// mockRenderer はRendererのモック実装。
type mockRenderer struct {
	renderFn func(w io.Writer, name string, data any) error
}

func (m *mockRenderer) Render(w io.Writer, name string, data any) error {
	if m.renderFn != nil {
		return m.renderFn(w, name, data)
	}
	return nil
}

// mockPinger はPingerのモック実装。
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

// memoryRepo はemailをキーにしたインメモリのSubscriberRepository。
// 実サービスと組み合わせたエンドツーエンドのテストで使う。
type memoryRepo struct {
	mu      sync.Mutex
	rows    map[string]*model.Subscriber
	upserts int
	failErr error
	clock   time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		rows:  make(map[string]*model.Subscriber),
		clock: time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepo) Upsert(ctx context.Context, email, interests string, zip *string, source string) (*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.failErr != nil {
		return nil, &repository.StoreError{Op: "upsert", Err: m.failErr}
	}
	m.clock = m.clock.Add(time.Minute)

	if existing, ok := m.rows[email]; ok {
		existing.Interests = interests
		existing.Zip = zip
		existing.CreatedAt = m.clock
		cp := *existing
		return &cp, nil
	}
	s := &model.Subscriber{
		ID:        email + "-id",
		Email:     email,
		Interests: interests,
		Zip:       zip,
		Source:    source,
		CreatedAt: m.clock,
	}
	m.rows[email] = s
	cp := *s
	return &cp, nil
}

func (m *memoryRepo) ListAll(ctx context.Context) ([]*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, &repository.StoreError{Op: "list", Err: m.failErr}
	}
	out := make([]*model.Subscriber, 0, len(m.rows))
	for _, s := range m.rows {
		cp := *s
		out = append(out, &cp)
	}
	// 新しい順
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.After(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

var errDBDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default(security.NewContentSanitizer())
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	return c
}

func mustTemplates(t *testing.T) *web.Templates {
	t.Helper()
	tmpl, err := web.ParseTemplates()
	if err != nil {
		t.Fatalf("web.ParseTemplates() error = %v", err)
	}
	return tmpl
}
