package vocabulary

import (
	"context"
	"sync"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockWordStore struct {
	ResolveWordIDFunc func(ctx context.Context, text string) (int64, error)
	IsMasteredFunc    func(ctx context.Context, ref domain.WordRef) (bool, error)
	SetMasteredFunc   func(ctx context.Context, ref domain.WordRef, mastered bool) error
	AddContextFunc    func(ctx context.Context, ref domain.WordRef, text string) error
	DeleteWordFunc    func(ctx context.Context, text string) error
	ListWordsFunc     func(ctx context.Context) ([]string, error)
	GetRecordFunc     func(ctx context.Context, text string) (*domain.Record, error)
	MigrateFunc       func(ctx context.Context, records []domain.Record) (int, error)
	DumpFunc          func(ctx context.Context) ([]domain.Record, error)
	StatsFunc         func(ctx context.Context) (domain.StoreStats, error)

	mu       sync.Mutex
	migrated []domain.Record
	contexts []string
}

func (m *mockWordStore) ResolveWordID(ctx context.Context, text string) (int64, error) {
	if m.ResolveWordIDFunc != nil {
		return m.ResolveWordIDFunc(ctx, text)
	}
	return 0, domain.ErrNotFound
}

func (m *mockWordStore) IsMastered(ctx context.Context, ref domain.WordRef) (bool, error) {
	if m.IsMasteredFunc != nil {
		return m.IsMasteredFunc(ctx, ref)
	}
	return false, nil
}

func (m *mockWordStore) SetMastered(ctx context.Context, ref domain.WordRef, mastered bool) error {
	if m.SetMasteredFunc != nil {
		return m.SetMasteredFunc(ctx, ref, mastered)
	}
	return nil
}

func (m *mockWordStore) AddContext(ctx context.Context, ref domain.WordRef, text string) error {
	m.mu.Lock()
	m.contexts = append(m.contexts, text)
	m.mu.Unlock()
	if m.AddContextFunc != nil {
		return m.AddContextFunc(ctx, ref, text)
	}
	return nil
}

func (m *mockWordStore) DeleteWord(ctx context.Context, text string) error {
	if m.DeleteWordFunc != nil {
		return m.DeleteWordFunc(ctx, text)
	}
	return nil
}

func (m *mockWordStore) ListWords(ctx context.Context) ([]string, error) {
	if m.ListWordsFunc != nil {
		return m.ListWordsFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockWordStore) GetRecord(ctx context.Context, text string) (*domain.Record, error) {
	if m.GetRecordFunc != nil {
		return m.GetRecordFunc(ctx, text)
	}
	return nil, domain.ErrNotFound
}

func (m *mockWordStore) Migrate(ctx context.Context, records []domain.Record) (int, error) {
	m.mu.Lock()
	m.migrated = append(m.migrated, records...)
	m.mu.Unlock()
	if m.MigrateFunc != nil {
		return m.MigrateFunc(ctx, records)
	}
	return len(records), nil
}

func (m *mockWordStore) Dump(ctx context.Context) ([]domain.Record, error) {
	if m.DumpFunc != nil {
		return m.DumpFunc(ctx)
	}
	return []domain.Record{}, nil
}

func (m *mockWordStore) Stats(ctx context.Context) (domain.StoreStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return domain.StoreStats{}, nil
}

type mockDictionary struct {
	FetchEntryFunc func(ctx context.Context, word string) (*provider.DictionaryResult, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockDictionary) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, word)
	m.mu.Unlock()
	if m.FetchEntryFunc != nil {
		return m.FetchEntryFunc(ctx, word)
	}
	return nil, nil
}

type mockTxManager struct{}

func (mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
