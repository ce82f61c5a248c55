package baka

import (
	"context"
	"sync"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// providerMock is a function-field mock of textProvider.
type providerMock struct {
	NameFunc     func() string
	CompleteFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

	mu    sync.Mutex
	calls []providerCompleteCall
}

type providerCompleteCall struct {
	Prompt    string
	MaxTokens int
}

func (m *providerMock) Name() string {
	if m.NameFunc == nil {
		return "mock"
	}
	return m.NameFunc()
}

func (m *providerMock) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, providerCompleteCall{Prompt: prompt, MaxTokens: maxTokens})
	m.mu.Unlock()
	return m.CompleteFunc(ctx, prompt, maxTokens)
}

func (m *providerMock) CompleteCalls() []providerCompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]providerCompleteCall(nil), m.calls...)
}

// phraseRepoMock is a function-field mock of phraseRepo.
type phraseRepoMock struct {
	CreateFunc      func(ctx context.Context, phrase *domain.Phrase) error
	CreateBatchFunc func(ctx context.Context, phrases []domain.Phrase) error
	ListFunc        func(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error)
	StatsFunc       func(ctx context.Context) (domain.PhraseStats, error)

	mu      sync.Mutex
	created []domain.Phrase
	batches int
}

func (m *phraseRepoMock) Create(ctx context.Context, phrase *domain.Phrase) error {
	m.mu.Lock()
	m.created = append(m.created, *phrase)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, phrase)
}

func (m *phraseRepoMock) CreateBatch(ctx context.Context, phrases []domain.Phrase) error {
	m.mu.Lock()
	m.created = append(m.created, phrases...)
	m.batches++
	m.mu.Unlock()
	if m.CreateBatchFunc == nil {
		return nil
	}
	return m.CreateBatchFunc(ctx, phrases)
}

func (m *phraseRepoMock) List(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error) {
	return m.ListFunc(ctx, filter)
}

func (m *phraseRepoMock) Stats(ctx context.Context) (domain.PhraseStats, error) {
	return m.StatsFunc(ctx)
}

func (m *phraseRepoMock) Batches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batches
}

// CreateCalls returns every phrase passed to Create or CreateBatch.
func (m *phraseRepoMock) CreateCalls() []domain.Phrase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Phrase(nil), m.created...)
}
