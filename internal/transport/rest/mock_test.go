package rest

import (
	"context"

	"github.com/heartmarshall/bakabot/internal/domain"
	"github.com/heartmarshall/bakabot/internal/service/baka"
)

// bakaServiceMock is a function-field mock of bakaService.
type bakaServiceMock struct {
	GenerateFunc func(ctx context.Context, target int) ([]string, error)
	ProduceFunc  func(ctx context.Context, target int) (*baka.ProduceResult, error)
	ValidateFunc func(text string, target int) ([]domain.Candidate, error)
	HistoryFunc  func(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error)
}

func (m *bakaServiceMock) Generate(ctx context.Context, target int) ([]string, error) {
	return m.GenerateFunc(ctx, target)
}

func (m *bakaServiceMock) Produce(ctx context.Context, target int) (*baka.ProduceResult, error) {
	return m.ProduceFunc(ctx, target)
}

func (m *bakaServiceMock) Validate(text string, target int) ([]domain.Candidate, error) {
	return m.ValidateFunc(text, target)
}

func (m *bakaServiceMock) History(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error) {
	return m.HistoryFunc(ctx, filter)
}

func (m *bakaServiceMock) Format(words []string) string {
	return baka.FormatPhrase("Baka", words)
}

