// Package generator assembles random word sequences whose syllable counts sum
// exactly to a target.
package generator

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// Strategy selects the search algorithm.
type Strategy string

const (
	// StrategyBacktracking undoes choices that strand an unreachable remainder.
	StrategyBacktracking Strategy = "backtracking"
	// StrategyIterative draws greedily and fails on an empty bucket. Only
	// suitable for lexicons that cover every count in [1, MaxSyllables].
	StrategyIterative Strategy = "iterative"
)

func (s Strategy) IsValid() bool {
	switch s {
	case StrategyBacktracking, StrategyIterative:
		return true
	}
	return false
}

const defaultMaxSteps = 1 << 16

// Source is the read side of the lexicon the generator draws from.
type Source interface {
	WordsForCount(n int) ([]string, error)
	HasCount(n int) bool
	MaxSyllables() int
}

// Generator is safe for concurrent use.
type Generator struct {
	words    Source
	strategy Strategy
	maxSteps int
	intn     func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithStrategy overrides the default backtracking strategy.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) { g.strategy = s }
}

// WithMaxSteps caps the number of search steps before giving up.
func WithMaxSteps(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxSteps = n
		}
	}
}

// WithRand makes the generator draw from r. Access to r is serialized.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		var mu sync.Mutex
		g.intn = func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return r.IntN(n)
		}
	}
}

// New creates a Generator over words.
func New(words Source, opts ...Option) *Generator {
	g := &Generator{
		words:    words,
		strategy: StrategyBacktracking,
		maxSteps: defaultMaxSteps,
		intn:     rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns words whose syllable counts sum to target. Word choice and
// word count are random. Generate(0) returns an empty slice without drawing.
func (g *Generator) Generate(target int) ([]string, error) {
	if target < 0 {
		return nil, domain.NewValidationError("target", "must be non-negative")
	}
	if g.strategy == StrategyIterative {
		return g.iterative(target)
	}
	return g.backtrack(target)
}

// frame is one level of the search: the syllables still owed and the
// bucket sizes not yet tried at this level.
type frame struct {
	remaining int
	untried   []int
}

func (g *Generator) newFrame(remaining int) frame {
	f := frame{remaining: remaining}
	for amt := 1; amt <= min(remaining, g.words.MaxSyllables()); amt++ {
		if g.words.HasCount(amt) {
			f.untried = append(f.untried, amt)
		}
	}
	return f
}

// backtrack keeps an explicit stack of frames. Each step either consumes one
// untried amount or pops an exhausted frame, so the search is finite. A
// remainder that exhausted its frame is recorded as dead and never expanded
// again, which keeps the total work within target*MaxSyllables steps.
func (g *Generator) backtrack(target int) ([]string, error) {
	words := make([]string, 0, target)
	dead := make(map[int]bool)
	stack := []frame{g.newFrame(target)}

	for steps := 0; ; steps++ {
		if steps >= g.maxSteps {
			return nil, fmt.Errorf("%w: target %d: gave up after %d steps", domain.ErrGenerationImpossible, target, steps)
		}

		top := &stack[len(stack)-1]
		if top.remaining == 0 {
			return words, nil
		}

		if len(top.untried) == 0 {
			dead[top.remaining] = true
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: no combination of words sums to %d", domain.ErrGenerationImpossible, target)
			}
			// Undo the choice that led into the exhausted frame.
			words = words[:len(words)-1]
			continue
		}

		i := g.intn(len(top.untried))
		amt := top.untried[i]
		last := len(top.untried) - 1
		top.untried[i] = top.untried[last]
		top.untried = top.untried[:last]

		rest := top.remaining - amt
		if dead[rest] {
			continue
		}

		bucket, err := g.words.WordsForCount(amt)
		if err != nil {
			continue
		}
		words = append(words, bucket[g.intn(len(bucket))])
		stack = append(stack, g.newFrame(rest))
	}
}

// iterative is the greedy variant: no undo, an empty bucket is fatal.
func (g *Generator) iterative(target int) ([]string, error) {
	words := make([]string, 0, target)
	maxAmt := g.words.MaxSyllables()
	if target > 0 && maxAmt < 1 {
		return nil, fmt.Errorf("%w: lexicon has no syllable buckets", domain.ErrGenerationImpossible)
	}

	for remaining := target; remaining > 0; {
		amt := 1 + g.intn(min(remaining, maxAmt))
		bucket, err := g.words.WordsForCount(amt)
		if err != nil {
			return nil, fmt.Errorf("generate %d: %w", target, err)
		}
		words = append(words, bucket[g.intn(len(bucket))])
		remaining -= amt
	}
	return words, nil
}
