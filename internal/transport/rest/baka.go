package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/bakabot/internal/domain"
	"github.com/heartmarshall/bakabot/internal/service/baka"
)

// maxValidateBody caps POST /api/v1/validate request bodies.
const maxValidateBody = 64 << 10

// bakaService defines the minimal interface needed by BakaHandler.
type bakaService interface {
	Generate(ctx context.Context, target int) ([]string, error)
	Produce(ctx context.Context, target int) (*baka.ProduceResult, error)
	Validate(text string, target int) ([]domain.Candidate, error)
	History(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error)
	Format(words []string) string
}

// BakaHandler serves the phrase API.
type BakaHandler struct {
	svc           bakaService
	defaultTarget int
	maxTarget     int
	log           *slog.Logger
}

// NewBakaHandler creates a BakaHandler. Requests without a target use
// defaultTarget; targets above maxTarget are rejected.
func NewBakaHandler(svc bakaService, defaultTarget, maxTarget int, logger *slog.Logger) *BakaHandler {
	return &BakaHandler{
		svc:           svc,
		defaultTarget: defaultTarget,
		maxTarget:     maxTarget,
		log:           logger.With("handler", "baka"),
	}
}

type phraseResponse struct {
	Text      string   `json:"text"`
	Words     []string `json:"words"`
	Syllables int      `json:"syllables"`
}

type bakaResponse struct {
	Mode     string           `json:"mode"`
	Target   int              `json:"target"`
	Attempts int              `json:"attempts,omitempty"`
	Phrases  []phraseResponse `json:"phrases"`
}

type validateRequest struct {
	Text   string `json:"text"`
	Target *int   `json:"target"`
}

type validateResponse struct {
	Target     int              `json:"target"`
	Candidates []phraseResponse `json:"candidates"`
}

type historyItem struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Text      string    `json:"text"`
	Syllables int       `json:"syllables"`
	Attempts  int       `json:"attempts"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

type historyResponse struct {
	Phrases []historyItem `json:"phrases"`
}

// Baka handles GET /api/v1/baka?mode=offline|validated&target=N.
func (h *BakaHandler) Baka(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	target, err := h.parseTarget(q.Get("target"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	mode := domain.PhraseModeOffline
	if m := q.Get("mode"); m != "" {
		mode = domain.PhraseMode(m)
	}

	switch mode {
	case domain.PhraseModeOffline:
		words, err := h.svc.Generate(r.Context(), target)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, bakaResponse{
			Mode:    mode.String(),
			Target:  target,
			Phrases: []phraseResponse{h.toPhrase(words, target)},
		})
	case domain.PhraseModeValidated:
		res, err := h.svc.Produce(r.Context(), target)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, bakaResponse{
			Mode:     mode.String(),
			Target:   target,
			Attempts: res.Attempts,
			Phrases:  h.toPhrases(res.Candidates),
		})
	default:
		handleError(h.log, w, r, domain.NewValidationError("mode", "must be offline or validated"))
	}
}

// Validate handles POST /api/v1/validate.
func (h *BakaHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxValidateBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target := h.defaultTarget
	if req.Target != nil {
		target = *req.Target
	}
	if err := h.checkTarget(target); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	candidates, err := h.svc.Validate(req.Text, target)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Target:     target,
		Candidates: h.toPhrases(candidates),
	})
}

// History handles GET /api/v1/history?mode=&limit=&offset=.
func (h *BakaHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.PhraseFilter
	if m := q.Get("mode"); m != "" {
		mode := domain.PhraseMode(m)
		filter.Mode = &mode
	}

	var errs []domain.FieldError
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be a non-negative integer"})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	phrases, err := h.svc.History(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]historyItem, len(phrases))
	for i, p := range phrases {
		items[i] = historyItem{
			ID:        p.ID.String(),
			Mode:      p.Mode.String(),
			Text:      p.Text,
			Syllables: p.Syllables,
			Attempts:  p.Attempts,
			Source:    p.Source,
			CreatedAt: p.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, historyResponse{Phrases: items})
}

func (h *BakaHandler) parseTarget(raw string) (int, error) {
	if raw == "" {
		return h.defaultTarget, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("target", "must be an integer")
	}
	return n, h.checkTarget(n)
}

func (h *BakaHandler) checkTarget(n int) error {
	if n < 0 || n > h.maxTarget {
		return domain.NewValidationError("target", fmt.Sprintf("must be between 0 and %d", h.maxTarget))
	}
	return nil
}

func (h *BakaHandler) toPhrase(words []string, syllables int) phraseResponse {
	if words == nil {
		words = []string{}
	}
	return phraseResponse{Text: h.svc.Format(words), Words: words, Syllables: syllables}
}

func (h *BakaHandler) toPhrases(candidates []domain.Candidate) []phraseResponse {
	out := make([]phraseResponse, len(candidates))
	for i, c := range candidates {
		out[i] = h.toPhrase(c.Words, c.Syllables)
	}
	return out
}
