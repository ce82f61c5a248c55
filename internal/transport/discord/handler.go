// Package discord serves the Discord interactions endpoint and registers the
// bot's slash command.
package discord

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/heartmarshall/bakabot/internal/domain"
	"github.com/heartmarshall/bakabot/internal/service/baka"
)

// Messages posted to the channel.
const (
	PendingMessage = "Give me a second..."
	UnknownMessage = "I don't know what to do about that."
	FailureMessage = "I did my best, but something went wrong...Baka!"
)

const (
	optionOffline = "offline"
	optionTarget  = "target"

	// followupTimeout stays below the 15 minute lifetime of an interaction token.
	followupTimeout = 10 * time.Minute
	maxBodyBytes    = 1 << 20
)

type replier interface {
	Reply(ctx context.Context, in baka.ReplyInput) (string, error)
	HasProvider() bool
}

type followupSender interface {
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config selects the command this handler answers and its defaults.
type Config struct {
	CommandName   string
	DefaultTarget int
	MaxTarget     int
}

// Handler answers Discord interactions over HTTP. Every request must carry a
// valid Ed25519 signature from the application's public key.
type Handler struct {
	svc       replier
	sender    followupSender
	publicKey ed25519.PublicKey
	cfg       Config
	log       *slog.Logger

	wg sync.WaitGroup
}

// NewHandler creates a Handler.
func NewHandler(svc replier, sender followupSender, publicKey ed25519.PublicKey, cfg Config, logger *slog.Logger) *Handler {
	return &Handler{
		svc:       svc,
		sender:    sender,
		publicKey: publicKey,
		cfg:       cfg,
		log:       logger.With("handler", "discord"),
	}
}

// ServeHTTP handles POST /discord/interactions.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if !discordgo.VerifyInteraction(r, h.publicKey) {
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	var interaction discordgo.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch interaction.Type {
	case discordgo.InteractionPing:
		writeResponse(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	case discordgo.InteractionApplicationCommand:
		writeResponse(w, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: PendingMessage},
		})
		h.followup(r.Context(), &interaction)
	default:
		h.log.WarnContext(r.Context(), "unsupported interaction", slog.Int("type", int(interaction.Type)))
		http.Error(w, "unsupported interaction type", http.StatusBadRequest)
	}
}

// Wait blocks until all pending follow-ups are sent or ctx is done.
func (h *Handler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// followup produces the reply in the background and posts it as a follow-up
// message. The request context only contributes its values.
func (h *Handler) followup(reqCtx context.Context, interaction *discordgo.Interaction) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(reqCtx), followupTimeout)
		defer cancel()

		content := h.reply(ctx, interaction)
		if _, err := h.sender.FollowupMessageCreate(interaction, false, &discordgo.WebhookParams{Content: content}, discordgo.WithContext(ctx)); err != nil {
			h.log.ErrorContext(ctx, "send follow-up failed",
				slog.String("interaction_id", interaction.ID),
				slog.String("error", err.Error()),
			)
			return
		}
		h.log.InfoContext(ctx, "follow-up sent", slog.String("interaction_id", interaction.ID))
	}()
}

func (h *Handler) reply(ctx context.Context, interaction *discordgo.Interaction) string {
	data := interaction.ApplicationCommandData()
	if data.Name != h.cfg.CommandName {
		h.log.WarnContext(ctx, "unknown command", slog.String("command", data.Name))
		return UnknownMessage
	}

	in, err := h.input(data)
	if err != nil {
		h.log.WarnContext(ctx, "invalid command options", slog.String("error", err.Error()))
		return FailureMessage
	}

	content, err := h.svc.Reply(ctx, in)
	if err != nil {
		h.log.ErrorContext(ctx, "reply failed",
			slog.String("mode", in.Mode.String()),
			slog.Int("target", in.Target),
			slog.String("error", err.Error()),
		)
		return FailureMessage
	}
	return content
}

// input reads command options. Validated mode is the default and falls back
// to offline when no text provider is configured.
func (h *Handler) input(data discordgo.ApplicationCommandInteractionData) (baka.ReplyInput, error) {
	in := baka.ReplyInput{Mode: domain.PhraseModeValidated, Target: h.cfg.DefaultTarget}
	for _, opt := range data.Options {
		switch {
		case opt.Name == optionOffline && opt.Type == discordgo.ApplicationCommandOptionBoolean:
			if opt.BoolValue() {
				in.Mode = domain.PhraseModeOffline
			}
		case opt.Name == optionTarget && opt.Type == discordgo.ApplicationCommandOptionInteger:
			in.Target = int(opt.IntValue())
		}
	}
	if !h.svc.HasProvider() {
		in.Mode = domain.PhraseModeOffline
	}
	return in, in.Validate(h.cfg.MaxTarget)
}

func writeResponse(w http.ResponseWriter, resp *discordgo.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}
