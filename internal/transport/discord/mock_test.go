package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/heartmarshall/bakabot/internal/service/baka"
)

// replierMock is a function-field mock of replier.
type replierMock struct {
	ReplyFunc func(ctx context.Context, in baka.ReplyInput) (string, error)
	Provider  bool

	mu    sync.Mutex
	calls []baka.ReplyInput
}

func (m *replierMock) Reply(ctx context.Context, in baka.ReplyInput) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()
	return m.ReplyFunc(ctx, in)
}

func (m *replierMock) HasProvider() bool { return m.Provider }

func (m *replierMock) ReplyCalls() []baka.ReplyInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]baka.ReplyInput(nil), m.calls...)
}

// senderMock records follow-up messages.
type senderMock struct {
	err error

	mu       sync.Mutex
	messages []string
}

func (m *senderMock) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, data.Content)
	if m.err != nil {
		return nil, m.err
	}
	return &discordgo.Message{Content: data.Content}, nil
}

func (m *senderMock) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// overwriterMock records registered commands.
type overwriterMock struct {
	appID, guildID string
	commands       []*discordgo.ApplicationCommand
	err            error
}

func (m *overwriterMock) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	m.appID, m.guildID, m.commands = appID, guildID, commands
	if m.err != nil {
		return nil, m.err
	}
	return commands, nil
}
