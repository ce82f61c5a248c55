package config

import (
	"encoding/hex"
	"fmt"

	"github.com/heartmarshall/bakabot/internal/generator"
	"github.com/heartmarshall/bakabot/internal/lexicon"
	"github.com/heartmarshall/bakabot/internal/provider"
)

const minJWTSecretLen = 32

// Validate performs business-rule validation for the server. It must be
// called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.ValidateCore(); err != nil {
		return err
	}

	if c.Server.APIEnabled && len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", minJWTSecretLen, len(c.Auth.JWTSecret))
	}

	if err := c.Discord.validate(); err != nil {
		return fmt.Errorf("discord: %w", err)
	}

	if c.RateLimit.APIPerMinute <= 0 || c.RateLimit.DiscordPerMinute <= 0 {
		return fmt.Errorf("rate_limit: limits must be > 0")
	}

	return nil
}

// ValidateCore checks only what phrase production needs. The CLI uses it so
// that offline commands work without server secrets.
func (c *Config) ValidateCore() error {
	if err := c.Lexicon.validate(); err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}
	if err := c.Baka.validate(); err != nil {
		return fmt.Errorf("baka: %w", err)
	}
	if err := c.Provider.validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	return nil
}

func (l *LexiconConfig) validate() error {
	if l.Format != lexicon.FormatCSV && l.Format != lexicon.FormatCMU {
		return fmt.Errorf("format must be %q or %q (got %q)", lexicon.FormatCSV, lexicon.FormatCMU, l.Format)
	}
	if l.MaxSyllables < 1 {
		return fmt.Errorf("max_syllables must be >= 1 (got %d)", l.MaxSyllables)
	}
	if !lexicon.DuplicatePolicy(l.DuplicatePolicy).IsValid() {
		return fmt.Errorf("duplicate_policy must be first, last or reject (got %q)", l.DuplicatePolicy)
	}
	return nil
}

func (b *BakaConfig) validate() error {
	if b.Label == "" {
		return fmt.Errorf("label must not be empty")
	}
	if b.MaxTarget < 0 {
		return fmt.Errorf("max_target must be >= 0 (got %d)", b.MaxTarget)
	}
	if b.Target < 0 || b.Target > b.MaxTarget {
		return fmt.Errorf("target must be between 0 and %d (got %d)", b.MaxTarget, b.Target)
	}
	if b.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", b.MaxAttempts)
	}
	if b.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", b.Timeout)
	}
	if !generator.Strategy(b.Strategy).IsValid() {
		return fmt.Errorf("strategy must be backtracking or iterative (got %q)", b.Strategy)
	}
	return nil
}

func (p *ProviderConfig) validate() error {
	if p.Name == "" {
		return nil
	}
	if !provider.IsKnown(p.Name) {
		return fmt.Errorf("unknown name %q", p.Name)
	}
	if p.Name != provider.NameStub && p.APIKey == "" {
		return fmt.Errorf("api_key is required for %s", p.Name)
	}
	if p.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be >= 1 (got %d)", p.MaxTokens)
	}
	return nil
}

func (d *DiscordConfig) validate() error {
	if !d.Enabled {
		return nil
	}
	if d.ApplicationID == "" {
		return fmt.Errorf("application_id is required")
	}
	if d.BotToken == "" {
		return fmt.Errorf("bot_token is required")
	}
	if d.CommandName == "" {
		return fmt.Errorf("command_name must not be empty")
	}
	if _, err := d.PublicKeyBytes(); err != nil {
		return err
	}
	return nil
}

// PublicKeyBytes decodes the hex-encoded Ed25519 application public key.
func (d DiscordConfig) PublicKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(d.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("public_key must be hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("public_key must be 32 bytes (got %d)", len(key))
	}
	return key, nil
}
