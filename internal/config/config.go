package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Baka      BakaConfig      `yaml:"baka"`
	Provider  ProviderConfig  `yaml:"provider"`
	Discord   DiscordConfig   `yaml:"discord"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// APIEnabled mounts the /api/v1 routes. They require auth.jwt_secret.
	APIEnabled bool `yaml:"api_enabled" env:"SERVER_API_ENABLED" env-default:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN disables
// phrase history.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool { return c.DSN != "" }

// AuthConfig holds API token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"bakabot"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// LexiconConfig selects the syllable table. An empty Path uses the embedded table.
type LexiconConfig struct {
	Path            string `yaml:"path"             env:"LEXICON_PATH"`
	Format          string `yaml:"format"           env:"LEXICON_FORMAT"           env-default:"csv"`
	MaxSyllables    int    `yaml:"max_syllables"    env:"LEXICON_MAX_SYLLABLES"    env-default:"5"`
	DuplicatePolicy string `yaml:"duplicate_policy" env:"LEXICON_DUPLICATE_POLICY" env-default:"first"`
	RequireCoverage bool   `yaml:"require_coverage" env:"LEXICON_REQUIRE_COVERAGE" env-default:"true"`
}

// BakaConfig holds phrase production settings.
type BakaConfig struct {
	Label       string        `yaml:"label"        env:"BAKA_LABEL"        env-default:"Baka"`
	Target      int           `yaml:"target"       env:"BAKA_TARGET"       env-default:"5"`
	MaxTarget   int           `yaml:"max_target"   env:"BAKA_MAX_TARGET"   env-default:"25"`
	MaxAttempts int           `yaml:"max_attempts" env:"BAKA_MAX_ATTEMPTS" env-default:"10"`
	Timeout     time.Duration `yaml:"timeout"      env:"BAKA_TIMEOUT"      env-default:"60s"`
	Strategy    string        `yaml:"strategy"     env:"BAKA_STRATEGY"     env-default:"backtracking"`
}

// ProviderConfig selects the text provider used in validated mode. An empty
// Name leaves only offline mode available.
type ProviderConfig struct {
	Name       string        `yaml:"name"        env:"PROVIDER_NAME"`
	APIKey     string        `yaml:"api_key"     env:"PROVIDER_API_KEY"`
	Model      string        `yaml:"model"       env:"PROVIDER_MODEL"`
	BaseURL    string        `yaml:"base_url"    env:"PROVIDER_BASE_URL"`
	MaxTokens  int           `yaml:"max_tokens"  env:"PROVIDER_MAX_TOKENS"  env-default:"64"`
	PromptPath string        `yaml:"prompt_path" env:"PROVIDER_PROMPT_PATH"`
	Timeout    time.Duration `yaml:"timeout"     env:"PROVIDER_TIMEOUT"     env-default:"30s"`
}

// DiscordConfig holds the Discord application settings.
type DiscordConfig struct {
	Enabled       bool   `yaml:"enabled"        env:"DISCORD_ENABLED"        env-default:"false"`
	BotToken      string `yaml:"bot_token"      env:"DISCORD_BOT_TOKEN"`
	ApplicationID string `yaml:"application_id" env:"DISCORD_APPLICATION_ID"`
	PublicKey     string `yaml:"public_key"     env:"DISCORD_PUBLIC_KEY"`
	GuildID       string `yaml:"guild_id"       env:"DISCORD_GUILD_ID"`
	CommandName   string `yaml:"command_name"   env:"DISCORD_COMMAND_NAME"   env-default:"baka"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	APIPerMinute     int           `yaml:"api_per_minute"     env:"RATE_LIMIT_API_PER_MINUTE"     env-default:"30"`
	DiscordPerMinute int           `yaml:"discord_per_minute" env:"RATE_LIMIT_DISCORD_PER_MINUTE" env-default:"120"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"1m"`
}
