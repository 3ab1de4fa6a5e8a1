// Package config loads scratch settings from the environment, an
// optional .env file and an optional YAML config file, in that order of
// precedence (environment wins).
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable, e.g. SCRATCH_API_URL
const EnvPrefix = "SCRATCH"

// Config holds settings for both the notes server and the client side.
type Config struct {
	APIURL      string        // Base URL of the notes API (SCRATCH_API_URL)
	TokenPath   string        // Where login stores the session token (SCRATCH_TOKEN_PATH)
	Addr        string        // Listen address for serve (SCRATCH_ADDR)
	DBPath      string        // DuckDB file for serve; empty means in-memory (SCRATCH_DB_PATH)
	JWTSecret   string        // Token signing key for serve (SCRATCH_JWT_SECRET)
	EncryptKey  string        // 32-char AES key for note content at rest; empty disables (SCRATCH_ENCRYPTION_KEY)
	LogLevel    string        // debug, info, warn or error (SCRATCH_LOG_LEVEL)
	MsgPack     bool          // Send note content msgpack-encoded (SCRATCH_MSGPACK)
	Concurrency int           // Max in-flight replace updates, 0 = unbounded (SCRATCH_CONCURRENCY)
	Timeout     time.Duration // Per-request HTTP timeout (SCRATCH_TIMEOUT)
}

const (
	defaultAPIURL  = "http://localhost:8000"
	defaultAddr    = ":8000"
	defaultDBPath  = "./data/scratch.ddb"
	defaultTimeout = 30 * time.Second
)

// Load builds a Config. cfgFile may be empty.
func Load(cfgFile string) (*Config, error) {
	// A missing .env is the normal case
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("token_path", defaultTokenPath())
	v.SetDefault("addr", defaultAddr)
	v.SetDefault("db_path", defaultDBPath)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("encryption_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("msgpack", false)
	v.SetDefault("concurrency", 0)
	v.SetDefault("timeout", defaultTimeout)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, serr.Wrap(err, "failed to read config file", "path", cfgFile)
		}
	}

	cfg := &Config{
		APIURL:      v.GetString("api_url"),
		TokenPath:   v.GetString("token_path"),
		Addr:        v.GetString("addr"),
		DBPath:      v.GetString("db_path"),
		JWTSecret:   v.GetString("jwt_secret"),
		EncryptKey:  v.GetString("encryption_key"),
		LogLevel:    v.GetString("log_level"),
		MsgPack:     v.GetBool("msgpack"),
		Concurrency: v.GetInt("concurrency"),
		Timeout:     v.GetDuration("timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings that would only break later mid-request
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return serr.Wrap(err, "invalid SCRATCH_API_URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return serr.New("SCRATCH_API_URL must use http or https")
	}
	if c.TokenPath == "" {
		return serr.New("SCRATCH_TOKEN_PATH must not be empty")
	}
	if c.EncryptKey != "" && len(c.EncryptKey) != 32 {
		return serr.New("SCRATCH_ENCRYPTION_KEY must be exactly 32 characters")
	}
	if c.Concurrency < 0 {
		return serr.New("SCRATCH_CONCURRENCY must be zero or positive")
	}
	if c.Timeout <= 0 {
		return serr.New("SCRATCH_TIMEOUT must be a positive duration like '30s'")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return serr.New("SCRATCH_LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".scratch-token"
	}
	return filepath.Join(dir, "scratch", "token")
}
