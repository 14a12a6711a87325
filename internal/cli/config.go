package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Token kinds. Session tokens go in the Authorization header; anonymous
// tokens are replayed as the identity cookie.
const (
	TokenKindSession = "session"
	TokenKindAnon    = "anon"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenKind string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("CHAMPGUESS_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("CHAMPGUESS_TOKEN"),
		TokenKind: TokenKindSession,
		TokenFile: getEnvOrDefault("CHAMPGUESS_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadToken loads the token from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No token file is fine
		}
		return err
	}

	// File format: "<kind> <token>", with a bare token read as a session
	// token for compatibility with tokens pasted by hand
	fields := strings.Fields(string(data))
	switch len(fields) {
	case 1:
		c.Token = fields[0]
		c.TokenKind = TokenKindSession
	case 2:
		c.TokenKind = fields[0]
		c.Token = fields[1]
	}
	return nil
}

// SaveToken saves the token and its kind to the token file
func (c *Config) SaveToken(kind, token string) error {
	c.Token = token
	c.TokenKind = kind

	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TokenFile, []byte(kind+" "+token), 0600)
}

// ClearToken removes the saved token file
func (c *Config) ClearToken() error {
	c.Token = ""
	c.TokenKind = TokenKindSession

	if err := os.Remove(c.TokenFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".champguess/token"
	}
	return filepath.Join(home, ".champguess", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
