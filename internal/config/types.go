package config

// holds all runtime configuration, loaded once at startup
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	SessionSecret  string
	BaseURL        string
	Port           string
	Environment    string
	AllowedOrigins []string

	// OAuth client credentials keyed by provider name; a provider is
	// only present when both client id and secret were configured
	Providers map[string]OAuthCredentials
}

// client id/secret pair for one OAuth provider
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
