package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// provider names with registered OAuth support
var oauthProviderNames = []string{"google", "github", "microsoft"}

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	baseURL := os.Getenv("BASE_URL")
	port := os.Getenv("PORT")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if port == "" {
		port = "8080"
	}

	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	providers := make(map[string]OAuthCredentials)

	for _, name := range oauthProviderNames {
		prefix := strings.ToUpper(name)
		clientID := os.Getenv(prefix + "_CLIENT_ID")
		clientSecret := os.Getenv(prefix + "_CLIENT_SECRET")

		// a provider is only enabled when both halves of the credential exist
		if clientID != "" && clientSecret != "" {
			providers[name] = OAuthCredentials{
				ClientID:     clientID,
				ClientSecret: clientSecret,
			}
		}
	}

	return &Config{
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		SessionSecret:  sessionSecret,
		BaseURL:        baseURL,
		Port:           port,
		Environment:    environment,
		AllowedOrigins: parseAllowedOrigins(os.Getenv("ALLOWED_ORIGINS")),
		Providers:      providers,
	}, nil
}

// splits the comma-separated ALLOWED_ORIGINS value
func parseAllowedOrigins(raw string) []string {
	if raw == "" {
		return []string{"http://localhost:3000"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
