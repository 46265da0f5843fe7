package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/forgefit/forgefit-backend/internal/clients/openai"
	"github.com/forgefit/forgefit-backend/internal/db"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/utils"
)

type Config struct {
	Port           string
	AllowOrigins   []string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	RedisAddr      string
	DB             db.Config
	OpenAI         openai.Config
}

// LoadConfig reads everything from the environment. The only hard
// requirement is the model API key; the server refuses to start without it
// rather than failing on the first generation request.
func LoadConfig(log *logger.Logger) (Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Port:           utils.GetEnv("PORT", "8080", log),
		AllowOrigins:   origins,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		RedisAddr:      utils.GetEnv("REDIS_ADDR", "", log),
		DB: db.Config{
			Host:     utils.GetEnv("DB_HOST", "localhost", log),
			Port:     utils.GetEnv("DB_PORT", "5432", log),
			User:     utils.GetEnv("DB_USER", "postgres", log),
			Password: utils.GetEnv("DB_PASSWORD", "postgres", log),
			Name:     utils.GetEnv("DB_NAME", "forgefit", log),
			SSLMode:  utils.GetEnv("DB_SSLMODE", "disable", log),
		},
		OpenAI: openai.Config{
			APIKey:          apiKey,
			BaseURL:         utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com", log),
			Model:           utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini", log),
			Temperature:     utils.GetEnvAsFloat("OPENAI_TEMPERATURE", 0.2, log),
			MaxOutputTokens: utils.GetEnvAsInt("OPENAI_MAX_OUTPUT_TOKENS", 4096, log),
			RequestTimeout:  time.Duration(utils.GetEnvAsInt("OPENAI_REQUEST_TIMEOUT", 20, log)) * time.Second,
			MaxRetries:      utils.GetEnvAsInt("OPENAI_MAX_RETRIES", 2, log),
		},
	}, nil
}
