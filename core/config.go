package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env       string
		Debug     bool
		TestMode  bool
		AppName   string
		SecretKey string
		Build     string

		Server     ServerConfig
		Database   DatabaseConfig
		Rollbar    RollbarConfig
		Completion CompletionConfig
		Assistant  AssistantConfig
	}

	ServerConfig struct {
		Host                      string
		Port                      int
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	RollbarConfig struct {
		Token string
	}

	// CompletionConfig configures the hosted chat-completion API.
	// The assistant runs without it; an empty APIKey disables the LLM fallback.
	CompletionConfig struct {
		APIKey      string
		BaseURL     string
		Model       string
		MaxTokens   int
		Temperature float64
		Timeout     time.Duration
	}

	AssistantConfig struct {
		DefaultLanguage  string
		MinCompletionLen int
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads the app configuration: viper defaults, an optional
// config/.env.<env> file and automatic environment overrides, in that order.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Lakou")
	v.SetDefault("secretKey", "x2m(w#q5ze&7$+4t8@kf)jr!d9^ub3_vlhg6ns0pyc1oa%i*")
	v.SetDefault("build", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "lakou")
	v.SetDefault("database.user", "lakou")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("completion.model", "gpt-4o-mini")
	v.SetDefault("completion.maxTokens", 300)
	v.SetDefault("completion.temperature", 0.7)
	v.SetDefault("completion.timeout", 5*time.Second)
	v.SetDefault("assistant.defaultLanguage", "ht")
	v.SetDefault("assistant.minCompletionLen", 20)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:       env,
		Debug:     v.GetBool("debug"),
		TestMode:  v.GetBool("testMode"),
		AppName:   v.GetString("appName"),
		SecretKey: v.GetString("secretKey"),
		Build:     v.GetString("build"),
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			Port:                      v.GetInt("server.port"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
			ShutdownTimeout:           v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Rollbar: RollbarConfig{
			Token: v.GetString("rollbar.token"),
		},
		Completion: CompletionConfig{
			APIKey:      v.GetString("completion.apiKey"),
			BaseURL:     v.GetString("completion.baseURL"),
			Model:       v.GetString("completion.model"),
			MaxTokens:   v.GetInt("completion.maxTokens"),
			Temperature: v.GetFloat64("completion.temperature"),
			Timeout:     v.GetDuration("completion.timeout"),
		},
		Assistant: AssistantConfig{
			DefaultLanguage:  v.GetString("assistant.defaultLanguage"),
			MinCompletionLen: v.GetInt("assistant.minCompletionLen"),
		},
	}
}
