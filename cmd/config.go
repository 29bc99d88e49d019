package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
	AppEnvTest = "test"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"prod" validate:"oneof=dev prod test"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080" validate:"required,numeric"`

	DBDriver       string        `envconfig:"DB_DRIVER" default:"sqlite" validate:"oneof=postgres sqlite"`
	DBDSN          string        `envconfig:"DB_DSN"`
	DBHost         string        `envconfig:"DB_HOST"`
	DBPort         string        `envconfig:"DB_PORT" default:"5432" validate:"omitempty,numeric"`
	DBUser         string        `envconfig:"DB_USER"`
	DBPassword     string        `envconfig:"DB_PASSWORD"`
	DBName         string        `envconfig:"DB_NAME"`
	DBSslMode      string        `envconfig:"DB_SSLMODE" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	SQLitePath     string        `envconfig:"SQLITE_PATH" default:"quiz.db" validate:"required_if=DBDriver sqlite"`
	DBMaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10" validate:"min=1"`
	DBConnMaxLife  time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m" validate:"min=0"`
	DBDebug        bool          `envconfig:"DB_DEBUG" default:"false"`

	RedisURL   string        `envconfig:"REDIS_URL" validate:"omitempty,url"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h" validate:"min=0"`

	QuizBotToken    string  `envconfig:"QUIZ_BOT_TOKEN"`
	ServiceBotToken string  `envconfig:"SERVICE_BOT_TOKEN"`
	QuizID          string  `envconfig:"QUIZ_ID" default:"quiz_001" validate:"required,max=64"`
	QuizAnswerKey   string  `envconfig:"QUIZ_ANSWER_KEY"`
	AdminIDs        []int64 `envconfig:"ADMIN_IDS" validate:"dive,gt=0"`
	AgentIDs        []int64 `envconfig:"AGENT_IDS" validate:"dive,gt=0"`

	ExportDir  string `envconfig:"EXPORT_DIR" default:"exports" validate:"required"`
	ExportCron string `envconfig:"EXPORT_CRON" default:"0 0 * * * *" validate:"required"`
}

// LoadConfig loads envFile when it exists, then reads and validates the
// environment. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.DBDriver == persistence.DriverPostgres && c.DBDSN == "" && (c.DBHost == "" || c.DBUser == "" || c.DBName == "") {
		return errors.New("invalid config: postgres needs DB_DSN or DB_HOST, DB_USER and DB_NAME")
	}
	if _, err := c.AnswerKey(); err != nil {
		return fmt.Errorf("invalid config: QUIZ_ANSWER_KEY: %w", err)
	}
	return nil
}

func (c Config) IsDev() bool {
	return strings.EqualFold(c.AppEnv, AppEnvDev)
}

// LogLevelValue maps LOG_LEVEL onto slog.
func (c Config) LogLevelValue() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Database builds the persistence settings. For postgres an explicit DB_DSN
// wins over the individual DB_* keys.
func (c Config) Database() persistence.Config {
	cfg := persistence.Config{
		Driver:          c.DBDriver,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxOpenConns,
		ConnMaxLifetime: c.DBConnMaxLife,
		Debug:           c.DBDebug,
	}
	switch {
	case c.DBDriver == persistence.DriverSQLite:
		cfg.DSN = c.SQLitePath
	case c.DBDSN != "":
		cfg.DSN = c.DBDSN
	default:
		cfg.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
	}
	return cfg
}

// AnswerKey parses QUIZ_ANSWER_KEY, falling back to the built-in key.
func (c Config) AnswerKey() (quiz.AnswerKey, error) {
	raw := strings.TrimSpace(c.QuizAnswerKey)
	if raw == "" {
		raw = quiz.DefaultAnswerKey
	}
	return quiz.ParseAnswerKey(raw)
}

func (c Config) Admins() []kernel.UserID {
	return userIDs(c.AdminIDs)
}

func (c Config) Agents() []kernel.UserID {
	return userIDs(c.AgentIDs)
}

func userIDs(raw []int64) []kernel.UserID {
	ids := make([]kernel.UserID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.UserID(id))
	}
	return ids
}
