package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casper4088/quiz-bot/cmd"
	"github.com/casper4088/quiz-bot/internal/adapters/in/telegram"
	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "quizbot",
		Usage: "Telegram quiz and service order bots",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "dotenv file to seed the environment from",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run every configured bot, the HTTP API and the scheduled jobs",
				Action: func(c *cli.Context) error {
					return withRoot(c, serve)
				},
			},
			{
				Name:  "quiz",
				Usage: "run only the quiz bot",
				Action: func(c *cli.Context) error {
					return withRoot(c, runQuizBot)
				},
			},
			{
				Name:  "service",
				Usage: "run only the service order bot",
				Action: func(c *cli.Context) error {
					return withRoot(c, runServiceBot)
				},
			},
			{
				Name:  "export",
				Usage: "write results.xlsx and orders.xlsx to EXPORT_DIR once",
				Action: func(c *cli.Context) error {
					return withRoot(c, func(ctx context.Context, _ cmd.Config, root *cmd.CompositionRoot, _ *slog.Logger) error {
						return root.CreateExportJob().Run(ctx)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update the database schema and exit",
				Action: func(c *cli.Context) error {
					cfg, logger, err := setup(c)
					if err != nil {
						return err
					}
					db, err := openDatabase(cfg)
					if err != nil {
						return err
					}
					defer func() { _ = persistence.Close(db) }()
					logger.Info("schema is up to date", "driver", cfg.DBDriver)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("quizbot: %v", err)
	}
}

func setup(c *cli.Context) (cmd.Config, *slog.Logger, error) {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return cmd.Config{}, nil, err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(cfg cmd.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevelValue()}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// openDatabase connects and migrates; every command works on an up to date schema.
func openDatabase(cfg cmd.Config) (*gorm.DB, error) {
	db, err := persistence.Open(cfg.Database())
	if err != nil {
		return nil, err
	}
	if err = persistence.Migrate(db); err != nil {
		_ = persistence.Close(db)
		return nil, err
	}
	return db, nil
}

type action func(ctx context.Context, cfg cmd.Config, root *cmd.CompositionRoot, logger *slog.Logger) error

// withRoot builds the composition root and runs fn until SIGINT or SIGTERM.
func withRoot(c *cli.Context, fn action) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = persistence.Close(db) }()

	root, err := cmd.NewCompositionRoot(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close() }()

	return fn(ctx, cfg, root, logger)
}

func serve(ctx context.Context, cfg cmd.Config, root *cmd.CompositionRoot, logger *slog.Logger) error {
	if cfg.QuizBotToken == "" && cfg.ServiceBotToken == "" {
		return errors.New("neither QUIZ_BOT_TOKEN nor SERVICE_BOT_TOKEN is set")
	}

	e, err := root.CreateHTTPServer()
	if err != nil {
		return err
	}

	manager := root.CreateJobManager()
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	if cfg.QuizBotToken != "" {
		g.Go(func() error { return runQuizBot(ctx, cfg, root, logger) })
	}
	if cfg.ServiceBotToken != "" {
		g.Go(func() error { return runServiceBot(ctx, cfg, root, logger) })
	}
	startWebServer(ctx, g, e, cfg.HTTPPort, logger)

	return g.Wait()
}

func runQuizBot(ctx context.Context, cfg cmd.Config, root *cmd.CompositionRoot, logger *slog.Logger) error {
	bot, err := newBot(cfg.QuizBotToken, "QUIZ_BOT_TOKEN")
	if err != nil {
		return err
	}
	router, err := root.CreateQuizRouter(bot)
	if err != nil {
		return err
	}
	return telegram.Poll(ctx, bot, router, logger.With("bot", "quiz", "username", bot.Self.UserName))
}

func runServiceBot(ctx context.Context, cfg cmd.Config, root *cmd.CompositionRoot, logger *slog.Logger) error {
	bot, err := newBot(cfg.ServiceBotToken, "SERVICE_BOT_TOKEN")
	if err != nil {
		return err
	}
	router, err := root.CreateServiceRouter(bot)
	if err != nil {
		return err
	}
	return telegram.Poll(ctx, bot, router, logger.With("bot", "service", "username", bot.Self.UserName))
}

func newBot(token, name string) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, fmt.Errorf("%s is not set", name)
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting bot: %w", err)
	}
	return bot, nil
}

func startWebServer(ctx context.Context, g *errgroup.Group, e *echo.Echo, port string, logger *slog.Logger) {
	g.Go(func() error {
		logger.Info("http server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
}
