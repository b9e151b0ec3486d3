package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend/database"
	"backend/llm"
	"backend/logging"
	"backend/server"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Sources: cli.EnvVars("DB_BACKEND"),
			Name:    "db-backend",
			Aliases: []string{"db"},
			Value:   "sqlite",
			Usage:   "database driver to use (sqlite, postgres)",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("DB_PATH"),
			Name:    "db-path",
			Aliases: []string{"dp"},
			Value:   "data.db",
			Usage:   "For sqlite the path to the database file",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("DATABASE_URL"),
			Name:    "db-dsn",
			Usage:   "For postgres the connection string",
		},
		&cli.BoolFlag{
			Sources: cli.EnvVars("RESET_DB"),
			Name:    "reset-db",
			Usage:   "drop all tables before migrating",
		},
		&cli.BoolFlag{
			Sources: cli.EnvVars("DEBUG"),
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("HOST"),
			Name:    "host",
			Aliases: []string{"b"},
			Value:   "127.0.0.1",
			Usage:   "server bind address",
		},
		&cli.IntFlag{
			Sources: cli.EnvVars("PORT"),
			Name:    "port",
			Aliases: []string{"p"},
			Value:   1984,
			Usage:   "server port",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("COOKIE_DOMAIN"),
			Name:    "cookie-domain",
			Usage:   "Domain attribute of the session cookie, empty for host only",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("LLM_PROVIDER"),
			Name:    "llm-provider",
			Value:   GetBuildTimeLLMProvider(),
			Usage:   "model provider (openrouter, gemini)",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("LLM_BASE_URL"),
			Name:    "llm-base-url",
			Value:   llm.DefaultOpenRouterURL,
			Usage:   "base url of the OpenAI compatible endpoint",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("OPENROUTER_API_KEY"),
			Name:    "openrouter-api-key",
			Usage:   "api key for the OpenAI compatible endpoint",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("GEMINI_API_KEY"),
			Name:    "gemini-api-key",
			Usage:   "api key for the gemini provider",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("EXTRACTION_MODEL"),
			Name:    "extraction-model",
			Usage:   "empty picks the default of the selected provider",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("GENERATION_MODEL"),
			Name:    "generation-model",
			Usage:   "empty picks the default of the selected provider",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("CHAT_MODEL"),
			Name:    "chat-model",
			Usage:   "empty picks the default of the selected provider",
		},
		&cli.DurationFlag{
			Sources: cli.EnvVars("LLM_TIMEOUT"),
			Name:    "llm-timeout",
			Value:   2 * time.Minute,
			Usage:   "timeout of a single model request, 0 disables it",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("DEFAULT_USER"),
			Name:    "default-user",
			Value:   GetBuildTimeDefaultUser(),
			Usage:   "admin user created on startup as email:password, empty to skip",
		},
	}
}

func ServerCli() *cli.Command {
	return &cli.Command{
		Name:  "backend",
		Usage: "automation session server",
		Flags: serverFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			log, err := logging.New(c.Bool("debug"))
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			DB, err := database.SetupDatabase(database.Config{
				Backend:    c.String("db-backend"),
				SqlitePath: c.String("db-path"),
				DSN:        c.String("db-dsn"),
				Reset:      c.Bool("reset-db"),
				Debug:      c.Bool("debug"),
			}, log)
			if err != nil {
				return err
			}

			if raw := c.String("default-user"); raw != "" {
				email, password, err := ParseCredentials(raw)
				if err != nil {
					return fmt.Errorf("default user: %w", err)
				}
				if _, err := database.CreateUser(DB, "admin", email, []byte(password), true); err != nil {
					return fmt.Errorf("create default user: %w", err)
				}
				log.Info("default user ready", zap.String("email", email))
			}

			provider, err := llm.NewProvider(ctx, llm.Config{
				Provider:         c.String("llm-provider"),
				BaseURL:          c.String("llm-base-url"),
				OpenRouterAPIKey: c.String("openrouter-api-key"),
				GeminiAPIKey:     c.String("gemini-api-key"),
				Referer:          fmt.Sprintf("http://%s:%d", c.String("host"), c.Int("port")),
				Title:            "Automation Sessions",
				Timeout:          c.Duration("llm-timeout"),
			}, log)
			if err != nil {
				return err
			}

			s, err := server.NewBackendServer(server.Options{
				Host:            c.String("host"),
				Port:            c.Int("port"),
				CookieDomain:    c.String("cookie-domain"),
				ExtractionModel: c.String("extraction-model"),
				GenerationModel: c.String("generation-model"),
				ChatModel:       c.String("chat-model"),
			}, DB, provider, log)
			if err != nil {
				return err
			}
			return s.Run(ctx)
		},
	}
}
