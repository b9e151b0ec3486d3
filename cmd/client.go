package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"backend/api/sessions"
	"backend/client"
	"backend/database"

	"github.com/urfave/cli/v3"
)

var defaultFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "host",
		Usage:   "The host to connect to",
		Value:   "http://localhost:1984",
		Sources: cli.EnvVars("OPEN_CHAT_HOST"),
	},
	&cli.StringFlag{
		Name:    "session-id",
		Usage:   "The login session id to use",
		Value:   "",
		Sources: cli.EnvVars("OPEN_CHAT_SESSION_ID"),
	},
}

func withDefaultFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, defaultFlags...), flags...)
}

func newClient(c *cli.Command) *client.Client {
	ocClient := client.NewClient(c.String("host"))
	ocClient.SetSessionId(c.String("session-id"))
	return ocClient
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sessionArg(c *cli.Command) (string, error) {
	id := c.Args().First()
	if id == "" {
		return "", fmt.Errorf("session id argument is required")
	}
	return id, nil
}

// GetClientCmd returns the client sub command for action, nil if unknown.
func GetClientCmd(action string) *cli.Command {
	switch action {
	case "login":
		return &cli.Command{
			Name:  "login",
			Usage: "Login and print the session id",
			Flags: withDefaultFlags(
				&cli.StringFlag{Name: "email", Value: "admin@localhost.local", Usage: "The email to use"},
				&cli.StringFlag{Name: "password", Value: "password", Usage: "The password to use"},
			),
			Action: func(ctx context.Context, c *cli.Command) error {
				sessionId, err := client.NewClient(c.String("host")).Login(ctx, c.String("email"), c.String("password"))
				if err != nil {
					return fmt.Errorf("failed to login: %w", err)
				}
				fmt.Printf("export OPEN_CHAT_SESSION_ID=%s\n", sessionId)
				fmt.Printf("export OPEN_CHAT_HOST=%s\n", c.String("host"))
				return nil
			},
		}
	case "register":
		return &cli.Command{
			Name:  "register",
			Usage: "Create an account",
			Flags: withDefaultFlags(
				&cli.StringFlag{Name: "name", Usage: "Display name"},
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true},
			),
			Action: func(ctx context.Context, c *cli.Command) error {
				return newClient(c).Register(ctx, c.String("name"), c.String("email"), c.String("password"))
			},
		}
	case "sessions":
		return &cli.Command{
			Name:  "sessions",
			Usage: "List sessions, or show one when an id is given",
			Flags: withDefaultFlags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				if id := c.Args().First(); id != "" {
					detail, err := newClient(c).GetSession(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(detail)
				}
				list, err := newClient(c).ListSessions(ctx)
				if err != nil {
					return err
				}
				return printJSON(list)
			},
		}
	case "create":
		return &cli.Command{
			Name:  "create",
			Usage: "Create a session",
			Flags: withDefaultFlags(
				&cli.StringFlag{Name: "agent", Value: string(database.AgentGeneral), Usage: "research, webapp_developer, web_crawler or general"},
				&cli.StringFlag{Name: "title"},
				&cli.StringFlag{Name: "message", Usage: "initial user message"},
			),
			Action: func(ctx context.Context, c *cli.Command) error {
				created, err := newClient(c).CreateSession(ctx, sessions.CreateSessionRequest{
					AgentType:      database.AgentType(c.String("agent")),
					Title:          c.String("title"),
					InitialMessage: c.String("message"),
				})
				if err != nil {
					return err
				}
				return printJSON(created)
			},
		}
	case "delete":
		return &cli.Command{
			Name:  "delete",
			Usage: "Delete a session",
			Flags: withDefaultFlags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				id, err := sessionArg(c)
				if err != nil {
					return err
				}
				return newClient(c).DeleteSession(ctx, id)
			},
		}
	case "send":
		return &cli.Command{
			Name:      "send",
			Usage:     "Append a user message to a session",
			ArgsUsage: "<session-id> <text>",
			Flags: withDefaultFlags(
				&cli.BoolFlag{Name: "auto-extract", Usage: "extract context after every third user message"},
			),
			Action: func(ctx context.Context, c *cli.Command) error {
				id, err := sessionArg(c)
				if err != nil {
					return err
				}
				text := c.Args().Get(1)
				if text == "" {
					return fmt.Errorf("message text is required")
				}
				ocClient := newClient(c)
				if !c.Bool("auto-extract") {
					messageId, err := ocClient.SendMessage(ctx, id, database.RoleUser, text)
					if err != nil {
						return err
					}
					return printJSON(sessions.AppendMessageResponse{MessageID: messageId})
				}
				messageId, extracted, err := ocClient.SendMessageAutoExtract(ctx, id, text)
				if err != nil {
					return err
				}
				return printJSON(map[string]interface{}{"messageId": messageId, "extraction": extracted})
			},
		}
	case "extract":
		return &cli.Command{
			Name:  "extract",
			Usage: "Extract context from a session's conversation",
			Flags: withDefaultFlags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				id, err := sessionArg(c)
				if err != nil {
					return err
				}
				result, err := newClient(c).ExtractContext(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(result)
			},
		}
	case "generate":
		return &cli.Command{
			Name:  "generate",
			Usage: "Generate automations for a session",
			Flags: withDefaultFlags(
				&cli.StringFlag{Name: "language", Usage: "python, javascript, typescript or bash"},
			),
			Action: func(ctx context.Context, c *cli.Command) error {
				id, err := sessionArg(c)
				if err != nil {
					return err
				}
				result, err := newClient(c).GenerateCode(ctx, id, database.Language(c.String("language")))
				if err != nil {
					return err
				}
				return printJSON(result)
			},
		}
	case "download":
		return &cli.Command{
			Name:      "download",
			Usage:     "Download an automation into a directory",
			ArgsUsage: "<session-id> <automation-id>",
			Flags: withDefaultFlags(
				&cli.StringFlag{Name: "out", Value: ".", Usage: "target directory"},
			),
			Action: func(ctx context.Context, c *cli.Command) error {
				id, err := sessionArg(c)
				if err != nil {
					return err
				}
				automationId := c.Args().Get(1)
				if automationId == "" {
					return fmt.Errorf("automation id is required")
				}
				filename, code, err := newClient(c).DownloadAutomation(ctx, id, automationId)
				if err != nil {
					return err
				}
				path := filepath.Join(c.String("out"), filepath.Base(filename))
				if err := os.WriteFile(path, code, 0o644); err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			},
		}
	}
	return nil
}
