// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colorsync/colorsync/cmd/app/commands"
	"github.com/colorsync/colorsync/internal/app"
	"github.com/colorsync/colorsync/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "colorsync",
		Usage:   "Capability-token-gated personal color role reconciler",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "issue-token",
				Usage: "Sign a capability token for a workspace member",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Required: true,
						Usage:    "Workspace identifier",
					},
					&cli.Int64Flag{
						Name:     "user",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "User identifier",
					},
					&cli.StringFlag{
						Name:    "url",
						Usage:   "Color picker page URL to embed the token into",
						Value:   "",
						Aliases: []string{"l"},
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container := app.NewContainer(config.Load())
					logger := container.Logger()

					codec, err := container.TokenCodec()
					if err != nil {
						return fmt.Errorf("failed to initialize token codec: %w", err)
					}

					return commands.RunIssueToken(
						codec,
						logger,
						cmd.Int64("workspace"),
						cmd.Int64("user"),
						cmd.String("url"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "migrate-names",
				Usage: "Rewrite legacy-suffixed personal role names under the current encoding",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Required: true,
						Usage:    "Workspace identifier",
					},
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Value:   false,
						Usage:   "Report what would change without touching the directory",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container := app.NewContainer(config.Load())
					logger := container.Logger()

					dir, err := container.Directory()
					if err != nil {
						return fmt.Errorf("failed to initialize directory client: %w", err)
					}

					engine, err := container.ReconcileEngine()
					if err != nil {
						return fmt.Errorf("failed to initialize reconcile engine: %w", err)
					}

					encoding, err := container.NameEncoding()
					if err != nil {
						return fmt.Errorf("failed to initialize name encoding: %w", err)
					}

					return commands.RunMigrateNames(
						ctx,
						dir,
						engine,
						encoding,
						logger,
						cmd.Int64("workspace"),
						cmd.Bool("dry-run"),
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
