package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/dishform/internal/commands/config"
	"github.com/thomas-vilte/dishform/internal/commands/dish"
	"github.com/thomas-vilte/dishform/internal/commands/health"
	"github.com/thomas-vilte/dishform/internal/commands/registry"
	"github.com/thomas-vilte/dishform/internal/commands/serve"
	cfg "github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/di"
	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/ui"
	"github.com/thomas-vilte/dishform/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	logger.Initialize(false, false)

	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.StopActiveSpinner()
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve the home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, domainErrors.ErrConfigInvalid.WithError(err)
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("language", cfgApp.Language)
	}

	container := di.NewContainer(cfgApp, translations)

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("dish", dish.NewDishCommandFactory(container)); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("probe", health.NewProbeCommandFactory(container)); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("mock-server", serve.NewMockServerCommandFactory()); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("config", config.NewConfigCommandFactory()); err != nil {
		return nil, nil, err
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "dishform",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: translations.GetMessage("flag.config", 0, nil),
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: translations.GetMessage("flag.base_url", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag.debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag.verbose", 0, nil),
			},
		},
		Before:                applyGlobalFlags(cfgApp),
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}

// applyGlobalFlags runs before any command: it sets the log level and
// overlays --config and --base-url on the loaded configuration. Overrides
// apply to this run only and are never saved.
func applyGlobalFlags(cfgApp *cfg.Config) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

		if path := cmd.String("config"); path != "" {
			loaded, err := cfg.LoadConfig(path)
			if err != nil {
				return ctx, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", path)
			}
			*cfgApp = *loaded
		}

		if baseURL := cmd.String("base-url"); baseURL != "" {
			if err := cfgApp.OverrideBaseURL(baseURL); err != nil {
				return ctx, domainErrors.ErrConfigInvalid.WithError(err).WithContext("base_url", baseURL)
			}
		}

		logger.Debug(ctx, "configuration ready", "path", cfgApp.PathFile, "base_url", cfgApp.ServiceURL())
		return ctx, nil
	}
}
