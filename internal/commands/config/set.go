package config

import (
	"context"
	"strings"

	"github.com/thomas-vilte/dishform/internal/commands/completion_helper"
	"github.com/thomas-vilte/dishform/internal/config"
	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "set",
		Usage:         t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage:     t.GetMessage("config.set_args_usage", 0, nil),
		ShellComplete: completion_helper.ConfigKeyComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() < 2 {
				return domainErrors.ErrConfigInvalid.
					WithError(errMissingArgs).
					WithSuggestion(t.GetMessage("config.set_error_args", 0, nil))
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			if _, ok := cfg.Get(key); !ok {
				return domainErrors.ErrConfigUnknownKey.WithContext("key", key)
			}

			if err := cfg.Set(key, value); err != nil {
				return domainErrors.ErrConfigInvalid.WithError(err).WithContext("key", key)
			}

			if err := config.SaveConfig(cfg); err != nil {
				return domainErrors.ErrConfigInvalid.WithError(err).
					WithSuggestion(t.GetMessage("config.error_saving", 0, nil))
			}

			ui.PrintSuccess(completion_helper.Writer(command), t.GetMessage("config.set_success", 0, struct {
				Key   string
				Value string
			}{Key: key, Value: value}))

			return nil
		},
	}
}
