package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomas-vilte/dishform/internal/commands/completion_helper"
	"github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/urfave/cli/v3"
)

var errMissingArgs = errors.New("missing arguments")

func (c *ConfigCommandFactory) newPathCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: t.GetMessage("config.path_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			_, err := fmt.Fprintln(completion_helper.Writer(command), cfg.PathFile)
			return err
		},
	}
}
