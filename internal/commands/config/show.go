package config

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/dishform/internal/commands/completion_helper"
	"github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := completion_helper.Writer(command)

			_, _ = fmt.Fprintln(w, ui.Accent.Sprint(t.GetMessage("config.current", 0, nil)))
			_, _ = fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━")

			for _, key := range config.Keys {
				value, _ := cfg.Get(key)
				ui.PrintKeyValue(w, key, value)
			}

			if cfg.ProbeMode == config.ProbeSubmit {
				_, _ = fmt.Fprintln(w)
				ui.PrintWarning(w, t.GetMessage("config.probe_submit_warning", 0, nil))
			}

			return nil
		},
	}
}
