package health

import (
	"context"

	"github.com/thomas-vilte/dishform/internal/commands/completion_helper"
	"github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/di"
	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/probe"
	"github.com/thomas-vilte/dishform/internal/ui"
	"github.com/urfave/cli/v3"
)

type ProbeCommandFactory struct {
	container *di.Container
}

func NewProbeCommandFactory(container *di.Container) *ProbeCommandFactory {
	return &ProbeCommandFactory{container: container}
}

func (f *ProbeCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: t.GetMessage("probe.usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := completion_helper.Writer(command)

			prober, err := f.container.NewProber()
			if err != nil {
				return err
			}

			var result probe.Result
			_ = ui.WithSpinner(
				t.GetMessage("probe.checking", 0, map[string]interface{}{"URL": cfg.ServiceURL()}),
				t.GetMessage("probe.done", 0, nil),
				func() error {
					result = prober.Run(ctx)
					return nil
				},
			)

			if !result.Available {
				_, msg := prober.Banner().Get()
				ui.PrintBanner(w, msg)
				return domainErrors.ErrServiceUnavailable.
					WithError(result.Err).
					WithContext("status", result.Status)
			}

			if result.Status == 0 {
				ui.PrintWarning(w, t.GetMessage("probe.no_status", 0, map[string]interface{}{
					"Error": result.Err,
				}))
				return nil
			}

			ui.PrintSuccess(w, t.GetMessage("probe.available", 0, map[string]interface{}{
				"Status": result.Status,
				"Mode":   string(prober.Mode()),
			}))
			return nil
		},
	}
}
