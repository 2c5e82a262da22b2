package dish

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/tui"
	"github.com/urfave/cli/v3"
)

func (f *DishCommandFactory) newNewCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: t.GetMessage("dish.new_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ctrl, err := f.container.NewController()
			if err != nil {
				return err
			}
			prober, err := f.container.NewProber()
			if err != nil {
				return err
			}

			logger.Silence()

			if _, err := f.run(tui.New(ctx, ctrl, prober, t)); err != nil {
				return fmt.Errorf("error running form: %w", err)
			}
			return nil
		},
	}
}
