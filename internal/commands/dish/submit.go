package dish

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/thomas-vilte/dishform/internal/commands/completion_helper"
	"github.com/thomas-vilte/dishform/internal/draftfile"
	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/form"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/models"
	"github.com/thomas-vilte/dishform/internal/probe"
	"github.com/thomas-vilte/dishform/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// flagFields maps submit flags to the form fields they fill.
var flagFields = []struct {
	flag  string
	alias string
	field models.FieldName
	usage string
}{
	{"name", "n", models.FieldDishName, "dish.flag_name"},
	{"prep-time", "p", models.FieldPreparationTime, "dish.flag_prep_time"},
	{"type", "t", models.FieldDishType, "dish.flag_type"},
	{"slices", "", models.FieldNoOfSlices, "dish.flag_slices"},
	{"diameter", "", models.FieldDiameter, "dish.flag_diameter"},
	{"spiciness", "", models.FieldSpicinessScale, "dish.flag_spiciness"},
	{"bread", "", models.FieldSlicesOfBread, "dish.flag_bread"},
}

func (f *DishCommandFactory) newSubmitCommand(t *i18n.Translations) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   t.GetMessage("dish.flag_file", 0, nil),
		},
	}
	for _, ff := range flagFields {
		flag := &cli.StringFlag{
			Name:  ff.flag,
			Usage: t.GetMessage(ff.usage, 0, nil),
		}
		if ff.alias != "" {
			flag.Aliases = []string{ff.alias}
		}
		flags = append(flags, flag)
	}

	return &cli.Command{
		Name:          "submit",
		Usage:         t.GetMessage("dish.submit_usage", 0, nil),
		Flags:         flags,
		ShellComplete: completion_helper.DishTypeComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			return f.submit(ctx, command, t)
		},
	}
}

func (f *DishCommandFactory) submit(ctx context.Context, command *cli.Command, t *i18n.Translations) error {
	w := completion_helper.Writer(command)

	ctrl, err := f.container.NewController()
	if err != nil {
		return err
	}
	prober, err := f.container.NewProber()
	if err != nil {
		return err
	}

	var (
		result *form.SubmitResult
		health probe.Result
	)

	// The availability check starts with the command, like the form's mount
	// check, and a failed submission must not cancel it.
	var g errgroup.Group
	g.Go(func() error {
		health = prober.Run(ctx)
		return nil
	})
	g.Go(func() error {
		if err := fillDraft(ctrl, command, w, t); err != nil {
			return err
		}

		if errs := ctrl.Validate(); len(errs) > 0 {
			printValidation(w, errs, t)
			return domainErrors.ErrValidation.WithError(errs).WithContext("fields", len(errs))
		}

		return ui.WithSpinner(
			t.GetMessage("dish.submitting", 0, nil),
			t.GetMessage("feedback.success", 0, nil),
			func() error {
				var err error
				result, err = ctrl.Submit(ctx)
				return err
			},
		)
	})
	submitErr := g.Wait()

	if !health.Available {
		_, msg := prober.Banner().Get()
		ui.PrintBanner(w, msg)
	}

	if submitErr != nil {
		logger.Error(ctx, "dish submit failed", submitErr)
		return submitErr
	}

	dishType := result.Payload.DishType()
	ui.PrintSuccess(w, t.GetMessage("submit.sent", 0, map[string]interface{}{
		"Type":   t.GetMessage(dishType.MessageID(), 0, nil),
		"Status": result.StatusCode,
	}))
	ui.PrintRecipeSummary(w, result.Payload, result.StatusCode, t)
	return nil
}

// fillDraft applies the draft file, then any flag given on the command line.
// The dish type is settled first; values for fields of another variant are
// skipped with a warning and never parsed.
func fillDraft(ctrl *form.Controller, command *cli.Command, w io.Writer, t *i18n.Translations) error {
	var entries []draftfile.Entry
	if path := command.String("file"); path != "" {
		loaded, err := draftfile.Load(path)
		if err != nil {
			return err
		}
		entries = loaded
	}

	for _, ff := range flagFields {
		if command.IsSet(ff.flag) {
			entries = append(entries, draftfile.Entry{Field: ff.field, Value: command.String(ff.flag)})
		}
	}

	var rest []draftfile.Entry
	for _, e := range entries {
		if e.Field != models.FieldDishType {
			rest = append(rest, e)
			continue
		}
		if err := setField(ctrl, e); err != nil {
			return err
		}
	}

	selected := ctrl.Draft().DishType
	for _, e := range rest {
		if f, ok := models.LookupField(e.Field); ok && !f.VisibleTo(selected) {
			if selected.Valid() {
				ui.PrintWarning(w, t.GetMessage("dish.ignored_field", 0, map[string]interface{}{
					"Field": t.GetMessage(f.LabelID, 0, nil),
					"Type":  t.GetMessage(selected.MessageID(), 0, nil),
				}))
			}
			continue
		}
		if err := setField(ctrl, e); err != nil {
			return err
		}
	}
	return nil
}

func setField(ctrl *form.Controller, e draftfile.Entry) error {
	if err := ctrl.Set(e.Field, e.Value); err != nil {
		var appErr *domainErrors.AppError
		if errors.As(err, &appErr) {
			return appErr.WithContext("field", string(e.Field))
		}
		return fmt.Errorf("error setting %s: %w", e.Field, err)
	}
	return nil
}

func printValidation(w io.Writer, errs form.ValidationErrors, t *i18n.Translations) {
	ui.PrintError(w, t.GetMessage("validation.summary", len(errs), map[string]interface{}{
		"Count": len(errs),
	}))
	for _, fe := range errs {
		label := string(fe.Field)
		if f, ok := models.LookupField(fe.Field); ok {
			label = t.GetMessage(f.LabelID, 0, nil)
		}
		ui.PrintFieldError(w, label, fe.Message(t))
	}
}
