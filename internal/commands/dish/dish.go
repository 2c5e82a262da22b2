package dish

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/di"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/urfave/cli/v3"
)

// ProgramRunner runs an interactive model until it quits.
type ProgramRunner func(m tea.Model) (tea.Model, error)

func runProgram(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

type DishCommandFactory struct {
	container *di.Container
	run       ProgramRunner
}

func NewDishCommandFactory(container *di.Container) *DishCommandFactory {
	return &DishCommandFactory{
		container: container,
		run:       runProgram,
	}
}

// WithProgramRunner replaces the terminal program runner, for tests.
func (f *DishCommandFactory) WithProgramRunner(run ProgramRunner) *DishCommandFactory {
	f.run = run
	return f
}

func (f *DishCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "dish",
		Aliases: []string{"d"},
		Usage:   t.GetMessage("dish.usage", 0, nil),
		Commands: []*cli.Command{
			f.newNewCommand(t),
			f.newSubmitCommand(t),
		},
	}
}
