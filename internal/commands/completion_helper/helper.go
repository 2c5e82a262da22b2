package completion_helper

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/models"
	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints all flags of the current command to facilitate shell completion.
// This is used to ensure flags are suggested even when the default urfave/cli completion might fail.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := Writer(cmd)
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}

// DishTypeComplete suggests the dish type tags followed by the flags.
func DishTypeComplete(ctx context.Context, cmd *cli.Command) {
	w := Writer(cmd)
	for _, dt := range models.DishTypes() {
		_, _ = fmt.Fprintln(w, string(dt))
	}
	DefaultFlagComplete(ctx, cmd)
}

// ConfigKeyComplete suggests the keys accepted by "config set".
func ConfigKeyComplete(_ context.Context, cmd *cli.Command) {
	w := Writer(cmd)
	for _, k := range config.Keys {
		_, _ = fmt.Fprintln(w, k)
	}
}

// Writer returns the output writer of the root command, falling back to
// stdout.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
