package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/thomas-vilte/dishform/internal/commands/completion_helper"
	"github.com/thomas-vilte/dishform/internal/config"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/mockserver"
	"github.com/thomas-vilte/dishform/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultAddr = "127.0.0.1:8080"

type MockServerCommandFactory struct{}

func NewMockServerCommandFactory() *MockServerCommandFactory {
	return &MockServerCommandFactory{}
}

func (f *MockServerCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mock-server",
		Usage: t.GetMessage("mock.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: defaultAddr,
				Usage: t.GetMessage("mock.flag_addr", 0, nil),
			},
			&cli.IntFlag{
				Name:  "fail-status",
				Usage: t.GetMessage("mock.flag_fail_status", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			addr := command.String("addr")
			failStatus := int(command.Int("fail-status"))
			if failStatus != 0 && http.StatusText(failStatus) == "" {
				return fmt.Errorf("invalid --fail-status %d", failStatus)
			}

			if !command.Root().Bool("debug") {
				gin.SetMode(gin.ReleaseMode)
			}

			server := mockserver.New(
				mockserver.WithPath(cfg.DishesPath),
				mockserver.WithFailStatus(failStatus),
			)

			w := completion_helper.Writer(command)
			ui.PrintInfo(w, t.GetMessage("mock.listening", 0, map[string]interface{}{
				"URL":  fmt.Sprintf("http://%s/%s", addr, cfg.DishesPath),
				"Fail": failStatus,
			}))

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info(ctx, "mock server starting", "addr", addr, "fail_status", failStatus)
			if err := server.ListenAndServe(ctx, addr); err != nil {
				return err
			}

			ui.PrintInfo(w, t.GetMessage("mock.stopped", 0, nil))
			return nil
		},
	}
}
