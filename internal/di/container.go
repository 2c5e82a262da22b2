package di

import (
	"fmt"
	"sync"
	"time"

	"github.com/thomas-vilte/dishform/internal/config"
	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/feedback"
	"github.com/thomas-vilte/dishform/internal/form"
	"github.com/thomas-vilte/dishform/internal/httpclient"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/probe"
	"github.com/thomas-vilte/dishform/internal/version"
)

// Container builds the application services from the loaded configuration.
// Services are created on first use so flags applied after construction
// (--config, --base-url) are honoured.
type Container struct {
	config       *config.Config
	translations *i18n.Translations
	transport    httpclient.HTTPClient

	mu     sync.Mutex
	client *httpclient.Client
}

type Option func(*Container)

// WithTransport replaces the HTTP transport, for tests.
func WithTransport(t httpclient.HTTPClient) Option {
	return func(c *Container) {
		c.transport = t
	}
}

func NewContainer(cfg *config.Config, trans *i18n.Translations, opts ...Option) *Container {
	c := &Container{
		config:       cfg,
		translations: trans,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) Translations() *i18n.Translations {
	return c.translations
}

// Client returns the shared dishes service client.
func (c *Container) Client() (*httpclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	settings, err := httpclient.NewSettings(c.config.ServiceURL(), map[string]string{
		"User-Agent": version.UserAgent(),
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("base_url", c.config.ServiceURL())
	}

	c.client = httpclient.NewClient(settings, c.transport)
	return c.client, nil
}

// NewController returns a fresh form controller bound to the shared client.
func (c *Container) NewController() (*form.Controller, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}

	machine := feedback.NewMachine(
		feedback.WithAutoHide(time.Duration(c.config.NotificationSeconds) * time.Second),
	)

	return form.NewController(client,
		form.WithMachine(machine),
		form.WithDishesPath(c.config.DishesPath),
		form.WithSuccessMessage(c.translations.GetMessage("feedback.success", 0, nil)),
	), nil
}

// NewProber returns an availability prober configured by probe_mode.
func (c *Container) NewProber() (*probe.Prober, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}

	mode, err := probe.ParseMode(string(c.config.ProbeMode))
	if err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("probe_mode: %w", err))
	}

	return probe.NewProber(client,
		probe.WithMode(mode),
		probe.WithPath(c.config.DishesPath),
	), nil
}
