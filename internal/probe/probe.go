// Package probe checks once whether the dishes service accepts requests.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/httpclient"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/models"
)

type Mode string

const (
	// ModeLiveness sends HEAD to the dishes endpoint.
	ModeLiveness Mode = "liveness"
	// ModeSubmit posts TestRecipe. Every run stores one more recipe on the
	// server.
	ModeSubmit Mode = "submit"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLiveness, "":
		return ModeLiveness, nil
	case ModeSubmit:
		return ModeSubmit, nil
	}
	return "", fmt.Errorf("unknown probe mode %q", s)
}

// TestRecipe is the known-valid payload posted in ModeSubmit.
var TestRecipe = models.SandwichPayload{
	Name:            "Test",
	PreparationTime: "02:10:23",
	Type:            models.DishSandwich,
	SlicesOfBread:   2,
}

// Client is the subset of *httpclient.Client the prober needs.
type Client interface {
	Head(ctx context.Context, path string) (*httpclient.Response, error)
	PostJSON(ctx context.Context, path string, body any) (*httpclient.Response, error)
}

// Result is the outcome of one check. Status is 0 when the request never got
// a response.
type Result struct {
	Status    int
	Available bool
	Err       error
}

// Unavailable reports whether status marks the service as down. Only 400,
// 401 and 500 do; anything else, including no status at all, is healthy.
func Unavailable(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError:
		return true
	}
	return false
}

// Banner is the advisory "service unavailable" flag shown above the form.
// Last write wins.
type Banner struct {
	mu      sync.RWMutex
	raised  bool
	message string
}

func (b *Banner) Raise(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raised = true
	b.message = message
}

func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raised = false
	b.message = ""
}

// Get returns whether the banner is raised and its message.
func (b *Banner) Get() (bool, string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.raised, b.message
}

type Prober struct {
	client Client
	mode   Mode
	path   string
	banner *Banner
}

type Option func(*Prober)

func WithMode(mode Mode) Option {
	return func(p *Prober) {
		if mode != "" {
			p.mode = mode
		}
	}
}

func WithPath(path string) Option {
	return func(p *Prober) {
		if path != "" {
			p.path = path
		}
	}
}

func WithBanner(b *Banner) Option {
	return func(p *Prober) {
		if b != nil {
			p.banner = b
		}
	}
}

func NewProber(client Client, opts ...Option) *Prober {
	p := &Prober{
		client: client,
		mode:   ModeLiveness,
		path:   "dishes",
		banner: &Banner{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Prober) Banner() *Banner {
	return p.banner
}

func (p *Prober) Mode() Mode {
	return p.mode
}

// Check sends one request and classifies the reply. It does not touch the
// banner.
func (p *Prober) Check(ctx context.Context) Result {
	ctx = logger.With(ctx, "mode", string(p.mode))

	var (
		resp *httpclient.Response
		err  error
	)
	switch p.mode {
	case ModeSubmit:
		logger.Warn(ctx, "availability probe posts a test recipe, it will be stored on the server")
		resp, err = p.client.PostJSON(ctx, p.path, TestRecipe)
	default:
		resp, err = p.client.Head(ctx, p.path)
	}

	if err != nil {
		status, _ := httpclient.StatusCode(err)
		result := Result{Status: status, Available: !Unavailable(status), Err: err}
		logger.Debug(ctx, "availability probe finished with error", "status", status, "available", result.Available, "error", err)
		return result
	}

	logger.Debug(ctx, "availability probe finished", "status", resp.StatusCode)
	return Result{Status: resp.StatusCode, Available: true}
}

// Run checks the service and updates the banner with the outcome.
func (p *Prober) Run(ctx context.Context) Result {
	result := p.Check(ctx)
	if result.Available {
		p.banner.Clear()
	} else {
		p.banner.Raise(domainErrors.ErrServiceUnavailable.Message)
	}
	return result
}

// Start runs the probe in the background. The channel yields exactly one
// result and is then closed.
func (p *Prober) Start(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- p.Run(ctx)
	}()
	return out
}
