// Package form holds the recipe draft and turns it into one of the three
// dish payloads.
package form

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/feedback"
	"github.com/thomas-vilte/dishform/internal/httpclient"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/models"
)

const (
	DefaultDishesPath     = "dishes"
	DefaultSuccessMessage = "Recipe has been successfully saved!"
)

// Submitter sends a payload to the dishes service. *httpclient.Client
// satisfies it.
type Submitter interface {
	PostJSON(ctx context.Context, path string, body any) (*httpclient.Response, error)
}

// SubmitResult describes an accepted submission.
type SubmitResult struct {
	Payload    models.Payload
	StatusCode int
	Body       []byte
}

// Controller owns a draft and its submission feedback. It is safe for
// concurrent use.
type Controller struct {
	mu    sync.Mutex
	draft models.Draft

	submitter      Submitter
	machine        *feedback.Machine
	path           string
	successMessage string
}

type Option func(*Controller)

func WithMachine(m *feedback.Machine) Option {
	return func(c *Controller) {
		c.machine = m
	}
}

func WithDishesPath(path string) Option {
	return func(c *Controller) {
		if path != "" {
			c.path = path
		}
	}
}

func WithSuccessMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.successMessage = msg
		}
	}
}

func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		draft:          models.NewDraft(),
		submitter:      submitter,
		path:           DefaultDishesPath,
		successMessage: DefaultSuccessMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.machine == nil {
		c.machine = feedback.NewMachine()
	}
	return c
}

func (c *Controller) Feedback() *feedback.Machine {
	return c.machine
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

func (c *Controller) VisibleFields() []models.Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.VisibleFields(c.draft.DishType)
}

// edit applies fn to the draft. Editing after an outcome settles the
// feedback machine back to Idle.
func (c *Controller) edit(fn func(d *models.Draft)) {
	c.mu.Lock()
	fn(&c.draft)
	c.mu.Unlock()
	c.machine.Settle()
}

func (c *Controller) SetName(name string) {
	c.edit(func(d *models.Draft) { d.Name = name })
}

// SetDishType switches the active variant. Values typed into the other
// variants are kept but ignored.
func (c *Controller) SetDishType(tag string) error {
	dishType, err := models.ParseDishType(tag)
	if err != nil {
		return domainErrors.ErrUnknownDishType.WithError(err).WithContext("value", tag)
	}
	c.edit(func(d *models.Draft) { d.DishType = dishType })
	return nil
}

// SetPreparationTime stores the picker value and its HH:MM:SS rendering.
// A nil picker clears both.
func (c *Controller) SetPreparationTime(picker *time.Time) {
	var p *time.Time
	if picker != nil {
		v := *picker
		p = &v
	}
	formatted := ExtractPreparationTime(p)
	c.edit(func(d *models.Draft) {
		d.PreparationPicker = p
		d.PreparationTime = formatted
	})
}

// SetPreparationTimeText parses typed HH:MM:SS text as the picker value.
// Blank text clears the field; malformed text is rejected and changes
// nothing.
func (c *Controller) SetPreparationTimeText(text string) error {
	if isBlank(text) {
		c.SetPreparationTime(nil)
		return nil
	}
	picker, err := ParsePreparationTime(text)
	if err != nil {
		return domainErrors.ErrInvalidPreparationTime.WithError(err).WithContext("value", text)
	}
	c.SetPreparationTime(&picker)
	return nil
}

// SetDiameter stores raw re-formatted with two decimals. Non-numeric input
// is rejected and the previous value kept.
func (c *Controller) SetDiameter(raw string) error {
	formatted, err := FormatDiameter(raw)
	if err != nil {
		return domainErrors.ErrInvalidDiameter.WithError(err).WithContext("value", raw)
	}
	c.edit(func(d *models.Draft) { d.Pizza.Diameter = formatted })
	return nil
}

func (c *Controller) SetNoOfSlices(text string) {
	c.edit(func(d *models.Draft) { d.Pizza.NoOfSlices = text })
}

func (c *Controller) SetSpicinessScale(text string) {
	c.edit(func(d *models.Draft) { d.Soup.SpicinessScale = text })
}

func (c *Controller) SetSlicesOfBread(text string) {
	c.edit(func(d *models.Draft) { d.Sandwich.SlicesOfBread = text })
}

// Set routes value to the setter that owns field.
func (c *Controller) Set(field models.FieldName, value string) error {
	switch field {
	case models.FieldDishName:
		c.SetName(value)
	case models.FieldPreparationTime:
		return c.SetPreparationTimeText(value)
	case models.FieldDishType:
		return c.SetDishType(value)
	case models.FieldNoOfSlices:
		c.SetNoOfSlices(value)
	case models.FieldDiameter:
		return c.SetDiameter(value)
	case models.FieldSpicinessScale:
		c.SetSpicinessScale(value)
	case models.FieldSlicesOfBread:
		c.SetSlicesOfBread(value)
	default:
		return domainErrors.ErrValidation.WithContext("field", string(field))
	}
	return nil
}

func (c *Controller) Validate() ValidationErrors {
	return Validate(c.Draft())
}

// Reset restores every field to its default.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = models.NewDraft()
}

// Submit validates the draft, sends its payload and resets the draft on
// success. Validation failures return ValidationErrors without touching the
// network. A failed send keeps the draft for another attempt.
func (c *Controller) Submit(ctx context.Context) (*SubmitResult, error) {
	payload, err := BuildPayload(c.Draft())
	if err != nil {
		logger.Debug(ctx, "submission blocked by validation", "error", err)
		return nil, err
	}

	if err := c.machine.Begin(); err != nil {
		return nil, err
	}

	ctx = logger.With(ctx, "dish_type", string(payload.DishType()))
	logger.Info(ctx, "submitting recipe", "path", c.path)

	resp, err := c.submitter.PostJSON(ctx, c.path, payload)
	if err != nil {
		c.machine.Fail(err)
		appErr := domainErrors.ErrSubmissionFailed.WithError(err)
		if code, ok := httpclient.StatusCode(err); ok {
			appErr = appErr.WithContext("status", code)
		}
		logger.Error(ctx, "recipe submission failed", err)
		return nil, appErr
	}

	c.Reset()
	c.machine.Succeed(c.successMessage)
	logger.Info(ctx, "recipe saved", "status", resp.StatusCode)

	return &SubmitResult{
		Payload:    payload,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}, nil
}
