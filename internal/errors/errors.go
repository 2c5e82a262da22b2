package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeValidation         ErrorType = "VALIDATION"
	TypeServiceUnavailable ErrorType = "SERVICE_UNAVAILABLE"
	TypeSubmission         ErrorType = "SUBMISSION"
	TypeConfiguration      ErrorType = "CONFIGURATION"
	TypeInternal           ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - HTTP %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors of the same type and message, so wrapped copies
// produced by WithError/WithContext still satisfy errors.Is against the
// predefined values below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Form errors
var (
	ErrValidation = NewAppError(TypeValidation, "The recipe has invalid or missing fields", nil).
			WithSuggestion("Fix the highlighted fields and submit again")

	ErrUnknownDishType = NewAppError(TypeValidation, "Unknown dish type", nil).
				WithSuggestion("Choose one of: pizza, soup, sandwich")

	ErrInvalidPreparationTime = NewAppError(TypeValidation, "Preparation time must be HH:MM:SS", nil).
					WithSuggestion("Example: 01:30:00")

	ErrInvalidDiameter = NewAppError(TypeValidation, "Pizza size must be a number", nil).
				WithSuggestion("Example: 32 or 32.5")
)

// Submission errors
var (
	ErrSubmissionFailed = NewAppError(TypeSubmission, "The recipe could not be saved", nil).
				WithSuggestion("Your draft was kept. Check your connection and submit again")

	ErrSubmissionInFlight = NewAppError(TypeSubmission, "A submission is already in progress", nil).
				WithSuggestion("Wait for the current submission to finish")
)

// Service errors
var (
	ErrServiceUnavailable = NewAppError(TypeServiceUnavailable, "Our services are not available at the moment, please try again later", nil).
				WithSuggestion("Check the configured base URL: dishform config show")
)

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is not valid", nil).
				WithSuggestion("Review your settings: dishform config show")

	ErrConfigUnknownKey = NewAppError(TypeConfiguration, "Unknown configuration key", nil).
				WithSuggestion("Valid keys: base_url, dishes_path, probe_mode, notification_seconds, language")

	ErrDraftFile = NewAppError(TypeConfiguration, "Draft file could not be read", nil).
			WithSuggestion("Use a .yaml, .yml or .toml file with the payload keys")
)

var (
	ErrMockServer = NewAppError(TypeInternal, "Mock server stopped unexpectedly", nil).
		WithSuggestion("Check that the address is free: lsof -i :<port>")
)
