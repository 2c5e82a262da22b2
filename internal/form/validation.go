package form

import (
	"strings"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/models"
)

const (
	minDiameter  = 15
	minSpiciness = 1
	maxSpiciness = 10
)

// FieldError points a catalog message at a field. Data fills the message
// template.
type FieldError struct {
	Field     models.FieldName
	MessageID string
	Data      map[string]interface{}
}

// Message renders the error with t.
func (fe FieldError) Message(t *i18n.Translations) string {
	return t.GetMessage(fe.MessageID, 0, fe.Data)
}

// ValidationErrors lists every failing field of a draft, in display order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, string(fe.Field))
	}
	return "invalid recipe fields: " + strings.Join(parts, ", ")
}

func (v ValidationErrors) Unwrap() error {
	return domainErrors.ErrValidation
}

// For returns the error reported for field, or the zero FieldError.
func (v ValidationErrors) For(field models.FieldName) FieldError {
	for _, fe := range v {
		if fe.Field == field {
			return fe
		}
	}
	return FieldError{}
}

// Validate checks the shared fields and the fields of the selected variant
// only. Fields of the other variants are never looked at.
func Validate(d models.Draft) ValidationErrors {
	var errs ValidationErrors
	add := func(field models.FieldName, id string, data map[string]interface{}) {
		errs = append(errs, FieldError{Field: field, MessageID: id, Data: data})
	}

	if strings.TrimSpace(d.Name) == "" {
		add(models.FieldDishName, "validation.name_required", nil)
	}

	if d.PreparationTime == "" {
		add(models.FieldPreparationTime, "validation.preparation_required", nil)
	} else if !preparationPattern.MatchString(d.PreparationTime) {
		add(models.FieldPreparationTime, "validation.preparation_format", nil)
	}

	switch v := d.Variant().(type) {
	case models.PizzaAttributes:
		if n, err := parseInt(v.NoOfSlices); err != nil || n < 1 {
			add(models.FieldNoOfSlices, "validation.slices_min", nil)
		}
		if dia, err := parseDecimal(v.Diameter); err != nil || dia == nil {
			add(models.FieldDiameter, "validation.diameter_required", nil)
		} else if *dia < minDiameter {
			add(models.FieldDiameter, "validation.diameter_min", map[string]interface{}{"Min": minDiameter})
		}
	case models.SoupAttributes:
		if n, err := parseInt(v.SpicinessScale); err != nil || n < minSpiciness || n > maxSpiciness {
			add(models.FieldSpicinessScale, "validation.spiciness_range", map[string]interface{}{
				"Min": minSpiciness,
				"Max": maxSpiciness,
			})
		}
	case models.SandwichAttributes:
		if n, err := parseInt(v.SlicesOfBread); err != nil || n < 1 {
			add(models.FieldSlicesOfBread, "validation.bread_min", nil)
		}
	default:
		add(models.FieldDishType, "validation.dish_type_required", nil)
	}

	return errs
}
