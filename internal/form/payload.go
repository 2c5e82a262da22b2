package form

import (
	"strconv"
	"strings"

	"github.com/thomas-vilte/dishform/internal/models"
)

// BuildPayload validates d and converts it into the payload shape of its
// dish type. Numeric text is coerced here and nowhere earlier. It has no
// side effects: equal drafts give equal payloads.
func BuildPayload(d models.Draft) (models.Payload, error) {
	if errs := Validate(d); len(errs) > 0 {
		return nil, errs
	}

	name := strings.TrimSpace(d.Name)

	switch v := d.Variant().(type) {
	case models.PizzaAttributes:
		slices, _ := parseInt(v.NoOfSlices)
		diameter, _ := strconv.ParseFloat(strings.TrimSpace(v.Diameter), 64)
		return models.PizzaPayload{
			Name:            name,
			PreparationTime: d.PreparationTime,
			Type:            models.DishPizza,
			NoOfSlices:      slices,
			Diameter:        diameter,
		}, nil
	case models.SoupAttributes:
		scale, _ := parseInt(v.SpicinessScale)
		return models.SoupPayload{
			Name:            name,
			PreparationTime: d.PreparationTime,
			Type:            models.DishSoup,
			SpicinessScale:  scale,
		}, nil
	case models.SandwichAttributes:
		slices, _ := parseInt(v.SlicesOfBread)
		return models.SandwichPayload{
			Name:            name,
			PreparationTime: d.PreparationTime,
			Type:            models.DishSandwich,
			SlicesOfBread:   slices,
		}, nil
	}

	// Validate reports a missing dish type, so this is unreachable.
	return nil, ValidationErrors{{Field: models.FieldDishType, MessageID: "validation.dish_type_required"}}
}
