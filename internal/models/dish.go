package models

import (
	"fmt"
	"strings"
	"time"
)

// DishType selects which attribute group of a draft is active.
type DishType string

const (
	DishNone     DishType = ""
	DishPizza    DishType = "pizza"
	DishSoup     DishType = "soup"
	DishSandwich DishType = "sandwich"
)

// DishTypes returns the selectable dish types in menu order.
func DishTypes() []DishType {
	return []DishType{DishPizza, DishSoup, DishSandwich}
}

// ParseDishType accepts the three tags case-insensitively. The empty string
// parses to DishNone.
func ParseDishType(s string) (DishType, error) {
	switch DishType(strings.ToLower(strings.TrimSpace(s))) {
	case DishNone:
		return DishNone, nil
	case DishPizza:
		return DishPizza, nil
	case DishSoup:
		return DishSoup, nil
	case DishSandwich:
		return DishSandwich, nil
	}
	return DishNone, fmt.Errorf("unknown dish type %q", s)
}

func (d DishType) Valid() bool {
	return d == DishPizza || d == DishSoup || d == DishSandwich
}

// MessageID is the catalog id of the menu caption for the type, or "" for
// DishNone.
func (d DishType) MessageID() string {
	if !d.Valid() {
		return ""
	}
	return "dish_type." + string(d)
}

// Variant is one of the mutually exclusive attribute records of a draft.
type Variant interface {
	DishType() DishType
	isVariant()
}

// PizzaAttributes keeps pizza fields as typed text. Diameter is stored
// already formatted with two decimals.
type PizzaAttributes struct {
	NoOfSlices string
	Diameter   string
}

type SoupAttributes struct {
	SpicinessScale string
}

type SandwichAttributes struct {
	SlicesOfBread string
}

func (PizzaAttributes) DishType() DishType    { return DishPizza }
func (SoupAttributes) DishType() DishType     { return DishSoup }
func (SandwichAttributes) DishType() DishType { return DishSandwich }

func (PizzaAttributes) isVariant()    {}
func (SoupAttributes) isVariant()     {}
func (SandwichAttributes) isVariant() {}

// Draft is the in-progress recipe. All three attribute groups are kept so
// switching back and forth between types does not lose typed values; only
// the group selected by DishType is ever validated or submitted.
type Draft struct {
	Name              string
	PreparationPicker *time.Time
	PreparationTime   string
	DishType          DishType

	Pizza    PizzaAttributes
	Soup     SoupAttributes
	Sandwich SandwichAttributes
}

// NewDraft returns a draft holding the form defaults.
func NewDraft() Draft {
	return Draft{
		Pizza:    PizzaAttributes{NoOfSlices: "1"},
		Soup:     SoupAttributes{SpicinessScale: "1"},
		Sandwich: SandwichAttributes{SlicesOfBread: "1"},
	}
}

// Variant returns the attribute record selected by DishType, or nil when no
// type is selected.
func (d Draft) Variant() Variant {
	switch d.DishType {
	case DishPizza:
		return d.Pizza
	case DishSoup:
		return d.Soup
	case DishSandwich:
		return d.Sandwich
	}
	return nil
}

// Clone copies the draft, including the picker value.
func (d Draft) Clone() Draft {
	if d.PreparationPicker != nil {
		p := *d.PreparationPicker
		d.PreparationPicker = &p
	}
	return d
}
