package models

// FieldName identifies a form field. Names match the payload JSON keys,
// except dish_type which is sent as "type".
type FieldName string

const (
	FieldDishName        FieldName = "name"
	FieldPreparationTime FieldName = "preparation_time"
	FieldDishType        FieldName = "dish_type"
	FieldNoOfSlices      FieldName = "no_of_slices"
	FieldDiameter        FieldName = "diameter"
	FieldSpicinessScale  FieldName = "spiciness_scale"
	FieldSlicesOfBread   FieldName = "slices_of_bread"
)

// Field describes how a form field is rendered. LabelID and PlaceholderID
// are message catalog ids; PlaceholderID may be empty. Owner is DishNone for
// the fields shared by every variant.
type Field struct {
	Name          FieldName
	LabelID       string
	PlaceholderID string
	Numeric       bool
	Owner         DishType
}

var (
	commonFields = []Field{
		{Name: FieldDishName, LabelID: "form.label.name"},
		{Name: FieldPreparationTime, LabelID: "form.label.preparation_time", PlaceholderID: "form.placeholder.preparation_time"},
		{Name: FieldDishType, LabelID: "form.label.dish_type"},
	}

	variantFields = map[DishType][]Field{
		DishPizza: {
			{Name: FieldNoOfSlices, LabelID: "form.label.no_of_slices", Numeric: true, Owner: DishPizza},
			{Name: FieldDiameter, LabelID: "form.label.diameter", PlaceholderID: "form.placeholder.diameter", Numeric: true, Owner: DishPizza},
		},
		DishSoup: {
			{Name: FieldSpicinessScale, LabelID: "form.label.spiciness_scale", Numeric: true, Owner: DishSoup},
		},
		DishSandwich: {
			{Name: FieldSlicesOfBread, LabelID: "form.label.slices_of_bread", Numeric: true, Owner: DishSandwich},
		},
	}
)

// VisibleTo reports whether the field is shown when dishType is selected.
func (f Field) VisibleTo(dishType DishType) bool {
	return f.Owner == DishNone || f.Owner == dishType
}

// VisibleFields returns the shared fields followed by the fields owned by
// dishType. Every returned field is required.
func VisibleFields(dishType DishType) []Field {
	fields := make([]Field, 0, len(commonFields)+2)
	fields = append(fields, commonFields...)
	fields = append(fields, variantFields[dishType]...)
	return fields
}

// LookupField finds a field descriptor by name across all variants.
func LookupField(name FieldName) (Field, bool) {
	for _, f := range commonFields {
		if f.Name == name {
			return f, true
		}
	}
	for _, fields := range variantFields {
		for _, f := range fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Field{}, false
}
