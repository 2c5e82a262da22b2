package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/models"
)

// PrintRecipeSummary lists what was sent for a saved recipe.
func PrintRecipeSummary(w io.Writer, payload models.Payload, status int, t *i18n.Translations) {
	if payload == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", DishEmoji, Accent.Sprint(t.GetMessage("summary.title", 0, nil)))

	switch p := payload.(type) {
	case models.PizzaPayload:
		printCommon(w, t, p.Name, p.PreparationTime, p.Type)
		PrintKeyValue(w, t.GetMessage("field.no_of_slices", 0, nil), strconv.Itoa(p.NoOfSlices))
		PrintKeyValue(w, t.GetMessage("field.diameter", 0, nil), strconv.FormatFloat(p.Diameter, 'f', 2, 64))
	case models.SoupPayload:
		printCommon(w, t, p.Name, p.PreparationTime, p.Type)
		PrintKeyValue(w, t.GetMessage("field.spiciness_scale", 0, nil), strconv.Itoa(p.SpicinessScale))
	case models.SandwichPayload:
		printCommon(w, t, p.Name, p.PreparationTime, p.Type)
		PrintKeyValue(w, t.GetMessage("field.slices_of_bread", 0, nil), strconv.Itoa(p.SlicesOfBread))
	}

	if status > 0 {
		_, _ = fmt.Fprintln(w, Dim.Sprintf("   HTTP %d", status))
	}
}

func printCommon(w io.Writer, t *i18n.Translations, name, prep string, dishType models.DishType) {
	PrintKeyValue(w, t.GetMessage("field.name", 0, nil), name)
	PrintKeyValue(w, t.GetMessage("field.preparation_time", 0, nil), prep)
	PrintKeyValue(w, t.GetMessage("field.dish_type", 0, nil), t.GetMessage(dishType.MessageID(), 0, nil))
}
