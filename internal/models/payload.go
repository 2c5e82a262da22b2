package models

// Payload is the JSON body posted to the dishes endpoint. Exactly one of
// the three concrete shapes exists per submission.
type Payload interface {
	DishType() DishType
	isPayload()
}

type PizzaPayload struct {
	Name            string   `json:"name"`
	PreparationTime string   `json:"preparation_time"`
	Type            DishType `json:"type"`
	NoOfSlices      int      `json:"no_of_slices"`
	Diameter        float64  `json:"diameter"`
}

type SoupPayload struct {
	Name            string   `json:"name"`
	PreparationTime string   `json:"preparation_time"`
	Type            DishType `json:"type"`
	SpicinessScale  int      `json:"spiciness_scale"`
}

type SandwichPayload struct {
	Name            string   `json:"name"`
	PreparationTime string   `json:"preparation_time"`
	Type            DishType `json:"type"`
	SlicesOfBread   int      `json:"slices_of_bread"`
}

func (PizzaPayload) DishType() DishType    { return DishPizza }
func (SoupPayload) DishType() DishType     { return DishSoup }
func (SandwichPayload) DishType() DishType { return DishSandwich }

func (PizzaPayload) isPayload()    {}
func (SoupPayload) isPayload()     {}
func (SandwichPayload) isPayload() {}
