package deck

import (
	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/observable"
)

// Slots are the observable values derived by the mediator.
// Observers attached before the mediator is created run before it.
type Slots struct {
	DeckNames        *observable.List[string]
	CurrentCards     *observable.List[*models.Card]
	CurrentCardIndex *observable.Value[models.CardIndex]
}

// NewSlots creates empty slots with no card selected.
func NewSlots() *Slots {
	return &Slots{
		DeckNames:        observable.NewList[string](nil),
		CurrentCards:     observable.NewList[*models.Card](nil),
		CurrentCardIndex: observable.NewValue(models.NoCard),
	}
}
