package cli

import (
	"context"
	"fmt"
	"text/template"

	"github.com/xavierfontaine/omakase/internal/models"
)

var cardTmpl = template.Must(template.New("card").Funcs(template.FuncMap{
	"status": statusLabel,
}).Parse(cardTemplate))

func statusLabel(status models.StudyStatus) string {
	switch status {
	case models.StudyStatusNew:
		return "new"
	case models.StudyStatusInStudy:
		return "in study"
	default:
		return fmt.Sprintf("unknown (%d)", status)
	}
}

func (c *Cli) runCards(ctx context.Context) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	state, err := s.State()
	if err != nil {
		return err
	}

	if state.Deck == "" {
		return fmt.Errorf("no deck selected. Use 'omakase select DECK' first")
	}
	if len(state.Cards) == 0 {
		c.io.Printf("No cards in %s (%s).\n", state.Deck, state.Filter)
		return nil
	}

	c.io.Printf("%s (%s): %d card(s)\n\n", state.Deck, state.Filter, len(state.Cards))
	for i, card := range state.Cards {
		c.io.Printf("%4d  %-10s %s\n", i, statusLabel(card.StudyStatus), card.SortFieldValue)
	}
	return nil
}

func (c *Cli) runShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: omakase show INDEX", ErrUsage)
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := selectCard(s, args[0]); err != nil {
		return err
	}

	card, err := s.CurrentCard()
	if err != nil {
		return err
	}
	return cardTmpl.Execute(c.io, card)
}

func (c *Cli) runSetField(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: omakase set-field INDEX FIELD [VALUE]", ErrUsage)
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := selectCard(s, args[0]); err != nil {
		return err
	}

	var value string
	if len(args) == 3 {
		value = args[2]
	} else {
		value, err = c.io.ReadInput(args[1] + ": ")
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
	}

	if err := s.SetField(args[1], value); err != nil {
		return err
	}
	if err := s.SaveNote(ctx); err != nil {
		return err
	}
	c.io.Printf("Saved %s.\n", args[1])
	return nil
}
