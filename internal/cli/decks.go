package cli

import (
	"context"
	"fmt"

	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/validation"
)

func (c *Cli) runDecks(ctx context.Context) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	state, err := s.State()
	if err != nil {
		return err
	}

	if len(state.Decks) == 0 {
		c.io.Println("No decks found.")
		c.io.Println()
		c.io.Println("Use 'omakase import FILE' to add cards.")
		return nil
	}

	for _, name := range state.Decks {
		mark := " "
		if name == state.Deck {
			mark = "*"
		}
		c.io.Printf("%s %s\n", mark, name)
	}
	return nil
}

func (c *Cli) runSelect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: omakase select DECK", ErrUsage)
	}
	if err := validation.ValidateDeckName(args[0]); err != nil {
		return err
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := s.SelectDeck(ctx, args[0]); err != nil {
		return err
	}

	state, err := s.State()
	if err != nil {
		return err
	}
	c.io.Printf("Selected %s (%s): %d card(s)\n", state.Deck, state.Filter, len(state.Cards))
	return nil
}

func (c *Cli) runFilter(ctx context.Context, args []string) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if err := s.SetFilter(ctx, args[0]); err != nil {
			return err
		}
	}

	state, err := s.State()
	if err != nil {
		return err
	}
	for _, f := range models.DeckFilters() {
		mark := " "
		if state.Deck != "" && f.Label == state.Filter {
			mark = "*"
		}
		c.io.Printf("%s %s\n", mark, f.Label)
	}
	return nil
}
