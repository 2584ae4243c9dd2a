package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/validation"
)

// ImportFile is the JSON layout read by the import command.
type ImportFile struct {
	Decks []ImportDeck `json:"decks"`
}

// ImportDeck is one deck of an import file.
type ImportDeck struct {
	Name  string         `json:"name"`
	Cards []*models.Card `json:"cards"`
}

func (c *Cli) runImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: omakase import FILE", ErrUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var file ImportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	// Проверяем всё до записи, чтобы не импортировать файл частично
	for _, d := range file.Decks {
		if err := validation.ValidateDeckName(d.Name); err != nil {
			return fmt.Errorf("deck %q: %w", d.Name, err)
		}
	}

	total := 0
	for _, d := range file.Decks {
		if err := c.importer.ImportCards(ctx, c.user, d.Name, d.Cards); err != nil {
			return fmt.Errorf("failed to import deck %q: %w", d.Name, err)
		}
		c.io.Printf("Imported %d card(s) into %s\n", len(d.Cards), d.Name)
		total += len(d.Cards)
	}

	// Открытая сессия должна увидеть новые колоды
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := s.Resync(ctx); err != nil {
		return err
	}

	c.io.Printf("Done: %d deck(s), %d card(s).\n", len(file.Decks), total)
	return nil
}
