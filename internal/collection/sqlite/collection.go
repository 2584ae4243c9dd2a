package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xavierfontaine/omakase/internal/deck"
	"github.com/xavierfontaine/omakase/internal/models"
)

// Compile-time check that Storage implements deck.Repository
var _ deck.Repository = (*Storage)(nil)

// ListDecks returns the deck names of user, sorted by name
func (s *Storage) ListDecks(ctx context.Context, user string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM decks WHERE owner = ? ORDER BY name`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return names, nil
}

// GetCards returns the cards of a deck matching the filter code, by due value
func (s *Storage) GetCards(ctx context.Context, user, deckName string, filterCode int) ([]*models.Card, error) {
	if _, err := models.FilterByCode(filterCode); err != nil {
		return nil, err
	}

	query := `
		SELECT c.id, c.note_id, c.due, c.status, n.note_type, n.sort_field, n.fields
		FROM cards c
		JOIN notes n ON n.id = c.note_id
		JOIN decks d ON d.id = c.deck_id
		WHERE d.owner = ? AND d.name = ? AND (? = 0 OR c.status = ?)
		ORDER BY c.due, c.id
	`

	rows, err := s.db.QueryContext(ctx, query, user, deckName, filterCode, filterCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []*models.Card{}
	for rows.Next() {
		card := &models.Card{}
		var fields string

		if err := rows.Scan(
			&card.CardID,
			&card.NoteID,
			&card.DueValue,
			&card.StudyStatus,
			&card.NoteType,
			&card.SortFieldValue,
			&fields,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		if err := json.Unmarshal([]byte(fields), &card.NoteFields); err != nil {
			return nil, fmt.Errorf("failed to decode fields of note %d: %w", card.NoteID, err)
		}

		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return cards, nil
}

// SaveNote overwrites the fields of a note.
// The sort field follows the first field.
func (s *Storage) SaveNote(ctx context.Context, noteID int64, fields models.NoteFields) error {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE notes SET fields = ?, sort_field = ?, updated_at = ? WHERE id = ?`,
		string(fieldsJSON), sortField(fields), time.Now().Unix(), noteID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// ImportCards adds cards to a deck of user, creating the deck if needed.
// Notes and cards already present are overwritten.
func (s *Storage) ImportCards(ctx context.Context, user, deckName string, cards []*models.Card) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deckID, err := ensureDeck(ctx, tx, user, deckName)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	for _, card := range cards {
		if card.CardID == 0 || card.NoteID == 0 {
			return fmt.Errorf("%w: card %d of note %d", ErrInvalidCard, card.CardID, card.NoteID)
		}

		fieldsJSON, err := json.Marshal(card.NoteFields)
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}

		sort := card.SortFieldValue
		if sort == "" {
			sort = sortField(card.NoteFields)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO notes (id, note_type, sort_field, fields, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				note_type = excluded.note_type,
				sort_field = excluded.sort_field,
				fields = excluded.fields,
				updated_at = excluded.updated_at
		`, card.NoteID, card.NoteType, sort, string(fieldsJSON), now)
		if err != nil {
			return fmt.Errorf("failed to import note %d: %w", card.NoteID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cards (id, note_id, deck_id, due, status)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				note_id = excluded.note_id,
				deck_id = excluded.deck_id,
				due = excluded.due,
				status = excluded.status
		`, card.CardID, card.NoteID, deckID, card.DueValue, card.StudyStatus)
		if err != nil {
			return fmt.Errorf("failed to import card %d: %w", card.CardID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ensureDeck returns the id of the deck, inserting it if missing
func ensureDeck(ctx context.Context, tx *sql.Tx, user, deckName string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO decks (owner, name) VALUES (?, ?) ON CONFLICT (owner, name) DO NOTHING`,
		user, deckName)
	if err != nil {
		return 0, fmt.Errorf("failed to create deck: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM decks WHERE owner = ? AND name = ?`, user, deckName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get deck id: %w", err)
	}
	return id, nil
}

func sortField(fields models.NoteFields) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0].Value
}
