// Package cli is the command line front end: each command opens the
// session of the configured user and works through it.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xavierfontaine/omakase/internal/cli/iocli"
	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/session"
	"github.com/xavierfontaine/omakase/internal/validation"
)

// ErrUsage is returned for missing or malformed command arguments
var ErrUsage = errors.New("usage")

// Sessions opens editing sessions.
type Sessions interface {
	Open(ctx context.Context, user string) (*session.Session, error)
	Catalog() *mnemonic.Catalog
}

// CardImporter seeds the collection.
type CardImporter interface {
	ImportCards(ctx context.Context, user, deckName string, cards []*models.Card) error
}

type Cli struct {
	io       iocli.IO
	sessions Sessions
	importer CardImporter
	user     string
	version  string
}

func New(io iocli.IO, sessions Sessions, importer CardImporter, user, version string) *Cli {
	return &Cli{
		io:       io,
		sessions: sessions,
		importer: importer,
		user:     user,
		version:  version,
	}
}

// Run executes one command.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "version":
		c.io.Printf("omakase %s\n", c.version)
		return nil
	case "help":
		c.PrintUsage()
		return nil
	case "schemas":
		return c.runSchemas()
	}

	if err := validation.ValidateUsername(c.user); err != nil {
		return err
	}

	switch command {
	case "decks":
		return c.runDecks(ctx)
	case "select":
		return c.runSelect(ctx, args)
	case "filter":
		return c.runFilter(ctx, args)
	case "cards":
		return c.runCards(ctx)
	case "show":
		return c.runShow(ctx, args)
	case "set-field":
		return c.runSetField(ctx, args)
	case "assoc":
		return c.runAssoc(ctx, args)
	case "prompt":
		return c.runPrompt(ctx, args)
	case "import":
		return c.runImport(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

// PrintUsage выводит справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("omakase - flashcard note editor with mnemonic prompts")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  omakase [OPTIONS] COMMAND [ARGS]")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  -config PATH                 Configuration file (default: $OMAKASE_CONFIG)")
	c.io.Println("  -user NAME                   User whose collection is edited (default: $OMAKASE_USER)")
	c.io.Println("  -version                     Show version information")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  serve                        Start the HTTP API")
	c.io.Println("  decks                        List decks, * marks the selected one")
	c.io.Println("  select DECK                  Select a deck")
	c.io.Println("  filter [LABEL]               List filters or set the filter of the selected deck")
	c.io.Println("  cards                        List the cards of the selected deck")
	c.io.Println("  show INDEX                   Show the note of a card")
	c.io.Println("  set-field INDEX FIELD [VALUE]")
	c.io.Println("                               Set a note field and save (VALUE is read from stdin if omitted)")
	c.io.Println("  schemas                      List mnemonic schemas")
	c.io.Println("  assoc [-output FIELD] INDEX SCHEMA [PARAM=FIELD...]")
	c.io.Println("                               Show or bind schema parameters to note fields")
	c.io.Println("  prompt INDEX SCHEMA [PARAM=VALUE...]")
	c.io.Println("                               Render the prompt for a card")
	c.io.Println("  import FILE                  Import decks and cards from a JSON file")
	c.io.Println("  version                      Show version information")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  omakase -user alice select Japanese")
	c.io.Println("  omakase -user alice assoc -output Mnemonic 0 target_components target_concept=Meaning")
	c.io.Println("  omakase -user alice prompt 0 target_components")
}

func (c *Cli) session(ctx context.Context) (*session.Session, error) {
	return c.sessions.Open(ctx, c.user)
}

// selectCard выбирает карточку по индексу из аргумента
func selectCard(s *session.Session, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%w: card index must be a number, got %q", ErrUsage, arg)
	}
	return s.SelectCard(models.CardIndex(index))
}
