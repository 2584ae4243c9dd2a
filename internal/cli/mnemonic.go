package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/session"
)

func (c *Cli) runSchemas() error {
	for _, schema := range c.sessions.Catalog().Schemas() {
		c.io.Printf("%-28s %s\n", schema.Name, schema.UIName)
		if schema.Description != "" {
			c.io.Printf("%-28s %s\n", "", schema.Description)
		}
	}
	return nil
}

func (c *Cli) runAssoc(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assoc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	output := fs.String("output", "", "Note field receiving the generated text")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: omakase assoc [-output FIELD] INDEX SCHEMA [PARAM=FIELD...]", ErrUsage)
	}

	params, err := parsePairs(fs.Args()[2:])
	if err != nil {
		return err
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := selectCard(s, fs.Arg(0)); err != nil {
		return err
	}

	// Без изменений просто показываем текущие связи
	var outputField *string
	if *output != "" {
		outputField = output
	}
	var assoc *session.Associations
	if len(params) > 0 || outputField != nil {
		assoc, err = s.SetAssociations(ctx, fs.Arg(1), params, outputField)
	} else {
		assoc, err = s.Associations(ctx, fs.Arg(1))
	}
	if err != nil {
		return err
	}

	c.io.Printf("=== %s (%s) ===\n\n", assoc.Schema, assoc.NoteType)
	names := make([]string, 0, len(assoc.Parameters))
	for name := range assoc.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.io.Printf("%-24s -> %s\n", name, valueOrNone(assoc.Parameters[name]))
	}
	if assoc.OutputBound {
		c.io.Printf("%-24s -> %s\n", "(output)", assoc.GenerationOutput)
	} else {
		c.io.Printf("%-24s -> %s\n", "(output)", valueOrNone(""))
	}
	return nil
}

func (c *Cli) runPrompt(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: omakase prompt INDEX SCHEMA [PARAM=VALUE...]", ErrUsage)
	}

	pairs, err := parsePairs(args[2:])
	if err != nil {
		return err
	}
	params := make(mnemonic.Params, len(pairs))
	for name, value := range pairs {
		params[name] = value
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := selectCard(s, args[0]); err != nil {
		return err
	}

	prompt, err := s.Prompt(args[1], params)
	if err != nil {
		return err
	}
	c.io.Println(prompt)
	return nil
}

// parsePairs разбирает аргументы вида key=value
func parsePairs(args []string) (map[string]string, error) {
	pairs := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected KEY=VALUE, got %q", ErrUsage, arg)
		}
		pairs[key] = value
	}
	return pairs, nil
}

func valueOrNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
