package mnemonic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/xavierfontaine/omakase/internal/debounce"
	"github.com/xavierfontaine/omakase/internal/storage"
)

// persistTimeout bounds a delayed write, which runs detached from any request.
const persistTimeout = 10 * time.Second

// RowType returns the storage key of the rows of a section.
func RowType(schema *Schema, section Section) string {
	return schema.Name + "/" + section.Name
}

// RowAssociations remembers complete rows of a section so that typing one
// field value again can fill in the rest of the row.
//
// Rows are indexed by field position then field value. Writes are persisted
// after a quiet period through a debouncer; the document written is the one
// captured at the last Store call.
type RowAssociations struct {
	user    string
	rowType string
	width   int

	backend   storage.RowAssociationStorage
	debouncer *debounce.Debouncer
	logger    *slog.Logger

	mu    sync.Mutex
	index map[string]map[string][]string
}

// NewRowAssociations creates the associations of one row type for user.
// backend may be nil for memory-only associations.
func NewRowAssociations(
	user, rowType string,
	width int,
	backend storage.RowAssociationStorage,
	debouncer *debounce.Debouncer,
	logger *slog.Logger,
) *RowAssociations {
	if logger == nil {
		logger = slog.Default()
	}
	return &RowAssociations{
		user:      user,
		rowType:   rowType,
		width:     width,
		backend:   backend,
		debouncer: debouncer,
		logger:    logger,
		index:     make(map[string]map[string][]string),
	}
}

// Load reads the persisted associations, replacing the in-memory ones.
func (a *RowAssociations) Load(ctx context.Context) error {
	if a.backend == nil {
		return nil
	}

	doc, err := a.backend.GetRowAssociations(ctx, a.user, a.rowType)
	if err != nil {
		if errors.Is(err, storage.ErrRowAssociationsNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load row associations: %w", err)
	}

	index := make(map[string]map[string][]string)
	if err := json.Unmarshal(doc, &index); err != nil {
		return fmt.Errorf("failed to decode row associations: %w", err)
	}

	a.mu.Lock()
	a.index = index
	a.mu.Unlock()
	return nil
}

// Retrieve returns the row last stored with value at position pos.
func (a *RowAssociations) Retrieve(pos int, value string) ([]string, bool) {
	if value == "" {
		return nil, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	row, ok := a.index[strconv.Itoa(pos)][value]
	if !ok {
		return nil, false
	}
	return slices.Clone(row), true
}

// Store remembers row under each of its non-empty values and schedules a
// delayed write.
func (a *RowAssociations) Store(row []string) error {
	if len(row) != a.width {
		return fmt.Errorf("%w: %d values for %s (width %d)",
			ErrRowWidth, len(row), a.rowType, a.width)
	}

	a.mu.Lock()
	for pos, value := range row {
		if value == "" {
			continue
		}
		key := strconv.Itoa(pos)
		if a.index[key] == nil {
			a.index[key] = make(map[string][]string)
		}
		a.index[key][value] = slices.Clone(row)
	}
	doc, err := json.Marshal(a.index)
	a.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to marshal row associations: %w", err)
	}

	if a.backend == nil || a.debouncer == nil {
		return nil
	}
	a.debouncer.Schedule(func() { a.persist(doc) })
	return nil
}

// Flush writes the pending associations now.
func (a *RowAssociations) Flush() {
	if a.debouncer != nil {
		a.debouncer.Flush()
	}
}

func (a *RowAssociations) persist(doc []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := a.backend.SaveRowAssociations(ctx, a.user, a.rowType, doc); err != nil {
		a.logger.Error("failed to persist row associations",
			"user", a.user, "row_type", a.rowType, "error", err)
		return
	}
	a.logger.Debug("row associations persisted", "user", a.user, "row_type", a.rowType)
}
