package dungeon

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned for a persisted or imported document that is
// not a valid state.
var ErrInvalidDocument = errors.New("invalid document")

// IsValidSchema reports whether v, a decoded JSON value, has the shape of a
// state document: an object with a numeric targetRuns of at least 1, and
// whose runRecords and history, if set, are arrays.
func IsValidSchema(v any) bool {
	doc, ok := v.(map[string]any)
	if !ok || doc == nil {
		return false
	}
	target, ok := doc["targetRuns"].(float64)
	if !ok || target < 1 {
		return false
	}
	for _, key := range []string{"runRecords", "history"} {
		if doc[key] == nil {
			continue
		}
		if _, ok := doc[key].([]any); !ok {
			return false
		}
	}
	return true
}

// ParseDocument decodes a persisted or exported document.
//
// Fields missing from the document keep their default value, so that
// documents written by earlier versions are upgraded. Errors wrap
// [ErrInvalidDocument].
func ParseDocument(data []byte) (*AppState, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if !IsValidSchema(raw) {
		return nil, fmt.Errorf("%w: targetRuns must be a number >= 1, runRecords and history arrays", ErrInvalidDocument)
	}
	st := DefaultState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	backfill(st)
	return st, nil
}

// backfill replaces the containers a document may leave null.
func backfill(st *AppState) {
	if st.RunRecords == nil {
		st.RunRecords = []RunRecord{}
	}
	if st.History == nil {
		st.History = []Session{}
	}
	if st.MarketItems == nil {
		st.MarketItems = []MarketItem{}
	}
	if st.Inventory == nil {
		st.Inventory = map[ID]InventoryEntry{}
	}
	if st.TradeHistory == nil {
		st.TradeHistory = []Trade{}
	}
	for i := range st.History {
		if st.History[i].Records == nil {
			st.History[i].Records = []RunRecord{}
		}
	}
}

// EncodeDocument encodes the persisted part of the state, indented by two
// spaces if indent is true.
func EncodeDocument(st *AppState, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(st, "", "  ")
	} else {
		data, err = json.Marshal(st)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}
