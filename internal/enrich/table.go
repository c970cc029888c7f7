// Package enrich turns a raw campaign record into the human-readable context
// string that prompts are built from. Enrichment is a pure function of
// (record, mapping table). It never mutates the record and never caches.
package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// journeyIndicatorsKey is the one mapping-table entry that is keyword lists
// rather than value→description pairs.
const journeyIndicatorsKey = "Buyer_Journey_Indicators"

// Table is the loaded field-enrichment mapping: Salesforce field name →
// raw value → human-readable description, plus the buyer-journey keyword
// lists used for derived insight lines.
type Table struct {
	fields  map[string]map[string]string
	journey journeyKeywords
}

type journeyKeywords struct {
	HighIntent []string `json:"High_Intent_Keywords"`
	Research   []string `json:"Research_Keywords"`
	Awareness  []string `json:"Awareness_Keywords"`
}

// LoadTable reads and validates the mapping-table JSON. The table is checked
// once here so malformed entries fail loudly at startup instead of surfacing
// per-record during processing.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable builds a Table from raw JSON.
func ParseTable(data []byte) (*Table, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mapping table: %w", err)
	}

	t := &Table{fields: make(map[string]map[string]string, len(raw))}
	for field, msg := range raw {
		if field == journeyIndicatorsKey {
			if err := json.Unmarshal(msg, &t.journey); err != nil {
				return nil, fmt.Errorf("mapping table: malformed %s: %w", journeyIndicatorsKey, err)
			}
			continue
		}
		var values map[string]string
		if err := json.Unmarshal(msg, &values); err != nil {
			return nil, fmt.Errorf("mapping table: field %q is not a value→description map: %w", field, err)
		}
		t.fields[field] = values
	}
	return t, nil
}

// lookup resolves a raw field value against the table. A mapped value is
// rendered as "value: description" so the raw token is never lost; an
// unmapped value passes through verbatim. Matching is exact first, then
// case-insensitive.
func (t *Table) lookup(field, value string) string {
	if value == "" {
		return value
	}
	values, ok := t.fields[field]
	if !ok {
		return value
	}

	desc, ok := values[value]
	if !ok {
		lower := strings.ToLower(value)
		for k, v := range values {
			if strings.ToLower(k) == lower {
				desc = v
				ok = true
				break
			}
		}
	}

	if ok && strings.TrimSpace(desc) != "" {
		return value + ": " + desc
	}
	return value
}
