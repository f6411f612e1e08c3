package locale

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"techtree/core/blk"
)

// Names holds the localized display strings for one unit id. An empty
// string means the translation is missing in the source.
type Names struct {
	En string
	Ru string
}

// Table is the parsed localization source, keyed by normalized unit id.
type Table struct {
	entries map[string]Names
}

// shopSuffix and groupPrefix are the key decorations the localization file
// uses for tech tree entries.
const (
	shopSuffix  = "_shop"
	groupPrefix = "shop/group/"
)

// Parse reads the semicolon separated localization sheet. The header row
// must name the language columns; rows keyed with the _shop suffix or the
// shop/group/ prefix are normalized to the bare unit id.
func Parse(file string, raw []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(stripBOM(raw)))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, blk.ShapeErr(file, "header", "a header row", "empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", file, err)
	}

	enCol, ruCol := -1, -1
	for i, name := range header {
		// header cells may be decorated like <English>
		switch strings.ToLower(strings.Trim(strings.TrimSpace(name), "<>")) {
		case "english":
			enCol = i
		case "russian":
			ruCol = i
		}
	}
	if enCol < 0 || ruCol < 0 {
		return nil, blk.ShapeErr(file, "header", "English and Russian columns", strings.Join(header, ";"))
	}

	table := &Table{entries: make(map[string]Names)}
	line := 1
	for {
		line++
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", file, line, err)
		}
		if len(row) <= enCol || len(row) <= ruCol {
			continue
		}
		key := normalizeKey(strings.TrimSpace(row[0]))
		if key == "" {
			continue
		}
		names := Names{
			En: strings.TrimSpace(row[enCol]),
			Ru: strings.TrimSpace(row[ruCol]),
		}
		// first occurrence wins; later duplicates are usually UI variants
		if _, seen := table.entries[key]; !seen {
			table.entries[key] = names
		}
	}
	return table, nil
}

// Lookup finds names for a unit id, trying the id itself and then the
// numeric suffix variants the source uses for duplicated entries.
func (t *Table) Lookup(id string) (Names, bool) {
	if n, ok := t.entries[id]; ok {
		return n, true
	}
	for d := 0; d <= 9; d++ {
		if n, ok := t.entries[fmt.Sprintf("%s_%d", id, d)]; ok {
			return n, true
		}
	}
	return Names{}, false
}

// Len reports how many distinct keys were parsed.
func (t *Table) Len() int { return len(t.entries) }

func normalizeKey(key string) string {
	if strings.HasPrefix(key, groupPrefix) {
		return strings.TrimPrefix(key, groupPrefix)
	}
	if strings.HasSuffix(key, shopSuffix) {
		return strings.TrimSuffix(key, shopSuffix)
	}
	return key
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if bytes.HasPrefix(b, bom) {
		return b[len(bom):]
	}
	return b
}
