package validate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matthewlchambers/standardizedinventories/core/metadata"
)

// SourceRecord is one provenance entry of the validation sources ledger,
// describing the reference dataset an inventory was checked against.
type SourceRecord struct {
	Inventory    string
	Version      string
	Year         string
	Name         string
	URL          string
	Criteria     string
	DateAcquired string
}

var ledgerColumns = []string{"Inventory", "Version", "Year", "Name", "URL", "Criteria", "Date Acquired"}

// Ledger is the ordered table of validation source records. Records keep a
// stable row order: entries for one inventory stay together, and replacing an
// entry never moves it.
type Ledger struct {
	records []SourceRecord
}

// LoadLedger reads the ledger CSV at path. A missing file yields an empty
// ledger so a fresh installation can start recording sources.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening validation sources ledger: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading validation sources ledger: %w", err)
	}
	if len(rows) == 0 {
		return &Ledger{}, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[h] = i
	}
	for _, c := range ledgerColumns {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("validation sources ledger missing column %q", c)
		}
	}

	l := &Ledger{records: make([]SourceRecord, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		l.records = append(l.records, SourceRecord{
			Inventory:    row[col["Inventory"]],
			Version:      row[col["Version"]],
			Year:         row[col["Year"]],
			Name:         row[col["Name"]],
			URL:          row[col["URL"]],
			Criteria:     row[col["Criteria"]],
			DateAcquired: row[col["Date Acquired"]],
		})
	}
	return l, nil
}

// Records returns the ledger rows in order.
func (l *Ledger) Records() []SourceRecord {
	return l.records
}

// Find returns the record for the given inventory and year.
func (l *Ledger) Find(inventory, year string) (SourceRecord, bool) {
	for _, r := range l.records {
		if r.Inventory == inventory && r.Year == year {
			return r, true
		}
	}
	return SourceRecord{}, false
}

// Upsert adds or replaces the ledger entry keyed by (Inventory, Year). An
// existing entry is replaced in place, keeping its position. A new entry is
// inserted immediately after the last existing record with the same
// Inventory, or appended when the inventory has no records yet. The current
// acquisition date is stamped unless the record already carries one.
func (l *Ledger) Upsert(rec SourceRecord) {
	if rec.DateAcquired == "" {
		rec.DateAcquired = time.Now().Format(metadata.DateLayout)
	}

	for i, r := range l.records {
		if r.Inventory == rec.Inventory && r.Year == rec.Year {
			l.records[i] = rec
			return
		}
	}

	last := -1
	for i, r := range l.records {
		if r.Inventory == rec.Inventory {
			last = i
		}
	}
	if last == -1 {
		l.records = append(l.records, rec)
		return
	}

	l.records = append(l.records, SourceRecord{})
	copy(l.records[last+2:], l.records[last+1:])
	l.records[last+1] = rec
}

// Save writes the ledger as CSV at path, creating parent directories as
// needed.
func (l *Ledger) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing validation sources ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerColumns); err != nil {
		return err
	}
	for _, r := range l.records {
		row := []string{r.Inventory, r.Version, r.Year, r.Name, r.URL, r.Criteria, r.DateAcquired}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
