package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"teapos/internal/domain"
	"teapos/internal/pricing"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, name string) (*domain.Category, error)
}

type MenuItemWriter interface {
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

// CSVImporter reads menu exports with the columns category,name,price and an
// optional image_url, creating categories on demand.
type CSVImporter struct {
	reader     *csv.Reader
	categories CategoryWriter
	items      MenuItemWriter
	known      map[string]string
}

func NewCSVImporter(r io.Reader, categories CategoryWriter, items MenuItemWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // image_url may be left off
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:     csvr,
		categories: categories,
		items:      items,
		known:      make(map[string]string),
	}
}

type csvRow struct {
	Line     int
	Category string
	Name     string
	Price    string
	ImageURL string
}

// Run parses every row and upserts its category and menu item. It stops at the
// first invalid row and reports how many items were written before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range []string{"category", "name", "price"} {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("%w: missing column %q", domain.ErrValidation, col)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}

		row := parseRow(record, index, line)
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Category == "" || row.Name == "" {
		return fmt.Errorf("%w: row %d needs category and name", domain.ErrValidation, row.Line)
	}
	cents, err := pricing.ParsePrice(row.Price)
	if err != nil {
		return fmt.Errorf("row %d: %w", row.Line, err)
	}

	categoryID, err := i.categoryID(ctx, row.Category)
	if err != nil {
		return fmt.Errorf("upsert category %q: %w", row.Category, err)
	}

	item := domain.MenuItem{
		Name:       row.Name,
		PriceCents: cents,
		CategoryID: categoryID,
		ImageURL:   row.ImageURL,
	}
	if _, err := i.items.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert menu item %q: %w", row.Name, err)
	}
	return nil
}

func (i *CSVImporter) categoryID(ctx context.Context, name string) (string, error) {
	key := strings.ToLower(name)
	if id, ok := i.known[key]; ok {
		return id, nil
	}
	c, err := i.categories.Upsert(ctx, name)
	if err != nil {
		return "", err
	}
	i.known[key] = c.ID
	return c.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) *csvRow {
	row := &csvRow{
		Line:     line,
		Category: pick(record, index, "category"),
		Name:     pick(record, index, "name"),
		Price:    pick(record, index, "price"),
		ImageURL: pick(record, index, "image_url"),
	}
	if row.Category == "" && row.Name == "" && row.Price == "" {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
