package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"jugadubazar/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type MaterialWriter interface {
	Upsert(ctx context.Context, m domain.Material, sku string) (*domain.Material, error)
}

// RequiredColumns must be present in the header row.
var RequiredColumns = []string{"sku", "name", "unit_price", "unit", "supplier_name", "category"}

// CSVImporter reads supplier catalog exports and upserts materials by sku.
type CSVImporter struct {
	reader   *csv.Reader
	repo     MaterialWriter
	validate *validator.Validate
	logger   zerolog.Logger
	dryRun   bool
}

func NewCSVImporter(r io.Reader, repo MaterialWriter, logger zerolog.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:   csvr,
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// DryRun validates every row without writing.
func (i *CSVImporter) DryRun(v bool) *CSVImporter {
	i.dryRun = v
	return i
}

type csvRow struct {
	Line        int
	SKU         string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Price       string `validate:"required,number"`
	Unit        string `validate:"required"`
	Supplier    string `validate:"required"`
	Category    string `validate:"required"`
	MOQ         int    `validate:"gte=1"`
	Stock       int    `validate:"gte=0"`
}

// Run parses all rows and returns how many materials were imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
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
		if blank(record) {
			continue
		}

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Info().Int("imported", imported).Bool("dry_run", i.dryRun).Msg("material import finished")
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if err := i.validate.Struct(row); err != nil {
		return fmt.Errorf("invalid row %d (sku %q): %w", row.Line, row.SKU, err)
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return fmt.Errorf("row %d: parse unit_price: %w", row.Line, err)
	}
	if price.IsNegative() {
		return fmt.Errorf("row %d: unit_price must not be negative", row.Line)
	}
	if i.dryRun {
		return nil
	}

	m := domain.Material{
		Name:             row.Name,
		Description:      row.Description,
		UnitPrice:        price,
		Unit:             row.Unit,
		SupplierName:     row.Supplier,
		Category:         strings.ToLower(row.Category),
		MinOrderQuantity: row.MOQ,
		StockQuantity:    row.Stock,
	}
	if _, err := i.repo.Upsert(ctx, m, row.SKU); err != nil {
		return fmt.Errorf("upsert material %q: %w", row.SKU, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	row := &csvRow{
		Line:        line,
		SKU:         pick(record, index, "sku"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Price:       pick(record, index, "unit_price"),
		Unit:        pick(record, index, "unit"),
		Supplier:    pick(record, index, "supplier_name"),
		Category:    pick(record, index, "category"),
		MOQ:         1,
	}
	var err error
	if v := pick(record, index, "min_order_quantity"); v != "" {
		if row.MOQ, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("row %d: parse min_order_quantity: %w", line, err)
		}
	}
	if v := pick(record, index, "stock_quantity"); v != "" {
		if row.Stock, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("row %d: parse stock_quantity: %w", line, err)
		}
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
