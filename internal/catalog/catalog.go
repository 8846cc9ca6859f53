package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
)

// ErrLoad is returned when the recipe dataset cannot be read or is
// structurally invalid. Fatal at startup.
var ErrLoad = errors.New("catalog load failed")

// RecipeRecord is a single normalized row of the recipe dataset.
// Records are immutable once loaded; ingredients and directions stay as
// raw text blobs and are parsed downstream by the model.
type RecipeRecord struct {
	ID              string
	Title           string
	Category        string
	Subcategory     string
	Description     string
	IngredientsText string
	DirectionsText  string
	NumIngredients  int
	NumSteps        int
}

// Catalog is the in-memory recipe dataset, loaded once per process and
// read-only afterwards. Concurrent readers need no locking.
type Catalog struct {
	records []RecipeRecord
}

// Load reads the CSV dataset at path. Expected columns:
// recipe_title,category,subcategory,description,ingredients,directions,num_ingredients,num_steps
// with a header row. Record IDs are the zero-based row ordinal.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrLoad, path, err)
	}
	defer f.Close()

	c, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
	}

	logger.Info("recipe catalog loaded",
		zap.String("path", path),
		zap.Int("records", c.Len()),
	)
	return c, nil
}

func read(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are normalized per field

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %v", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["recipe_title"]; !ok {
		return nil, fmt.Errorf("header has no recipe_title column")
	}

	var records []RecipeRecord
	for i := 0; ; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", i, err)
		}
		records = append(records, normalizeRow(row, col, i))
	}

	return &Catalog{records: records}, nil
}

// normalizeRow applies the defaulting rules: free-text fields fall back to
// fixed placeholders, numeric fields fall back to 0 and never error.
func normalizeRow(row []string, col map[string]int, idx int) RecipeRecord {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	title := field("recipe_title")
	if title == "" {
		title = "Untitled recipe"
	}

	return RecipeRecord{
		ID:              strconv.Itoa(idx),
		Title:           title,
		Category:        field("category"),
		Subcategory:     field("subcategory"),
		Description:     field("description"),
		IngredientsText: field("ingredients"),
		DirectionsText:  field("directions"),
		NumIngredients:  toInt(field("num_ingredients")),
		NumSteps:        toInt(field("num_steps")),
	}
}

func toInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// New builds a catalog directly from records, bypassing the CSV loader.
func New(records []RecipeRecord) *Catalog {
	return &Catalog{records: records}
}

// Records returns all records in catalog order.
func (c *Catalog) Records() []RecipeRecord {
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Get returns the record with the given ID.
func (c *Catalog) Get(id string) (RecipeRecord, bool) {
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return RecipeRecord{}, false
}
