package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"petchat/internal/model"
)

var requiredColumns = []string{"id", "name", "price"}

// ReadProductsCSV parses a products CSV export. The first row is a header;
// columns are matched by name so extra or reordered columns are fine.
func ReadProductsCSV(r io.Reader) ([]model.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("csv is missing required column %q", col)
		}
	}

	get := func(record []string, col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var products []model.Product
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		price, err := strconv.Atoi(get(record, "price"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q", line, get(record, "price"))
		}
		stock := 0
		if s := get(record, "stock"); s != "" {
			if stock, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("line %d: invalid stock %q", line, s)
			}
		}

		p := model.Product{
			ID:          get(record, "id"),
			Name:        get(record, "name"),
			Category:    get(record, "category"),
			Price:       price,
			Color:       get(record, "color"),
			PetType:     get(record, "pet_type"),
			Size:        model.Size(strings.ToUpper(get(record, "size"))),
			Material:    get(record, "material"),
			Stock:       stock,
			Description: get(record, "description"),
		}
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("line %d: id and name are required", line)
		}
		products = append(products, p)
	}

	return products, nil
}
