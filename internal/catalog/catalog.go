// Package catalog provides read-only access to the vehicle dataset and the
// structured filter engine that narrows it.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dreamgarage/dreamcar/models"
)

// Store reads the vehicle CSV. The file is re-read on every Load call so the
// process never holds a stale snapshot; the dataset is small and read-only.
type Store struct {
	path string
}

// New creates a Store backed by the CSV at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load parses the backing file into vehicle records. A missing or unreadable
// file is a hard error; it is the one failure this system does not absorb.
func (s *Store) Load() ([]models.Vehicle, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return parse(f)
}

// Lookup finds a vehicle by full model name, case-insensitively.
func Lookup(vehicles []models.Vehicle, fullModel string) (models.Vehicle, error) {
	for _, v := range vehicles {
		if strings.EqualFold(v.FullModel, fullModel) {
			return v, nil
		}
	}
	return models.Vehicle{}, models.ErrVehicleNotFound
}

func parse(r io.Reader) ([]models.Vehicle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"full_model", "base_model", "category", "mpg_combined", "seating", "msrp", "description"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", required)
		}
	}

	var vehicles []models.Vehicle
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		field := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		vehicles = append(vehicles, models.Vehicle{
			FullModel:   field("full_model"),
			BaseModel:   field("base_model"),
			Category:    field("category"),
			MPGCombined: parseFloat(field("mpg_combined")),
			Seating:     parseInt(field("seating")),
			MSRP:        parseFloat(field("msrp")),
			Description: field("description"),
		})
	}
	return vehicles, nil
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	// Seating occasionally arrives as "5.0" in scraped data.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}
