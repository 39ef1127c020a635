package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// SelectionRecord is a committed (basin, seed) pair. Immutable once appended.
type SelectionRecord struct {
	Basin string
	Seed  Point
}

var csvHeader = []string{"basin", "seed_x", "seed_y"}

// ResultStore accumulates committed records in commit order and flushes them
// to a CSV file. Basins that never reached commit are simply absent.
type ResultStore struct {
	path    string
	records []SelectionRecord
}

func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

func (rs *ResultStore) Append(rec SelectionRecord) {
	rs.records = append(rs.records, rec)
}

func (rs *ResultStore) Len() int { return len(rs.records) }

func (rs *ResultStore) Records() []SelectionRecord { return rs.records }

// Flush writes the output CSV: header row `basin,seed_x,seed_y` then one row
// per committed basin. Safe to call with zero records.
func (rs *ResultStore) Flush() error {
	file, err := os.Create(rs.path)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		file.Close()
		return fmt.Errorf("write results: %w", err)
	}
	for _, rec := range rs.records {
		row := []string{
			rec.Basin,
			strconv.FormatFloat(rec.Seed.X, 'f', -1, 64),
			strconv.FormatFloat(rec.Seed.Y, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("write results: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("write results: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// LoadSavedSeeds reads a previous run's output so its seeds can prefill the
// next run. A missing file is not an error; malformed rows are skipped.
func LoadSavedSeeds(path string) (map[string]Point, error) {
	seeds := make(map[string]Point)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return seeds, nil
		}
		return nil, fmt.Errorf("read saved seeds: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read saved seeds %s: %w", path, err)
	}
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue // header
		}
		x, errX := strconv.ParseFloat(row[1], 64)
		y, errY := strconv.ParseFloat(row[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		seeds[row[0]] = Point{X: x, Y: y}
	}
	return seeds, nil
}
