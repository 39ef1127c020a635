package main

import (
	"encoding/gob"
	"fmt"
	"os"
)

// The velocity dataset is exchanged as a gob-encoded VelocityGrid. Conversion
// from the source NetCDF mosaic happens upstream of this tool.

func loadVelocityGrid(path string) (*VelocityGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open velocity grid: %w", err)
	}
	defer file.Close()

	var grid VelocityGrid
	if err := gob.NewDecoder(file).Decode(&grid); err != nil {
		return nil, fmt.Errorf("decode velocity grid %s: %w", path, err)
	}
	grid.Normalize()
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("velocity grid %s: %w", path, err)
	}
	return &grid, nil
}

func saveVelocityGrid(path string, grid *VelocityGrid) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create velocity grid: %w", err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(grid); err != nil {
		return fmt.Errorf("encode velocity grid %s: %w", path, err)
	}
	return nil
}
