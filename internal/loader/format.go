// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package loader

import (
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/tomtom215/poketeam/internal/metagame"
)

// File name suffixes relative to the dataset name.
const (
	recordsSuffix = ".json"
	synergySuffix = "_team.json"
	threatSuffix  = "_threats.json"
)

// Info is the dataset metadata block.
type Info struct {
	Metagame string  `json:"metagame"`
	Cutoff   float64 `json:"cutoff"`
	Battles  int     `json:"battles"`
}

type datasetFile struct {
	Info     Info              `json:"info"`
	Entities []metagame.Record `json:"entities"`
}

// decodeRecords parses a records file.
func decodeRecords(data []byte) (Info, []metagame.Record, error) {
	var f datasetFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Info{}, nil, fmt.Errorf("decode records: %w", err)
	}
	if len(f.Entities) == 0 {
		return Info{}, nil, fmt.Errorf("decode records: no entities")
	}
	return f.Info, f.Entities, nil
}

// decodeMatrix parses an N x N matrix. When allowInf is set, null cells
// become +Inf; otherwise they are rejected.
func decodeMatrix(data []byte, allowInf bool) (metagame.Matrix, error) {
	var cells [][]*float64
	if err := json.Unmarshal(data, &cells); err != nil {
		return metagame.Matrix{}, fmt.Errorf("decode matrix: %w", err)
	}

	rows := make([][]float64, len(cells))
	for i, row := range cells {
		rows[i] = make([]float64, len(row))
		for j, cell := range row {
			switch {
			case cell != nil:
				rows[i][j] = *cell
			case allowInf:
				rows[i][j] = math.Inf(1)
			default:
				return metagame.Matrix{}, fmt.Errorf("decode matrix: null at [%d][%d]", i, j)
			}
		}
	}
	return metagame.NewMatrix(rows)
}
