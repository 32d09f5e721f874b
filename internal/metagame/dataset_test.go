// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package metagame

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func identity(n int) Matrix {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func testRecords() []Record {
	return []Record{
		{Name: "Garchomp", Usage: 0.3, Count: 300},
		{Name: "Rotom-Wash", Usage: 0.2, Count: 200},
		{Name: "Ferrothorn", Usage: 0.1, Count: 100},
	}
}

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if got := m.At(1, 0); got != 3 {
		t.Errorf("At(1, 0) = %v, want 3", got)
	}
	if got := m.Row(1); !reflect.DeepEqual(got, []float64{3, 4}) {
		t.Errorf("Row(1) = %v, want [3 4]", got)
	}

	if _, err := NewMatrix([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("ragged matrix error = %v, want ErrInvalidDataset", err)
	}
}

func TestNewMatrix_CopiesInput(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	m, err := NewMatrix(rows)
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	rows[0][0] = 99
	if m.At(0, 0) != 1 {
		t.Error("matrix should not alias caller rows")
	}
}

func TestNew(t *testing.T) {
	threat := identity(3)
	ds, err := New("gen9ou", testRecords(), &threat, identity(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if ds.Name() != "gen9ou" {
		t.Errorf("Name() = %q, want gen9ou", ds.Name())
	}
	if ds.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ds.Len())
	}
	if !ds.HasThreats() {
		t.Error("HasThreats() = false, want true")
	}
	if idx, ok := ds.Index("Rotom-Wash"); !ok || idx != 1 {
		t.Errorf("Index(Rotom-Wash) = %d, %v, want 1, true", idx, ok)
	}
	if got := ds.Names(); !reflect.DeepEqual(got, []string{"Garchomp", "Rotom-Wash", "Ferrothorn"}) {
		t.Errorf("Names() = %v", got)
	}
	if ds.Usage(2) != 0.1 {
		t.Errorf("Usage(2) = %v, want 0.1", ds.Usage(2))
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		threat  *Matrix
		synergy Matrix
	}{
		{
			name:    "synergy size mismatch",
			records: testRecords(),
			synergy: identity(2),
		},
		{
			name:    "threat size mismatch",
			records: testRecords(),
			threat:  func() *Matrix { m := identity(4); return &m }(),
			synergy: identity(3),
		},
		{
			name: "duplicate name",
			records: []Record{
				{Name: "Garchomp", Usage: 0.3},
				{Name: "Garchomp", Usage: 0.2},
			},
			synergy: identity(2),
		},
		{
			name:    "empty name",
			records: []Record{{Name: "", Usage: 0.3}},
			synergy: identity(1),
		},
		{
			name:    "zero usage",
			records: []Record{{Name: "Garchomp", Usage: 0}},
			synergy: identity(1),
		},
		{
			name:    "usage above one",
			records: []Record{{Name: "Garchomp", Usage: 1.5}},
			synergy: identity(1),
		},
		{
			name:    "NaN usage",
			records: []Record{{Name: "Garchomp", Usage: math.NaN()}},
			synergy: identity(1),
		},
		{
			name:    "negative count",
			records: []Record{{Name: "Garchomp", Usage: 0.5, Count: -1}},
			synergy: identity(1),
		},
		{
			name:    "NaN count",
			records: []Record{{Name: "Garchomp", Usage: 0.5, Count: math.NaN()}},
			synergy: identity(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", tt.records, tt.threat, tt.synergy)
			if !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("New() error = %v, want ErrInvalidDataset", err)
			}
		})
	}
}

func TestNew_WithoutThreats(t *testing.T) {
	ds, err := New("vgc", testRecords(), nil, identity(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ds.HasThreats() {
		t.Error("HasThreats() = true, want false")
	}
	if ds.Threat() != nil {
		t.Error("Threat() should be nil without threat data")
	}
}

func TestDataset_Resolve(t *testing.T) {
	ds, err := New("gen9ou", testRecords(), nil, identity(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Run("preserves order and repeats", func(t *testing.T) {
		got, err := ds.Resolve([]string{"Ferrothorn", "Garchomp", "Ferrothorn"})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if want := []int{2, 0, 2}; !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %v, want %v", got, want)
		}
		if names := ds.NamesOf(got); !reflect.DeepEqual(names, []string{"Ferrothorn", "Garchomp", "Ferrothorn"}) {
			t.Errorf("NamesOf() = %v", names)
		}
	})

	t.Run("empty team", func(t *testing.T) {
		got, err := ds.Resolve(nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Resolve(nil) = %v, want empty", got)
		}
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := ds.Resolve([]string{"Garchomp", "Missingno"})
		if !errors.Is(err, ErrUnknownEntity) {
			t.Errorf("Resolve() error = %v, want ErrUnknownEntity", err)
		}
	})

	t.Run("too many members", func(t *testing.T) {
		team := []string{"Garchomp", "Garchomp", "Garchomp", "Garchomp", "Garchomp", "Garchomp", "Garchomp"}
		_, err := ds.Resolve(team)
		if !errors.Is(err, ErrTeamTooLarge) {
			t.Errorf("Resolve() error = %v, want ErrTeamTooLarge", err)
		}
	})
}

func TestDataset_Lookup(t *testing.T) {
	ds, err := New("gen9ou", testRecords(), nil, identity(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r, err := ds.Lookup("Rotom-Wash")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if r.Count != 200 {
		t.Errorf("Lookup().Count = %g, want 200", r.Count)
	}

	if _, err := ds.Lookup("Missingno"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Lookup() error = %v, want ErrUnknownEntity", err)
	}
}
