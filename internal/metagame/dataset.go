// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package metagame

import (
	"fmt"
	"math"
)

// TeamSize is the number of members in a complete team.
const TeamSize = 6

// Record is the per-entity usage snapshot.
type Record struct {
	// Name is the unique display name and lookup key.
	Name string `json:"name"`

	// Usage is the fraction of teams containing this entity, in (0, 1].
	Usage float64 `json:"usage"`

	// Count is the weighted number of appearances. Rating-weighted
	// statistics make it fractional.
	Count float64 `json:"count"`

	// Items, Moves and Abilities are display-only frequency tables.
	Items     map[string]float64 `json:"items,omitempty"`
	Moves     map[string]float64 `json:"moves,omitempty"`
	Abilities map[string]float64 `json:"abilities,omitempty"`
}

// Dataset is an immutable usage snapshot for one format.
// It is safe for concurrent use.
type Dataset struct {
	name    string
	records []Record
	index   map[string]int
	threat  *Matrix
	synergy Matrix
}

// New validates and assembles a Dataset. threat may be nil when the format
// has no threat data; synergy is required. Record order defines the
// dataset's iteration order and matrix indices.
func New(name string, records []Record, threat *Matrix, synergy Matrix) (*Dataset, error) {
	n := len(records)
	if synergy.Len() != n {
		return nil, fmt.Errorf("%w: synergy matrix is %dx%d for %d records", ErrInvalidDataset, synergy.Len(), synergy.Len(), n)
	}
	if threat != nil && threat.Len() != n {
		return nil, fmt.Errorf("%w: threat matrix is %dx%d for %d records", ErrInvalidDataset, threat.Len(), threat.Len(), n)
	}

	index := make(map[string]int, n)
	owned := make([]Record, n)
	for i, r := range records {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrInvalidDataset, i)
		}
		if _, dup := index[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate entity %q", ErrInvalidDataset, r.Name)
		}
		if !(r.Usage > 0 && r.Usage <= 1) {
			return nil, fmt.Errorf("%w: entity %q has usage %g outside (0, 1]", ErrInvalidDataset, r.Name, r.Usage)
		}
		if !(r.Count >= 0) || math.IsInf(r.Count, 1) {
			return nil, fmt.Errorf("%w: entity %q has count %g, want a finite value >= 0", ErrInvalidDataset, r.Name, r.Count)
		}
		index[r.Name] = i
		owned[i] = r
	}

	ds := &Dataset{
		name:    name,
		records: owned,
		index:   index,
		synergy: synergy,
	}
	if threat != nil {
		t := *threat
		ds.threat = &t
	}
	return ds, nil
}

// Name returns the format identifier the dataset was loaded under.
func (d *Dataset) Name() string {
	return d.name
}

// Len returns the number of entities.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the record at index i.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// EntityName returns the name at index i.
func (d *Dataset) EntityName(i int) string {
	return d.records[i].Name
}

// Usage returns the usage fraction at index i.
func (d *Dataset) Usage(i int) float64 {
	return d.records[i].Usage
}

// Names returns all entity names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.records))
	for i, r := range d.records {
		names[i] = r.Name
	}
	return names
}

// Index returns the index for name and whether it exists.
func (d *Dataset) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Lookup returns the record for name.
func (d *Dataset) Lookup(name string) (Record, error) {
	i, ok := d.index[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
	return d.records[i], nil
}

// HasThreats reports whether threat data is available.
func (d *Dataset) HasThreats() bool {
	return d.threat != nil
}

// Threat returns the threat matrix, or nil when the format has none.
func (d *Dataset) Threat() *Matrix {
	return d.threat
}

// Synergy returns the synergy matrix.
func (d *Dataset) Synergy() Matrix {
	return d.synergy
}

// Resolve maps a team of names to indices, preserving order and repeats.
// The first unknown name aborts with ErrUnknownEntity.
func (d *Dataset) Resolve(team []string) ([]int, error) {
	if len(team) > TeamSize {
		return nil, fmt.Errorf("%w: %d members, maximum %d", ErrTeamTooLarge, len(team), TeamSize)
	}
	indices := make([]int, len(team))
	for i, name := range team {
		idx, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
		}
		indices[i] = idx
	}
	return indices, nil
}

// NamesOf maps indices back to entity names.
func (d *Dataset) NamesOf(indices []int) []string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = d.records[idx].Name
	}
	return names
}
