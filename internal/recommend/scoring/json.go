// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package scoring

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/poketeam/internal/metagame"
)

// scoreJSON is the wire form of Score. Team and Combined are +Inf when a
// member always appears with the candidate.
type scoreJSON struct {
	Name     string         `json:"name"`
	Combined metagame.Float `json:"combined"`
	Counter  metagame.Float `json:"counter"`
	Team     metagame.Float `json:"team"`
	Usage    metagame.Float `json:"usage"`
}

// MarshalJSON implements json.Marshaler.
//
//nolint:gocritic // value receiver so Score values and pointers encode alike
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(scoreJSON{
		Name:     s.Name,
		Combined: metagame.Float(s.Combined),
		Counter:  metagame.Float(s.Counter),
		Team:     metagame.Float(s.Team),
		Usage:    metagame.Float(s.Usage),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Index is not carried.
func (s *Score) UnmarshalJSON(data []byte) error {
	var w scoreJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Score{
		Name:     w.Name,
		Combined: float64(w.Combined),
		Counter:  float64(w.Counter),
		Team:     float64(w.Team),
		Usage:    float64(w.Usage),
	}
	return nil
}

type ratingJSON struct {
	Name  string         `json:"name"`
	Value metagame.Float `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(ratingJSON{Name: r.Name, Value: metagame.Float(r.Value)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var w ratingJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Rating{Name: w.Name, Value: float64(w.Value)}
	return nil
}
