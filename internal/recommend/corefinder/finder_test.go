// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package corefinder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/poketeam/internal/metagame/metagametest"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"negative min usage", func(c *Config) { c.MinUsage = -0.1 }, true},
		{"min usage above one", func(c *Config) { c.MinUsage = 1.5 }, true},
		{"zero target edges", func(c *Config) { c.TargetEdges = 0 }, true},
		{"floor above one", func(c *Config) { c.QuantileFloor = 1.1 }, true},
		{"negative exponent", func(c *Config) { c.UsageExponent = -1 }, true},
		{"core size one", func(c *Config) { c.MaxCoreSize = 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFind_Clusters(t *testing.T) {
	ds := metagametest.Clusters()

	for _, exp := range []float64{0, 0.5, 1} {
		cfg := DefaultConfig()
		cfg.UsageExponent = exp
		cores, stats, err := New(cfg, nil).FindWithStats(ds)
		if err != nil {
			t.Fatalf("exponent %v: FindWithStats() error = %v", exp, err)
		}

		want := []Core{{"A", "B", "C"}, {"D", "E"}}
		if !reflect.DeepEqual(cores, want) {
			t.Errorf("exponent %v: cores = %v, want %v", exp, cores, want)
		}
		if stats.Vertices != 6 || stats.Edges != 4 || stats.Cliques != 2 {
			t.Errorf("exponent %v: stats = %+v", exp, stats)
		}
	}
}

func TestFind_DegenerateClique(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCoreSize = 2

	_, err := New(cfg, nil).Find(metagametest.Clusters())
	if !errors.Is(err, ErrDegenerateClique) {
		t.Errorf("Find() error = %v, want ErrDegenerateClique", err)
	}
}

func TestFind_TooFewVertices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinUsage = 0.95

	cores, err := New(cfg, nil).Find(metagametest.RockPaperScissors())
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if cores == nil || len(cores) != 0 {
		t.Errorf("cores = %v, want empty non-nil", cores)
	}
}

func TestFind_MinUsageFiltersVertices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinUsage = 0.65

	cores, stats, err := New(cfg, nil).FindWithStats(metagametest.RockPaperScissors())
	if err != nil {
		t.Fatalf("FindWithStats() error = %v", err)
	}
	if stats.Vertices != 3 {
		t.Errorf("Vertices = %d, want 3", stats.Vertices)
	}
	for _, core := range cores {
		for _, name := range core {
			switch name {
			case "MegaRock", "MegaPaper", "MegaScissors":
			default:
				t.Errorf("core %v contains filtered entity %q", core, name)
			}
		}
	}
}

func TestFind_MembersSorted(t *testing.T) {
	cores, err := New(DefaultConfig(), nil).Find(metagametest.RockPaperScissors())
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(cores) == 0 {
		t.Fatal("expected at least one core")
	}
	for _, core := range cores {
		if len(core) < 2 {
			t.Errorf("core %v has fewer than two members", core)
		}
		for i := 1; i < len(core); i++ {
			if core[i-1] > core[i] {
				t.Errorf("core %v is not sorted", core)
			}
		}
	}
}

func chain() []Core {
	return []Core{
		{"C", "D", "E"},
		{"A", "B", "C"},
		{"D", "E", "F"},
		{"B", "C", "D"},
	}
}

func TestLinearize_Chain(t *testing.T) {
	got := New(DefaultConfig(), nil).linearize(chain())
	want := []Core{
		{"A", "B", "C"},
		{"B", "C", "D"},
		{"C", "D", "E"},
		{"D", "E", "F"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("linearize() = %v, want %v", got, want)
	}
}

// reversed visits nodes from last to first.
type reversed struct{}

func (reversed) Name() string { return "reversed" }

func (reversed) Order(dist [][]float64) []int {
	out := make([]int, len(dist))
	for i := range out {
		out[i] = len(dist) - 1 - i
	}
	return out
}

func TestLinearize_CustomApproximator(t *testing.T) {
	got := New(DefaultConfig(), reversed{}).linearize(chain())
	want := []Core{
		{"D", "E", "F"},
		{"C", "D", "E"},
		{"B", "C", "D"},
		{"A", "B", "C"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("linearize() = %v, want %v", got, want)
	}
}

func TestLinearize_SizeThenLexicographic(t *testing.T) {
	got := New(DefaultConfig(), nil).linearize([]Core{{"X", "Y"}, {"A", "Z"}})
	want := []Core{{"A", "Z"}, {"X", "Y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("linearize() = %v, want %v", got, want)
	}

	got = New(DefaultConfig(), nil).linearize([]Core{{"A", "B"}, {"C", "D", "E"}})
	want = []Core{{"C", "D", "E"}, {"A", "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("linearize() = %v, want %v", got, want)
	}
}

func TestCutHeaviest(t *testing.T) {
	dist := [][]float64{
		{0, 5, 1},
		{5, 0, 1},
		{1, 1, 0},
	}

	tests := []struct {
		name string
		tour []int
		want []int
	}{
		{"heaviest inside", []int{0, 1, 2}, []int{1, 2, 0}},
		{"heaviest closing", []int{0, 2, 1}, []int{0, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cutHeaviest(tt.tour, dist); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("cutHeaviest(%v) = %v, want %v", tt.tour, got, tt.want)
			}
		})
	}

	t.Run("ties keep the starting node", func(t *testing.T) {
		flat := [][]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
		if got := cutHeaviest([]int{2, 0, 1}, flat); !reflect.DeepEqual(got, []int{2, 0, 1}) {
			t.Errorf("cutHeaviest() = %v, want [2 0 1]", got)
		}
	})
}

func TestSymmetricDifference(t *testing.T) {
	tests := []struct {
		a, b Core
		want int
	}{
		{Core{"A", "B"}, Core{"A", "B"}, 0},
		{Core{"A", "B"}, Core{"C", "D"}, 4},
		{Core{"A", "B", "C"}, Core{"B", "C", "D"}, 2},
		{Core{"A"}, Core{}, 1},
		{Core{"A", "A"}, Core{"A"}, 1},
	}
	for _, tt := range tests {
		if got := symmetricDifference(tt.a, tt.b); got != tt.want {
			t.Errorf("symmetricDifference(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := symmetricDifference(tt.b, tt.a); got != tt.want {
			t.Errorf("symmetricDifference(%v, %v) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}
