package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Franchise is one curated rarity list for a trading card game. A name match
// against Cards overrides the base value for the card being estimated.
type Franchise struct {
	Name      string   `yaml:"name"`
	Cards     []string `yaml:"cards"`
	BaseValue float64  `yaml:"base_value"`
}

// Tables holds the static pricing configuration consulted by the estimator.
// The dollar amounts are tunable configuration, not business rules; Default
// returns the shipped values and LoadFile overlays a YAML override.
type Tables struct {
	DefaultBaseValue float64 `yaml:"default_base_value"`

	Franchises        []Franchise `yaml:"franchises"`
	VintageMarkers    []string    `yaml:"vintage_markers"`
	VintageMultiplier float64     `yaml:"vintage_multiplier"`

	MarqueePlayers   []string `yaml:"marquee_players"`
	MarqueeBaseValue float64  `yaml:"marquee_base_value"`

	ConditionMultipliers map[string]float64 `yaml:"condition_multipliers"`
}

// Default returns the built-in pricing tables.
func Default() Tables {
	return Tables{
		DefaultBaseValue: 50,
		Franchises: []Franchise{
			{
				Name:      "Pokemon",
				Cards:     []string{"Charizard", "Pikachu", "Mewtwo", "Blastoise", "Venusaur", "Lugia", "Rayquaza", "Gyarados"},
				BaseValue: 300,
			},
			{
				Name:      "Magic: The Gathering",
				Cards:     []string{"Black Lotus", "Mox", "Ancestral Recall", "Time Walk", "Timetwister", "Underground Sea", "Tundra"},
				BaseValue: 2000,
			},
			{
				Name:      "Yu-Gi-Oh!",
				Cards:     []string{"Blue-Eyes White Dragon", "Dark Magician", "Exodia", "Red-Eyes Black Dragon"},
				BaseValue: 200,
			},
		},
		VintageMarkers:    []string{"1999", "Base Set", "1st Edition"},
		VintageMultiplier: 4,
		MarqueePlayers: []string{
			"Michael Jordan", "LeBron James", "Kobe Bryant", "Tom Brady", "Patrick Mahomes",
			"Wayne Gretzky", "Babe Ruth", "Mickey Mantle", "Mike Trout", "Shohei Ohtani",
			"Stephen Curry", "Lionel Messi", "Cristiano Ronaldo",
		},
		MarqueeBaseValue: 500,
		ConditionMultipliers: map[string]float64{
			"Mint":      2.0,
			"Near Mint": 1.5,
			"Excellent": 1.2,
			"Very Good": 1.0,
			"Good":      0.7,
			"Fair":      0.4,
			"Poor":      0.2,
		},
	}
}

// LoadFile reads a YAML pricing override and applies it on top of the
// defaults, so a partial file only replaces the sections it names.
func LoadFile(path string) (Tables, error) {
	tables := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("failed to read pricing config: %w", err)
	}

	if err := yaml.Unmarshal(data, &tables); err != nil {
		return tables, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	return tables, nil
}

// ConditionMultiplier returns the multiplier for a condition grade. Unknown
// or missing conditions fall back to 1.0.
func (t Tables) ConditionMultiplier(condition string) float64 {
	if m, ok := t.ConditionMultipliers[condition]; ok {
		return m
	}
	return 1.0
}
