package pricing

import (
	"testing"

	"github.com/gradeport/gradeport/internal/models"
)

func TestEstimateMissingFieldsReturnsNil(t *testing.T) {
	estimator := NewEstimator(Default())

	tests := []struct {
		name string
		card models.CardDescriptor
	}{
		{
			name: "missing player name",
			card: models.CardDescriptor{Year: "1986", EstimatedCondition: "Mint"},
		},
		{
			name: "missing year",
			card: models.CardDescriptor{PlayerName: "Michael Jordan", EstimatedCondition: "Mint"},
		},
		{
			name: "missing condition",
			card: models.CardDescriptor{PlayerName: "Michael Jordan", Year: "1986"},
		},
		{
			name: "all missing",
			card: models.CardDescriptor{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimator.Estimate(tt.card); got != nil {
				t.Errorf("Estimate() = %+v, want nil", got)
			}
		})
	}
}

func TestEstimateConditionRatio(t *testing.T) {
	estimator := NewEstimator(Default())

	mint := models.CardDescriptor{
		PlayerName:         "John Smith",
		Year:               "2005",
		CardType:           models.CardTypeSports,
		EstimatedCondition: "Mint",
	}
	poor := mint
	poor.EstimatedCondition = "Poor"

	mintVal := estimator.Estimate(mint)
	poorVal := estimator.Estimate(poor)
	if mintVal == nil || poorVal == nil {
		t.Fatal("expected non-nil estimates")
	}

	// Mint (2.0) vs Poor (0.2) must come out exactly 10x apart.
	if mintVal.Average != poorVal.Average*10 {
		t.Errorf("Mint average = %d, Poor average = %d, want exact 10x ratio",
			mintVal.Average, poorVal.Average)
	}
}

func TestEstimateKnownValues(t *testing.T) {
	estimator := NewEstimator(Default())

	tests := []struct {
		name string
		card models.CardDescriptor
		want models.EstimatedValue
	}{
		{
			// 50 base, no matches, Very Good 1.0
			name: "unknown modern sports card",
			card: models.CardDescriptor{
				PlayerName:         "Joe Nobody",
				Year:               "2010",
				CardType:           models.CardTypeSports,
				EstimatedCondition: "Very Good",
			},
			want: models.EstimatedValue{Min: 40, Max: 60, Average: 50},
		},
		{
			// 500 marquee base * 2 (1986 < 1990) * 1.5 (Near Mint) = 1500
			name: "marquee athlete vintage card",
			card: models.CardDescriptor{
				PlayerName:         "Michael Jordan",
				Year:               "1986",
				CardType:           models.CardTypeSports,
				EstimatedCondition: "Near Mint",
			},
			want: models.EstimatedValue{Min: 1200, Max: 1800, Average: 1500},
		},
		{
			// 300 Pokemon base * 4 vintage marker * 2.0 Mint = 2400;
			// 1999 is past the year-multiplier cutoffs.
			name: "vintage base set Charizard",
			card: models.CardDescriptor{
				PlayerName:         "Charizard",
				Year:               "1999",
				CardType:           models.CardTypeTCG,
				EstimatedCondition: "Mint",
			},
			want: models.EstimatedValue{Min: 1920, Max: 2880, Average: 2400},
		},
		{
			// Marquee list is sports-only: a TCG card named after an athlete
			// takes the TCG path and keeps the default base.
			name: "tcg card ignores marquee list",
			card: models.CardDescriptor{
				PlayerName:         "Michael Jordan",
				Year:               "2010",
				CardType:           models.CardTypeTCG,
				EstimatedCondition: "Very Good",
			},
			want: models.EstimatedValue{Min: 40, Max: 60, Average: 50},
		},
		{
			// 2000 MTG base * 3 (pre-1970) * 0.2 Poor = 1200
			name: "power nine poor condition",
			card: models.CardDescriptor{
				PlayerName:         "Black Lotus",
				Year:               "1965",
				CardType:           models.CardTypeTCG,
				EstimatedCondition: "Poor",
			},
			want: models.EstimatedValue{Min: 960, Max: 1440, Average: 1200},
		},
		{
			// Unparseable year skips the year multiplier but still matches
			// the vintage marker: 300 * 4 * 1.0 = 1200.
			name: "unparseable year with vintage marker",
			card: models.CardDescriptor{
				PlayerName:         "Pikachu",
				Year:               "Base Set",
				CardType:           models.CardTypeTCG,
				EstimatedCondition: "Very Good",
			},
			want: models.EstimatedValue{Min: 960, Max: 1440, Average: 1200},
		},
		{
			// Unrecognized condition falls back to 1.0.
			name: "unknown condition multiplier",
			card: models.CardDescriptor{
				PlayerName:         "Joe Nobody",
				Year:               "2010",
				CardType:           models.CardTypeSports,
				EstimatedCondition: "Gem Mint 10",
			},
			want: models.EstimatedValue{Min: 40, Max: 60, Average: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimator.Estimate(tt.card)
			if got == nil {
				t.Fatal("Estimate() = nil, want value")
			}
			if *got != tt.want {
				t.Errorf("Estimate() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestEstimateCaseInsensitiveSubstringMatch(t *testing.T) {
	estimator := NewEstimator(Default())

	card := models.CardDescriptor{
		PlayerName:         "1986 Fleer MICHAEL JORDAN rookie",
		Year:               "2010",
		CardType:           models.CardTypeSports,
		EstimatedCondition: "Very Good",
	}

	got := estimator.Estimate(card)
	if got == nil {
		t.Fatal("Estimate() = nil, want value")
	}
	if got.Average != 500 {
		t.Errorf("Average = %d, want 500 for marquee substring match", got.Average)
	}
}

func TestConditionMultiplierDefault(t *testing.T) {
	tables := Default()
	if m := tables.ConditionMultiplier("No Such Grade"); m != 1.0 {
		t.Errorf("ConditionMultiplier(unknown) = %v, want 1.0", m)
	}
	if m := tables.ConditionMultiplier("Mint"); m != 2.0 {
		t.Errorf("ConditionMultiplier(Mint) = %v, want 2.0", m)
	}
}
