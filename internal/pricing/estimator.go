package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/gradeport/gradeport/internal/models"
)

// Estimator maps a card's extracted attributes to a price band. It is a pure
// heuristic over the configured tables; it performs no I/O.
type Estimator struct {
	tables Tables
}

// NewEstimator returns an estimator over the given tables.
func NewEstimator(tables Tables) *Estimator {
	return &Estimator{tables: tables}
}

// Estimate returns the price band for a card, or nil when the player name,
// year, or condition is missing. Callers must not display a value for a nil
// result; a non-nil Average is the default declared value until the user
// overrides it.
func (e *Estimator) Estimate(d models.CardDescriptor) *models.EstimatedValue {
	if d.PlayerName == "" || d.Year == "" || d.EstimatedCondition == "" {
		return nil
	}

	base := e.tables.DefaultBaseValue

	if models.IsTCG(d.CardType) {
		name := strings.ToLower(d.PlayerName)
		for _, franchise := range e.tables.Franchises {
			if matchesAny(name, franchise.Cards) {
				base = franchise.BaseValue
			}
		}
		if containsAny(d.Year, e.tables.VintageMarkers) {
			base *= e.tables.VintageMultiplier
		}
	} else {
		if matchesAny(strings.ToLower(d.PlayerName), e.tables.MarqueePlayers) {
			base = e.tables.MarqueeBaseValue
		}
	}

	// Vintage cards are worth more. An unparseable year is not an error,
	// the multiplier is simply skipped.
	if year, err := strconv.Atoi(strings.TrimSpace(d.Year)); err == nil {
		switch {
		case year < 1970:
			base *= 3
		case year < 1990:
			base *= 2
		}
	}

	price := base * e.tables.ConditionMultiplier(d.EstimatedCondition)

	// 20% variance for a realistic pricing range.
	variance := price * 0.2
	return &models.EstimatedValue{
		Min:     int(math.Round(price - variance)),
		Max:     int(math.Round(price + variance)),
		Average: int(math.Round(price)),
	}
}

// matchesAny reports whether the lower-cased name contains any entry of the
// list, compared case-insensitively.
func matchesAny(lowerName string, list []string) bool {
	for _, entry := range list {
		if strings.Contains(lowerName, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
