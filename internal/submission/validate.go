package submission

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gradeport/gradeport/internal/models"
	"github.com/shopspring/decimal"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidationError reports every missing or malformed field at once so the
// user can fix the whole form in one pass. It is raised before any network
// or storage call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// Validate checks submitter info and every card record. A nil return means
// the submission is ready to assemble.
func Validate(info models.SubmitterInfo, cards []models.CardRecord) error {
	var fields []string

	if info.GradingCompany == "" {
		fields = append(fields, "gradingCompany")
	}
	if info.SubmitterName == "" {
		fields = append(fields, "submitterName")
	}
	switch {
	case info.Email == "":
		fields = append(fields, "email")
	case !emailRe.MatchString(info.Email):
		fields = append(fields, "email (invalid format)")
	}

	if len(cards) == 0 {
		fields = append(fields, "cards (at least one card is required)")
	}
	for i, card := range cards {
		fields = append(fields, validateCard(i, card)...)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateCard(index int, card models.CardRecord) []string {
	var fields []string
	missing := func(name string) {
		fields = append(fields, fmt.Sprintf("cards[%d].%s", index, name))
	}

	if card.CardType == "" {
		missing("cardType")
	}
	if card.Sport == "" {
		missing("sport")
	}
	if card.PlayerName == "" {
		missing("playerName")
	}
	if card.Year == "" {
		missing("year")
	}
	if card.EstimatedCondition == "" {
		missing("estimatedCondition")
	}

	if card.DeclaredValue == "" {
		missing("declaredValue")
	} else if value, err := decimal.NewFromString(card.DeclaredValue); err != nil {
		missing("declaredValue (not a number)")
	} else if value.IsNegative() {
		missing("declaredValue (negative)")
	}

	return fields
}
