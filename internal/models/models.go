package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Card type labels as the vision model reports them.
const (
	CardTypeSports = "Sports"
	CardTypeTCG    = "Trading Card Game (TCG)"
	CardTypeOther  = "Other"
)

// CardConditions lists the recognized condition grades, best first.
var CardConditions = []string{"Mint", "Near Mint", "Excellent", "Very Good", "Good", "Fair", "Poor"}

// CardDescriptor holds the raw attributes the vision model extracted for one
// card. All fields are untrusted input and may be empty.
type CardDescriptor struct {
	PlayerName         string `json:"playerName"`
	Year               string `json:"year"`
	Manufacturer       string `json:"manufacturer"`
	CardNumber         string `json:"cardNumber"`
	CardType           string `json:"cardType"`
	Sport              string `json:"sport"`
	EstimatedCondition string `json:"estimatedCondition"`
}

// IsTCG reports whether a card type label names a trading card game.
func IsTCG(cardType string) bool {
	return strings.Contains(strings.ToUpper(cardType), "TCG")
}

// EstimatedValue is a price band in whole currency units.
type EstimatedValue struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}

// CardRecord is the working representation of one card inside a grading
// session. Several records may share one source image when the vision model
// detects multiple cards in a single photo; the image binary is shared by
// reference, never duplicated.
type CardRecord struct {
	CardDescriptor

	SourceImageRef       string          `json:"sourceImageRef"`
	PositionInImage      int             `json:"positionInImage"`
	TotalDetectedInImage int             `json:"totalDetectedInImage"`
	DeclaredValue        string          `json:"declaredValue"`
	EstimatedValue       *EstimatedValue `json:"estimatedValue,omitempty"`
	ImageURL             string          `json:"imageUrl,omitempty"`
}

// ImageItem is one uploaded card photo within a session.
type ImageItem struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ImageURL    string `json:"image_url"`
	ContentType string `json:"content_type,omitempty"`
	Width       int    `json:"image_width"`
	Height      int    `json:"image_height"`
}

// GradingSession represents one in-progress submission: the uploaded images
// and the card records reconciled from them. The session exclusively owns its
// card list until the submission is assembled and persisted.
type GradingSession struct {
	ID        string       `json:"id"`
	Images    []ImageItem  `json:"images"`
	Cards     []CardRecord `json:"cards"`
	CreatedAt time.Time    `json:"created_at"`
}

// Image returns the session image with the given id, if present.
func (s *GradingSession) Image(id string) (ImageItem, bool) {
	for _, img := range s.Images {
		if img.ID == id {
			return img, true
		}
	}
	return ImageItem{}, false
}

// HasImage reports whether the session still holds the given image.
func (s *GradingSession) HasImage(id string) bool {
	_, ok := s.Image(id)
	return ok
}

// SubmitterInfo is the contact block shared by all cards in a submission.
type SubmitterInfo struct {
	GradingCompany      string `json:"gradingCompany"`
	ServiceTier         string `json:"serviceTier,omitempty"`
	SubmitterName       string `json:"submitterName"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	Address             string `json:"address,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// CardLineItem is one finalized card inside a persisted submission. It carries
// an image URL rather than the raw binary.
type CardLineItem struct {
	CardType           string `json:"cardType" dynamodbav:"cardType"`
	Sport              string `json:"sport" dynamodbav:"sport"`
	PlayerName         string `json:"playerName" dynamodbav:"playerName"`
	Year               string `json:"year" dynamodbav:"year"`
	Manufacturer       string `json:"manufacturer,omitempty" dynamodbav:"manufacturer,omitempty"`
	CardNumber         string `json:"cardNumber,omitempty" dynamodbav:"cardNumber,omitempty"`
	EstimatedCondition string `json:"estimatedCondition" dynamodbav:"estimatedCondition"`
	DeclaredValue      string `json:"declaredValue" dynamodbav:"declaredValue"`
	ImageURL           string `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
}

// Submission statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Submission is the persisted record of one grading submission.
type Submission struct {
	SubmissionID string `json:"submissionId" dynamodbav:"submissionId"`

	GradingCompany      string `json:"gradingCompany" dynamodbav:"gradingCompany"`
	ServiceTier         string `json:"serviceTier,omitempty" dynamodbav:"serviceTier,omitempty"`
	SubmitterName       string `json:"submitterName" dynamodbav:"submitterName"`
	Email               string `json:"email" dynamodbav:"email"`
	Phone               string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Address             string `json:"address,omitempty" dynamodbav:"address,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty" dynamodbav:"specialInstructions,omitempty"`

	Cards []CardLineItem `json:"cards" dynamodbav:"cards"`

	TotalCards         int             `json:"totalCards" dynamodbav:"totalCards"`
	TotalDeclaredValue decimal.Decimal `json:"totalDeclaredValue" dynamodbav:"totalDeclaredValue"`
	SubmittedAt        time.Time       `json:"submittedAt" dynamodbav:"submittedAt"`
	Status             string          `json:"status" dynamodbav:"status"`

	// Unix seconds after which storage may expire the record.
	TTL int64 `json:"ttl,omitempty" dynamodbav:"ttl,omitempty"`
}

// ServiceTier is one named turnaround/price option offered by a grading
// company.
type ServiceTier struct {
	Company     string    `json:"company" yaml:"company" dynamodbav:"company"`
	TierID      string    `json:"tierId" yaml:"id" dynamodbav:"tierId"`
	Name        string    `json:"name" yaml:"name" dynamodbav:"name"`
	Turnaround  string    `json:"turnaround" yaml:"turnaround" dynamodbav:"turnaround"`
	Price       string    `json:"price" yaml:"price" dynamodbav:"price"`
	Description string    `json:"description" yaml:"description" dynamodbav:"description"`
	Order       int       `json:"order" yaml:"order" dynamodbav:"order"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// TierAuditRecord logs one admin mutation of a service tier.
type TierAuditRecord struct {
	AuditID     string    `json:"auditId" dynamodbav:"auditId"`
	Timestamp   time.Time `json:"timestamp" dynamodbav:"timestamp"`
	Action      string    `json:"action" dynamodbav:"action"`
	Company     string    `json:"company" dynamodbav:"company"`
	TierID      string    `json:"tierId" dynamodbav:"tierId"`
	ActorEmail  string    `json:"actorEmail" dynamodbav:"actorEmail"`
	ActorGroups string    `json:"actorGroups" dynamodbav:"actorGroups"`
	OldValue    string    `json:"oldValue,omitempty" dynamodbav:"oldValue,omitempty"`
	NewValue    string    `json:"newValue,omitempty" dynamodbav:"newValue,omitempty"`
}
