package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Certificate categories
const (
	CategoryParticipation = "Participation"
	CategoryFirstPlace    = "Winner - First Place"
	CategorySecondPlace   = "Winner - Second Place"
	CategoryThirdPlace    = "Winner - Third Place"
	CategoryInnovation    = "Best Innovation"
	CategoryTechnical     = "Best Technical Implementation"
	CategoryPeoplesChoice = "People's Choice"
)

// Categories lists every certificate category in display order
var Categories = []string{
	CategoryParticipation,
	CategoryFirstPlace,
	CategorySecondPlace,
	CategoryThirdPlace,
	CategoryInnovation,
	CategoryTechnical,
	CategoryPeoplesChoice,
}

// CanonicalCategory matches name case-insensitively against Categories
// and returns the canonical spelling.
func CanonicalCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// Certificate is an issued proof of participation or award for one member
type Certificate struct {
	ID              uuid.UUID `json:"certificateId" db:"id"`
	MemberID        uuid.UUID `json:"-" db:"member_id"`
	TeamID          uuid.UUID `json:"-" db:"team_id"`
	ParticipantName string    `json:"participantName" db:"participant_name"`
	TeamName        string    `json:"teamName" db:"team_name"`
	Category        string    `json:"certificateType" db:"category"`
	EventName       string    `json:"eventName" db:"event_name"`
	IssuedAt        time.Time `json:"issuedAt" db:"issued_at"`
}

// CertificateView is the public verification result. It carries no
// contact details, scores or internal ids.
type CertificateView struct {
	CertificateID   string    `json:"certificateId"`
	ParticipantName string    `json:"participantName"`
	TeamName        string    `json:"teamName"`
	CertificateType string    `json:"certificateType"`
	EventName       string    `json:"eventName"`
	IssuedAt        time.Time `json:"issuedAt"`
}

// View returns the public projection of the certificate
func (c *Certificate) View() CertificateView {
	return CertificateView{
		CertificateID:   c.ID.String(),
		ParticipantName: c.ParticipantName,
		TeamName:        c.TeamName,
		CertificateType: c.Category,
		EventName:       c.EventName,
		IssuedAt:        c.IssuedAt,
	}
}

// CertificateRequest is the body of a generation request
type CertificateRequest struct {
	TeamIDs         []string `json:"teamIds"`
	CertificateType string   `json:"certificateType"`
}
