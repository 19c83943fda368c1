package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamSize is the number of members every team must have
const TeamSize = 6

// Team represents a registered hackathon team
type Team struct {
	ID               uuid.UUID `json:"_id" db:"id"`
	Name             string    `json:"teamName" db:"name"`
	ProblemStatement string    `json:"problemStatement" db:"problem_statement"`
	Track            string    `json:"track" db:"track"`
	GithubLink       string    `json:"githubLink" db:"github_link"`
	PresentationLink string    `json:"presentationLink" db:"presentation_link"`
	VideoLink        string    `json:"videoLink" db:"video_link"`
	Members          []Member  `json:"members" db:"-"`
	Scores           []Score   `json:"scores,omitempty" db:"-"`
	HasScored        *bool     `json:"hasScored,omitempty" db:"-"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// Member represents one participant of a team
type Member struct {
	ID       uuid.UUID `json:"-" db:"id"`
	TeamID   uuid.UUID `json:"-" db:"team_id"`
	Position int       `json:"-" db:"position"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
	Gender   string    `json:"gender" db:"gender"`
	IsLead   bool      `json:"isLead" db:"is_lead"`
}

// Lead returns the team lead, or nil when members are not loaded
func (t *Team) Lead() *Member {
	for i := range t.Members {
		if t.Members[i].IsLead {
			return &t.Members[i]
		}
	}
	return nil
}

// TeamPatch holds the editable fields of a team. Nil fields are left unchanged.
type TeamPatch struct {
	ProblemStatement *string `json:"problemStatement" validate:"omitempty,max=500"`
	Track            *string `json:"track" validate:"omitempty,max=100"`
	GithubLink       *string `json:"githubLink" validate:"omitempty,http_url"`
	PresentationLink *string `json:"presentationLink" validate:"omitempty,http_url"`
	VideoLink        *string `json:"videoLink" validate:"omitempty,http_url"`
}

// Empty reports whether the patch changes nothing
func (p TeamPatch) Empty() bool {
	return p.ProblemStatement == nil && p.Track == nil && p.GithubLink == nil &&
		p.PresentationLink == nil && p.VideoLink == nil
}

// Apply copies the set fields onto the team
func (p TeamPatch) Apply(t *Team) {
	if p.ProblemStatement != nil {
		t.ProblemStatement = *p.ProblemStatement
	}
	if p.Track != nil {
		t.Track = *p.Track
	}
	if p.GithubLink != nil {
		t.GithubLink = *p.GithubLink
	}
	if p.PresentationLink != nil {
		t.PresentationLink = *p.PresentationLink
	}
	if p.VideoLink != nil {
		t.VideoLink = *p.VideoLink
	}
}
