package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Criteria maps a rubric criterion key to its awarded points
type Criteria map[string]int

// Value implements driver.Valuer for Criteria
func (c Criteria) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for Criteria
func (c *Criteria) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = Criteria{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Criteria", value)
	}
	return json.Unmarshal(raw, c)
}

// Sum returns the total of all criterion values
func (c Criteria) Sum() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// Score is one judge's evaluation of one team
type Score struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	TeamID      uuid.UUID `json:"teamId" db:"team_id"`
	JudgeID     string    `json:"judgeId" db:"judge_id"`
	Criteria    Criteria  `json:"criteria" db:"criteria"`
	TotalScore  int       `json:"totalScore" db:"total"`
	Comments    string    `json:"comments" db:"comments"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// ScoreSubmission is the body of a score submission. Criterion values are
// decoded as numbers so fractional input is reported as an invalid score
// rather than a decoding failure.
type ScoreSubmission struct {
	TeamID   string             `json:"teamId" binding:"required"`
	Criteria map[string]float64 `json:"criteria"`
	Comments string             `json:"comments"`
}

// AssignmentRequest assigns teams to a judge
type AssignmentRequest struct {
	TeamIDs []string `json:"teamIds" binding:"required"`
}

// LeaderboardEntry aggregates all scores of one team
type LeaderboardEntry struct {
	TeamID       uuid.UUID `json:"teamId" db:"team_id"`
	TeamName     string    `json:"teamName" db:"team_name"`
	Track        string    `json:"track" db:"track"`
	JudgeCount   int       `json:"judgeCount" db:"judge_count"`
	TotalScore   int       `json:"totalScore" db:"total_score"`
	AverageScore float64   `json:"averageScore" db:"-"`
}
