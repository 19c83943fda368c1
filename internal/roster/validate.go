package roster

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

// NameExistsFunc reports whether a team name is already stored
type NameExistsFunc func(ctx context.Context, name string) (bool, error)

// Validator applies the per-team import rules
type Validator struct {
	genders  *GenderScheme
	validate *validator.Validate
}

// NewValidator creates a validator using the given gender vocabulary
func NewValidator(genders *GenderScheme) *Validator {
	if genders == nil {
		genders = DefaultGenderScheme()
	}
	return &Validator{
		genders:  genders,
		validate: validator.New(),
	}
}

// Batch validates the rows of one import. Names passed to Accept are
// remembered so later rows with the same name are reported as duplicates.
type Batch struct {
	v      *Validator
	exists NameExistsFunc
	seen   map[string]struct{}
}

// NewBatch starts a batch. exists may be nil when no store is consulted.
func (v *Validator) NewBatch(exists NameExistsFunc) *Batch {
	return &Batch{v: v, exists: exists, seen: make(map[string]struct{})}
}

// Check runs the rules in order and returns the team ready to persist.
// The first rule a row breaks is returned as an AppError. Errors from the
// name lookup are returned as is. Check does not claim the name; call
// Accept once the team is stored.
func (b *Batch) Check(ctx context.Context, row Row) (*models.Team, error) {
	if row.TeamName == "" {
		return nil, errors.MissingField("Team_Name")
	}
	if row.ProblemStatement == "" {
		return nil, errors.MissingField("Problem_Statement_Title")
	}

	if _, ok := b.seen[row.TeamName]; ok {
		return nil, errors.DuplicateTeam(row.TeamName)
	}
	if b.exists != nil {
		taken, err := b.exists(ctx, row.TeamName)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.DuplicateTeam(row.TeamName)
		}
	}

	return b.v.checkMembers(row)
}

// Accept claims a team name for the rest of the batch
func (b *Batch) Accept(name string) {
	b.seen[name] = struct{}{}
}

// checkMembers covers the member rules, from member count to duplicate email
func (v *Validator) checkMembers(row Row) (*models.Team, error) {
	if len(row.Members) != models.TeamSize {
		return nil, errors.MemberCount(len(row.Members), models.TeamSize)
	}

	for _, m := range row.Members {
		if err := v.validate.Var(m.Email, "required,email"); err != nil {
			return nil, errors.InvalidEmail(m.Name, m.Email)
		}
	}

	genders := make([]string, len(row.Members))
	for i, m := range row.Members {
		g, ok := v.genders.Normalize(m.Gender)
		if !ok {
			return nil, errors.InvalidGender(m.Name, m.Gender)
		}
		genders[i] = g
	}

	diverse := false
	for _, g := range genders {
		if g == v.genders.Diversity {
			diverse = true
			break
		}
	}
	if !diverse {
		return nil, errors.DiversityViolation(v.genders.Diversity)
	}

	emails := make(map[string]struct{}, len(row.Members))
	for _, m := range row.Members {
		key := strings.ToLower(m.Email)
		if _, dup := emails[key]; dup {
			return nil, errors.DuplicateEmail(m.Email)
		}
		emails[key] = struct{}{}
	}

	return buildTeam(row, genders), nil
}

func buildTeam(row Row, genders []string) *models.Team {
	now := time.Now().UTC()
	team := &models.Team{
		ID:               uuid.New(),
		Name:             row.TeamName,
		ProblemStatement: row.ProblemStatement,
		Track:            row.Track,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	lead := 0
	for i, m := range row.Members {
		if m.Lead {
			lead = i
			break
		}
	}

	team.Members = make([]models.Member, len(row.Members))
	for i, m := range row.Members {
		team.Members[i] = models.Member{
			ID:       uuid.New(),
			TeamID:   team.ID,
			Position: i + 1,
			Name:     m.Name,
			Email:    m.Email,
			Gender:   genders[i],
			IsLead:   i == lead,
		}
	}
	return team
}
