package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

const teamColumns = `t.id, t.name, t.problem_statement, t.track, t.github_link,
	t.presentation_link, t.video_link, t.created_at, t.updated_at`

// teamRepository implements TeamRepository
type teamRepository struct {
	db dbExecutor
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db dbExecutor) TeamRepository {
	return &teamRepository{db: db}
}

// Create inserts the team and its members. Call it inside a transaction
// so a failing member insert does not leave a partial team.
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	team.UpdatedAt = team.CreatedAt

	query := r.db.Rebind(`
		INSERT INTO teams (id, name, problem_statement, track, github_link,
			presentation_link, video_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		team.ID, team.Name, team.ProblemStatement, team.Track, team.GithubLink,
		team.PresentationLink, team.VideoLink, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.DuplicateTeam(team.Name)
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	memberQuery := r.db.Rebind(`
		INSERT INTO members (id, team_id, position, name, email, gender, is_lead)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	for i := range team.Members {
		m := &team.Members[i]
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.TeamID = team.ID
		if _, err := r.db.ExecContext(ctx, memberQuery,
			m.ID, m.TeamID, m.Position, m.Name, m.Email, m.Gender, m.IsLead,
		); err != nil {
			return fmt.Errorf("failed to create member %q: %w", m.Name, err)
		}
	}

	return nil
}

// GetByID retrieves a team by ID
func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := r.db.Rebind(`SELECT ` + teamColumns + ` FROM teams t WHERE t.id = ?`)

	team := &models.Team{}
	if err := r.db.GetContext(ctx, team, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.TeamNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	teams := []models.Team{*team}
	if err := r.loadMembers(ctx, teams); err != nil {
		return nil, err
	}
	return &teams[0], nil
}

// GetByIDs retrieves the teams that exist among ids, ordered by name
func (r *teamRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+teamColumns+` FROM teams t WHERE t.id IN (?) ORDER BY t.name`, uuidStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to build team query: %w", err)
	}

	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	if err := r.loadMembers(ctx, teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// NameExists reports whether a team with this exact name is stored
func (r *teamRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM teams WHERE name = ?`)
	if err := r.db.GetContext(ctx, &count, query, name); err != nil {
		return false, fmt.Errorf("failed to check team name: %w", err)
	}
	return count > 0, nil
}

// Search finds teams whose name, member name or member email contains q,
// case-insensitively. An empty q lists every team.
func (r *teamRepository) Search(ctx context.Context, q string, limit int) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams t`
	var args []interface{}
	if q != "" {
		pattern := likePattern(q)
		query += ` WHERE LOWER(t.name) LIKE ? ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM members m
				WHERE m.team_id = t.id
				AND (LOWER(m.name) LIKE ? ESCAPE '\' OR LOWER(m.email) LIKE ? ESCAPE '\')
			)`
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY t.name LIMIT ?`
	args = append(args, limit)

	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
	}
	if err := r.loadMembers(ctx, teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Update writes the editable fields of a team
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	team.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE teams SET
			problem_statement = ?, track = ?, github_link = ?,
			presentation_link = ?, video_link = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		team.ProblemStatement, team.Track, team.GithubLink,
		team.PresentationLink, team.VideoLink, team.UpdatedAt, team.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.TeamNotFound(team.ID.String())
	}

	return nil
}

type judgeTeamRow struct {
	models.Team
	Scored bool `db:"has_scored"`
}

// ListByJudge returns the teams assigned to a judge with HasScored set
func (r *teamRepository) ListByJudge(ctx context.Context, judgeID string) ([]models.Team, error) {
	query := r.db.Rebind(`
		SELECT ` + teamColumns + `,
			EXISTS (
				SELECT 1 FROM scores s WHERE s.team_id = t.id AND s.judge_id = a.judge_id
			) AS has_scored
		FROM teams t
		JOIN judge_assignments a ON a.team_id = t.id
		WHERE a.judge_id = ?
		ORDER BY t.name
	`)

	var rows []judgeTeamRow
	if err := r.db.SelectContext(ctx, &rows, query, judgeID); err != nil {
		return nil, fmt.Errorf("failed to list judge teams: %w", err)
	}

	teams := make([]models.Team, len(rows))
	for i, row := range rows {
		scored := row.Scored
		teams[i] = row.Team
		teams[i].HasScored = &scored
	}
	if err := r.loadMembers(ctx, teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// loadMembers fills Members of every team in place
func (r *teamRepository) loadMembers(ctx context.Context, teams []models.Team) error {
	if len(teams) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID
	}

	query, args, err := sqlx.In(`
		SELECT id, team_id, position, name, email, gender, is_lead
		FROM members WHERE team_id IN (?)
		ORDER BY position
	`, uuidStrings(ids))
	if err != nil {
		return fmt.Errorf("failed to build member query: %w", err)
	}

	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	byTeam := make(map[uuid.UUID][]models.Member, len(teams))
	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m)
	}
	for i := range teams {
		teams[i].Members = byTeam[teams[i].ID]
		if teams[i].Members == nil {
			teams[i].Members = []models.Member{}
		}
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
