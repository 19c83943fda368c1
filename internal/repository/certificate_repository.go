package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

// certificateRepository implements CertificateRepository
type certificateRepository struct {
	db dbExecutor
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db dbExecutor) CertificateRepository {
	return &certificateRepository{db: db}
}

// Create inserts a certificate. An existing id fails with
// CertificateCollision; the caller decides whether the batch survives.
func (r *certificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	query := r.db.Rebind(`
		INSERT INTO certificates (id, member_id, team_id, participant_name,
			team_name, category, event_name, issued_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		cert.ID, cert.MemberID, cert.TeamID, cert.ParticipantName,
		cert.TeamName, cert.Category, cert.EventName, cert.IssuedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.CertificateCollision(err)
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

// GetByID retrieves a certificate by its verification id
func (r *certificateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	query := r.db.Rebind(`
		SELECT id, member_id, team_id, participant_name, team_name,
			category, event_name, issued_at
		FROM certificates WHERE id = ?
	`)

	cert := &models.Certificate{}
	if err := r.db.GetContext(ctx, cert, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.CertificateNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	return cert, nil
}
