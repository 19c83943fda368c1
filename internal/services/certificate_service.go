package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/metrics"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
)

// certificateService implements CertificateService
type certificateService struct {
	repos     *repository.Repositories
	eventName string
	logger    logger.Logger

	// newID draws certificate ids; uuid.NewRandom reads crypto/rand
	newID func() (uuid.UUID, error)
	now   func() time.Time
}

func newCertificateService(repos *repository.Repositories, eventName string, log logger.Logger) *certificateService {
	return &certificateService{
		repos:     repos,
		eventName: eventName,
		logger:    log,
		newID:     uuid.NewRandom,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate issues one certificate per member of every selected team. The
// batch is written in one transaction: either every certificate exists
// afterwards or none does.
func (s *certificateService) Generate(ctx context.Context, teamIDs []string, category string) ([]models.Certificate, error) {
	if len(teamIDs) == 0 {
		return nil, apperrors.EmptySelection()
	}
	canonical, ok := models.CanonicalCategory(category)
	if !ok {
		return nil, apperrors.UnknownCategory(category)
	}

	teams, err := resolveTeams(ctx, s.repos.Team, teamIDs)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	var certs []models.Certificate
	for _, team := range teams {
		for _, m := range team.Members {
			id, err := s.newID()
			if err != nil {
				return nil, apperrors.InternalError("failed to generate certificate id", err)
			}
			certs = append(certs, models.Certificate{
				ID:              id,
				MemberID:        m.ID,
				TeamID:          team.ID,
				ParticipantName: m.Name,
				TeamName:        team.Name,
				Category:        canonical,
				EventName:       s.eventName,
				IssuedAt:        issuedAt,
			})
		}
	}

	err = s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		for i := range certs {
			if err := tx.Certificate.Create(ctx, &certs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrCertificateCollision) {
			s.logger.Error("Certificate id collision, batch discarded", err, "teams", len(teams))
			return nil, err
		}
		return nil, apperrors.DatabaseError("failed to store certificates", err).WithOperation("Generate")
	}

	metrics.CertificatesIssuedTotal.WithLabelValues(canonical).Add(float64(len(certs)))
	s.logger.Info("Certificates issued", "category", canonical, "teams", len(teams), "certificates", len(certs))
	if certs == nil {
		certs = []models.Certificate{}
	}
	return certs, nil
}

// Verify looks up a certificate by its id and returns the public view
func (s *certificateService) Verify(ctx context.Context, certificateID string) (*models.CertificateView, error) {
	id, err := uuid.Parse(strings.TrimSpace(certificateID))
	if err != nil {
		return nil, apperrors.CertificateNotFound(certificateID)
	}

	cert, err := s.repos.Certificate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCertificateNotFound) {
			return nil, err
		}
		return nil, apperrors.DatabaseError("failed to verify certificate", err).WithOperation("Verify")
	}

	view := cert.View()
	return &view, nil
}
