package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/metrics"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
	"github.com/innovatefest/hackathon-api/internal/roster"
)

// rosterService implements RosterService
type rosterService struct {
	repos     *repository.Repositories
	validator *roster.Validator
	maxRows   int
	logger    logger.Logger
}

func newRosterService(repos *repository.Repositories, validator *roster.Validator, maxRows int, log logger.Logger) RosterService {
	return &rosterService{
		repos:     repos,
		validator: validator,
		maxRows:   maxRows,
		logger:    log,
	}
}

// Import parses the file and stores every valid team, each in its own
// transaction. Invalid rows are reported, never returned as an error; an
// error means the file was rejected as a whole and nothing was stored.
func (s *rosterService) Import(ctx context.Context, data []byte, filename string) (*models.ImportReport, error) {
	format, err := roster.FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	rows, err := roster.Parse(data, format, s.maxRows)
	if err != nil {
		s.logger.Warn("Rejected roster file", "filename", filename, "error", err.Error())
		return nil, err
	}

	report := models.NewImportReport()
	batch := s.validator.NewBatch(s.repos.Team.NameExists)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.ServiceError("import cancelled", err).WithOperation("Import")
		}

		team, err := batch.Check(ctx, row)
		if err == nil {
			err = s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
				return tx.Team.Create(ctx, team)
			})
		}
		if err != nil {
			report.Errors = append(report.Errors, s.describe(row, err))
			metrics.RosterRowsTotal.WithLabelValues(strings.ToLower(apperrors.Code(err))).Inc()
			continue
		}

		batch.Accept(team.Name)
		report.ImportedCount++
		report.ImportedTeams = append(report.ImportedTeams, team.Name)
		metrics.RosterRowsTotal.WithLabelValues("imported").Inc()
	}

	s.logger.Info("Roster imported",
		"filename", filename,
		"rows", len(rows),
		"imported", report.ImportedCount,
		"rejected", len(report.Errors),
	)
	return report, nil
}

// describe renders a row failure as "Row N (team): reason". Storage
// failures are logged and reported without their internals.
func (s *rosterService) describe(row roster.Row, err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return fmt.Sprintf("%s: %s", row.Label(), appErr.Message)
	}

	s.logger.Error("Failed to import roster row", err, "row", row.Number, "team", row.TeamName)
	return fmt.Sprintf("%s: team could not be saved, please retry", row.Label())
}
