package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// transactionManager implements TransactionManager
type transactionManager struct {
	db *sqlx.DB
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *sqlx.DB) TransactionManager {
	return &transactionManager{db: db}
}

// WithTransaction executes a function within a database transaction.
// Repositories handed to fn must be the only ones used until it returns.
func (tm *transactionManager) WithTransaction(ctx context.Context, fn func(repos *Repositories) error) error {
	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Create repositories with the transaction
	repos := newRepositories(tx, tm)

	if err := fn(repos); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			return fmt.Errorf("transaction failed: %w, rollback failed: %v", err, rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// dbExecutor is an interface that both *sqlx.DB and *sqlx.Tx implement
type dbExecutor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func newRepositories(db dbExecutor, tm TransactionManager) *Repositories {
	return &Repositories{
		Team:        NewTeamRepository(db),
		Score:       NewScoreRepository(db),
		Assignment:  NewAssignmentRepository(db),
		Certificate: NewCertificateRepository(db),
		User:        NewUserRepository(db),
		Stats:       NewStatsRepository(db),
		Tx:          tm,
	}
}

// NewRepositories creates a new repository collection
func NewRepositories(db *sqlx.DB) *Repositories {
	return newRepositories(db, NewTransactionManager(db))
}
