package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"league-draft-bot/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SanctionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSanctionRepository(db *sql.DB, logger zerolog.Logger) *SanctionRepository {
	return &SanctionRepository{db: db, logger: logger}
}

// Append records a sanction and bumps the matching counter in one
// transaction. History is append-only; counters only ever grow. A FINE
// leaves both counters untouched.
func (r *SanctionRepository) Append(ctx context.Context, s *domain.Sanction) error {
	if s.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate sanction id: %w", err)
		}
		s.ID = id
	}
	if s.IssuedAt.IsZero() {
		s.IssuedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var counterUpdate string
	switch s.Type {
	case domain.SanctionWarning:
		counterUpdate = `UPDATE players SET warnings = warnings + 1, updated_at = ? WHERE discord_id = ?`
	case domain.SanctionSuspension:
		counterUpdate = `UPDATE players SET suspensions = suspensions + 1, updated_at = ? WHERE discord_id = ?`
	}
	if counterUpdate != "" {
		res, err := tx.ExecContext(ctx, counterUpdate, time.Now(), s.DiscordID)
		if err != nil {
			return fmt.Errorf("failed to bump sanction counter: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: discord id %s", domain.ErrNotFound, s.DiscordID)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sanctions (id, discord_id, type, reason, issued_by, issued_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.DiscordID, string(s.Type), s.Reason, s.IssuedBy, s.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sanction: %w", err)
	}

	return tx.Commit()
}

// ListByDiscordID returns the sanction history, oldest first.
func (r *SanctionRepository) ListByDiscordID(ctx context.Context, discordID string) ([]domain.Sanction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, discord_id, type, reason, issued_by, issued_at
		FROM sanctions WHERE discord_id = ? ORDER BY issued_at ASC`, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sanctions for %s: %w", discordID, err)
	}
	defer rows.Close()

	var sanctions []domain.Sanction
	for rows.Next() {
		var s domain.Sanction
		var sanctionType string
		if err := rows.Scan(&s.ID, &s.DiscordID, &sanctionType, &s.Reason, &s.IssuedBy, &s.IssuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sanction: %w", err)
		}
		s.Type = domain.SanctionType(sanctionType)
		sanctions = append(sanctions, s)
	}
	return sanctions, rows.Err()
}
