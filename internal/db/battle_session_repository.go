package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/monbattle/internal/model"
)

// BattleSessionRepository stores battle sessions in PostgreSQL.
type BattleSessionRepository struct {
	pool *pgxpool.Pool
}

// NewBattleSessionRepository creates a repository on pool.
func NewBattleSessionRepository(pool *pgxpool.Pool) *BattleSessionRepository {
	return &BattleSessionRepository{pool: pool}
}

const sessionColumns = `id, opponent_id, combatant_id, status, won, damage_dealt, damage_taken,
	final_hp, experience, coins, created_at, completed_at`

// Create inserts an open session.
func (r *BattleSessionRepository) Create(ctx context.Context, opponentID, combatantID string) (model.BattleSession, error) {
	id := uuid.New()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO battle_sessions (id, opponent_id, combatant_id, status)
		 VALUES ($1, $2, $3, 'open')
		 RETURNING `+sessionColumns,
		id, opponentID, combatantID,
	)
	bs, err := scanSession(row)
	if err != nil {
		return model.BattleSession{}, fmt.Errorf("creating battle session: %w", err)
	}
	return bs, nil
}

// Complete closes an open session.
// Returns model.ErrSessionNotFound or model.ErrSessionClosed.
func (r *BattleSessionRepository) Complete(ctx context.Context, id string, res model.BattleResult) (model.BattleSession, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return model.BattleSession{}, model.ErrSessionNotFound
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE battle_sessions
		 SET status = 'completed', won = $2, damage_dealt = $3, damage_taken = $4,
		     final_hp = $5, experience = $6, coins = $7, completed_at = NOW()
		 WHERE id = $1 AND status = 'open'
		 RETURNING `+sessionColumns,
		sid, res.Won, res.DamageDealt, res.DamageTaken, res.FinalHP, res.Experience, res.Coins,
	)
	bs, err := scanSession(row)
	if err == nil {
		return bs, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.BattleSession{}, fmt.Errorf("completing battle session %s: %w", id, err)
	}

	// UPDATE не затронул строк: сессии нет или она уже закрыта
	existing, err := r.Get(ctx, id)
	if err != nil {
		return model.BattleSession{}, err
	}
	return existing, model.ErrSessionClosed
}

// Get loads a session by id.
func (r *BattleSessionRepository) Get(ctx context.Context, id string) (model.BattleSession, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return model.BattleSession{}, model.ErrSessionNotFound
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM battle_sessions WHERE id = $1`, sid)
	bs, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BattleSession{}, model.ErrSessionNotFound
	}
	if err != nil {
		return model.BattleSession{}, fmt.Errorf("loading battle session %s: %w", id, err)
	}
	return bs, nil
}

// CountByCombatant returns how many sessions a combatant has completed.
func (r *BattleSessionRepository) CountByCombatant(ctx context.Context, combatantID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM battle_sessions WHERE combatant_id = $1 AND status = 'completed'`,
		combatantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting sessions of %q: %w", combatantID, err)
	}
	return n, nil
}

func scanSession(row pgx.Row) (model.BattleSession, error) {
	var (
		bs          model.BattleSession
		id          uuid.UUID
		status      string
		completedAt *time.Time
	)
	err := row.Scan(
		&id, &bs.OpponentID, &bs.CombatantID, &status,
		&bs.Result.Won, &bs.Result.DamageDealt, &bs.Result.DamageTaken,
		&bs.Result.FinalHP, &bs.Result.Experience, &bs.Result.Coins,
		&bs.CreatedAt, &completedAt,
	)
	if err != nil {
		return model.BattleSession{}, err
	}
	bs.ID = id.String()
	bs.Status = model.SessionStatus(status)
	if completedAt != nil {
		bs.CompletedAt = *completedAt
	}
	return bs, nil
}
