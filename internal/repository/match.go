package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/wingman_matching_system/internal/models"
	"github.com/shenikar/wingman_matching_system/internal/service"
)

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) service.MatchRepository {
	return &MatchRepository{
		db: db,
	}
}

// Create создает pending-матч. Конкурентный дубликат пары ловится частичным
// уникальным индексом и возвращается как ErrAlreadyPending.
func (r *MatchRepository) Create(ctx context.Context, match *models.WingmanMatch) error {
	query := `
		INSERT INTO wingman_matches (user1_id, user2_id, status)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		match.User1ID,
		match.User2ID,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return service.ErrAlreadyPending
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// GetByID возвращает матч по его UUID
func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WingmanMatch, error) {
	match := &models.WingmanMatch{}
	query := `
		SELECT id, user1_id, user2_id, status, created_at, updated_at
		FROM wingman_matches
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.User1ID,
		&match.User2ID,
		&match.Status,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}
	return match, nil
}

// UpdateStatusFromPending переводит матч из pending в новый статус.
// Возвращает false, если матч уже не pending - так проигрывает второй из
// параллельных ответов.
func (r *MatchRepository) UpdateStatusFromPending(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	query := `
		UPDATE wingman_matches SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2 AND status = 'pending';
	`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update match status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// HasPendingForUser проверяет, есть ли у пользователя pending-матч с любой стороны
func (r *MatchRepository) HasPendingForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wingman_matches
			WHERE (user1_id = $1 OR user2_id = $1) AND status = 'pending'
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending matches: %w", err)
	}
	return exists, nil
}

// PendingParticipants возвращает тех из userIDs, кто уже состоит
// в pending-матче с любой стороны
func (r *MatchRepository) PendingParticipants(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	query := `
		SELECT user1_id, user2_id
		FROM wingman_matches
		WHERE status = 'pending'
			AND (user1_id = ANY($1) OR user2_id = ANY($1));
	`
	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending participants: %w", err)
	}
	defer rows.Close()

	requested := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		requested[id] = struct{}{}
	}

	// Вторая сторона матча может не входить в userIDs, такие не возвращаются
	busy := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var user1, user2 uuid.UUID
		if err := rows.Scan(&user1, &user2); err != nil {
			return nil, fmt.Errorf("failed to scan pending participant row: %w", err)
		}
		if _, ok := requested[user1]; ok {
			busy[user1] = struct{}{}
		}
		if _, ok := requested[user2]; ok {
			busy[user2] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error pending participant iteration: %w", err)
	}
	return busy, nil
}

// ExcludedCounterparts возвращает пользователей, с которыми пара уже исключена:
// pending и accepted матчи любого возраста плюс любые матчи внутри окна недавности
func (r *MatchRepository) ExcludedCounterparts(ctx context.Context, userID uuid.UUID, since time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END
		FROM wingman_matches
		WHERE (user1_id = $1 OR user2_id = $1)
			AND (status IN ('pending', 'accepted') OR created_at >= $2);
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load excluded counterparts: %w", err)
	}
	defer rows.Close()

	counterparts := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan counterpart row: %w", err)
		}
		counterparts = append(counterparts, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error counterpart iteration: %w", err)
	}
	return counterparts, nil
}

// ListByUser возвращает матчи пользователя с пагинацией, новые первыми
func (r *MatchRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.WingmanMatch, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT id, user1_id, user2_id, status, created_at, updated_at
		FROM wingman_matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.WingmanMatch, 0)
	for rows.Next() {
		match := &models.WingmanMatch{}
		err := rows.Scan(
			&match.ID,
			&match.User1ID,
			&match.User2ID,
			&match.Status,
			&match.CreatedAt,
			&match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return matches, nil
}

// CountByStatusSince возвращает количество матчей по статусам начиная с отметки времени
func (r *MatchRepository) CountByStatusSince(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM wingman_matches
		WHERE created_at >= $1
		GROUP BY status;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error count iteration: %w", err)
	}
	return counts, nil
}
