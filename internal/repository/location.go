package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/wingman_matching_system/internal/geo"
	"github.com/shenikar/wingman_matching_system/internal/models"
	"github.com/shenikar/wingman_matching_system/internal/service"
)

type LocationRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewLocationRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.LocationRepository {
	return &LocationRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// GetProfile возвращает анкету пользователя
func (r *LocationRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	query := `
		SELECT user_id, bio, travel_radius_miles, experience_level, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1;
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Bio,
		&profile.TravelRadiusMiles,
		&profile.ExperienceLevel,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile создает или обновляет анкету пользователя
func (r *LocationRepository) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, bio, travel_radius_miles, experience_level)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			travel_radius_miles = EXCLUDED.travel_radius_miles,
			experience_level = EXCLUDED.experience_level,
			updated_at = NOW()
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.Bio,
		profile.TravelRadiusMiles,
		profile.ExperienceLevel,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetLocation возвращает геопозицию пользователя
func (r *LocationRepository) GetLocation(ctx context.Context, userID uuid.UUID) (*models.UserLocation, error) {
	loc := &models.UserLocation{}
	query := `
		SELECT user_id, latitude, longitude, COALESCE(city, ''), privacy_mode, updated_at
		FROM user_locations
		WHERE user_id = $1;
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&loc.UserID,
		&loc.Latitude,
		&loc.Longitude,
		&loc.City,
		&loc.PrivacyMode,
		&loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNoLocation
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}

// UpsertLocation создает или обновляет геопозицию пользователя
func (r *LocationRepository) UpsertLocation(ctx context.Context, loc *models.UserLocation) error {
	query := `
		INSERT INTO user_locations (user_id, latitude, longitude, city, privacy_mode)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (user_id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			city = EXCLUDED.city,
			privacy_mode = EXCLUDED.privacy_mode,
			updated_at = NOW()
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		loc.UserID,
		loc.Latitude,
		loc.Longitude,
		loc.City,
		loc.PrivacyMode,
	).Scan(&loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert location: %w", err)
	}
	return nil
}

// Запросы сканирования кандидатов режут выборку лимитом, порядок по user_id
// делает срез детерминированным
const findCandidatesInBoxQuery = `
	SELECT l.user_id, l.latitude, l.longitude, COALESCE(l.city, ''), l.privacy_mode,
		p.travel_radius_miles, p.experience_level
	FROM user_locations l
	JOIN user_profiles p ON p.user_id = l.user_id
	WHERE l.user_id <> $1
		AND l.privacy_mode = 'precise'
		AND l.latitude IS NOT NULL AND l.longitude IS NOT NULL
		AND l.latitude BETWEEN $2 AND $3
		AND l.longitude BETWEEN $4 AND $5
	ORDER BY l.user_id
	LIMIT $6;
`

const findCityOnlyCandidatesQuery = `
	SELECT l.user_id, l.latitude, l.longitude, COALESCE(l.city, ''), l.privacy_mode,
		p.travel_radius_miles, p.experience_level
	FROM user_locations l
	JOIN user_profiles p ON p.user_id = l.user_id
	WHERE l.user_id <> $1
		AND (l.privacy_mode = 'city_only' OR l.latitude IS NULL OR l.longitude IS NULL)
		AND COALESCE(l.city, '') <> ''
	ORDER BY l.user_id
	LIMIT $2;
`

// FindCandidatesInBox возвращает кандидатов с точными координатами внутри рамки.
// Рамка грубая, точную отсечку по расстоянию делает сервис.
func (r *LocationRepository) FindCandidatesInBox(ctx context.Context, userID uuid.UUID, box geo.BoundingBox, limit int) ([]*models.MatchCandidate, error) {
	rows, err := r.db.Query(ctx, findCandidatesInBoxQuery, userID, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates in box: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// FindCityOnlyCandidates возвращает кандидатов без точных координат,
// их позиция определяется центроидом города
func (r *LocationRepository) FindCityOnlyCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MatchCandidate, error) {
	rows, err := r.db.Query(ctx, findCityOnlyCandidatesQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find city-only candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows pgx.Rows) ([]*models.MatchCandidate, error) {
	candidates := make([]*models.MatchCandidate, 0)
	for rows.Next() {
		cand := &models.MatchCandidate{}
		err := rows.Scan(
			&cand.UserID,
			&cand.Latitude,
			&cand.Longitude,
			&cand.City,
			&cand.PrivacyMode,
			&cand.TravelRadiusMiles,
			&cand.ExperienceLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		candidates = append(candidates, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error candidate iteration: %w", err)
	}
	return candidates, nil
}

// GetLocationFromCache пытается получить геопозицию из Redis
func (r *LocationRepository) GetLocationFromCache(ctx context.Context, userID uuid.UUID) (*models.UserLocation, error) {
	key := fmt.Sprintf("location:%s", userID.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location from cache: %w", err)
	}

	loc := &models.UserLocation{}
	if err := json.Unmarshal(val, loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location from cache: %w", err)
	}
	return loc, nil
}

// SetLocationCache сохраняет геопозицию в Redis
func (r *LocationRepository) SetLocationCache(ctx context.Context, loc *models.UserLocation) error {
	key := fmt.Sprintf("location:%s", loc.UserID.String())
	val, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set location in cache: %w", err)
	}
	return nil
}

// InvalidateLocationCache удаляет геопозицию из Redis кэша
func (r *LocationRepository) InvalidateLocationCache(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("location:%s", userID.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate location cache: %w", err)
	}
	return nil
}
