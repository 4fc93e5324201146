package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/wingman_matching_system/internal/config"
	"github.com/shenikar/wingman_matching_system/internal/geo"
	"github.com/shenikar/wingman_matching_system/internal/models"
	"github.com/shenikar/wingman_matching_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Действия при ответе на предложение матча
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// Пределы радиуса поиска в милях
const (
	MinRadiusMiles = 1.0
	MaxRadiusMiles = 50.0
)

// Анкета не должна содержать контактных данных, обмен контактами происходит после матча
var (
	phonePattern = regexp.MustCompile(`\+?\d{0,2}[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// MatchRepository определяет контракт для работы с бд матчей
type MatchRepository interface {
	Create(ctx context.Context, match *models.WingmanMatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WingmanMatch, error)
	UpdateStatusFromPending(ctx context.Context, id uuid.UUID, status string) (bool, error)
	HasPendingForUser(ctx context.Context, userID uuid.UUID) (bool, error)
	PendingParticipants(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	ExcludedCounterparts(ctx context.Context, userID uuid.UUID, since time.Time) ([]uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.WingmanMatch, error)
	CountByStatusSince(ctx context.Context, since time.Time) (map[string]int, error)
}

// LocationRepository определяет контракт для работы с бд анкет и геопозиций
type LocationRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) error
	GetLocation(ctx context.Context, userID uuid.UUID) (*models.UserLocation, error)
	UpsertLocation(ctx context.Context, loc *models.UserLocation) error
	FindCandidatesInBox(ctx context.Context, userID uuid.UUID, box geo.BoundingBox, limit int) ([]*models.MatchCandidate, error)
	FindCityOnlyCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MatchCandidate, error)
	GetLocationFromCache(ctx context.Context, userID uuid.UUID) (*models.UserLocation, error)
	SetLocationCache(ctx context.Context, loc *models.UserLocation) error
	InvalidateLocationCache(ctx context.Context, userID uuid.UUID) error
}

// Geocoder разрешает название города в координаты центроида
type Geocoder interface {
	Resolve(ctx context.Context, city string) (geo.Point, error)
}

// MatchingService определяет контракт для бизнес-логики подбора напарников
type MatchingService interface {
	FindCandidates(ctx context.Context, userID uuid.UUID, radiusMiles float64) ([]*models.CandidateResult, error)
	ProposeMatch(ctx context.Context, userID uuid.UUID) (*models.MatchProposal, error)
	Respond(ctx context.Context, matchID, userID uuid.UUID, action string) (string, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile, loc *models.UserLocation) error
	GetUserMatches(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.WingmanMatch, error)
	GetMatchStats(ctx context.Context) (*models.MatchStats, error)
}

type matchingService struct {
	matches   MatchRepository
	locations LocationRepository
	geocoder  Geocoder
	publisher webhook.EventPublisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewMatchingService(matches MatchRepository, locations LocationRepository, geocoder Geocoder, publisher webhook.EventPublisher, logger *logrus.Logger, cfg *config.Config) MatchingService {
	return &matchingService{
		matches:   matches,
		locations: locations,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// FindCandidates подбирает кандидатов в напарники в пределах взаимного радиуса.
// radiusMiles = 0 означает радиус из анкеты пользователя.
func (s *matchingService) FindCandidates(ctx context.Context, userID uuid.UUID, radiusMiles float64) ([]*models.CandidateResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "matching",
		"method":  "FindCandidates",
		"user_id": userID,
	})
	log.Info("Searching buddy candidates")

	profile, err := s.locations.GetProfile(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to load requester profile")
		return nil, fmt.Errorf("service: could not load profile: %w", err)
	}

	radius := radiusMiles
	if radius == 0 {
		radius = float64(profile.TravelRadiusMiles)
	}
	if radius < MinRadiusMiles || radius > MaxRadiusMiles {
		return nil, ErrRadiusOutOfRange
	}

	loc, err := s.getLocation(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to load requester location")
		return nil, fmt.Errorf("service: could not load location: %w", err)
	}

	origin, err := s.resolvePoint(ctx, loc.PrivacyMode, loc.City, loc.Latitude, loc.Longitude)
	if err != nil {
		log.WithError(err).Warn("Requester location is not resolvable")
		return nil, fmt.Errorf("service: could not resolve requester location: %w", err)
	}

	box := geo.BoundingBoxFor(origin, radius)
	nearby, err := s.locations.FindCandidatesInBox(ctx, userID, box, s.cfg.CandidateScanLimit)
	if err != nil {
		log.WithError(err).Error("Failed to scan nearby candidates")
		return nil, fmt.Errorf("service: could not scan nearby candidates: %w", err)
	}

	cityOnly, err := s.locations.FindCityOnlyCandidates(ctx, userID, s.cfg.CandidateScanLimit)
	if err != nil {
		log.WithError(err).Error("Failed to scan city-only candidates")
		return nil, fmt.Errorf("service: could not scan city-only candidates: %w", err)
	}

	since := time.Now().Add(-s.cfg.RecencyWindow)
	excludedIDs, err := s.matches.ExcludedCounterparts(ctx, userID, since)
	if err != nil {
		log.WithError(err).Error("Failed to load match exclusions")
		return nil, fmt.Errorf("service: could not load match exclusions: %w", err)
	}
	excluded := make(map[uuid.UUID]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	requesterRank := models.ExperienceRank(profile.ExperienceLevel)
	results := make([]*models.CandidateResult, 0)

	for _, cand := range append(nearby, cityOnly...) {
		if _, ok := excluded[cand.UserID]; ok {
			continue
		}

		candRank := models.ExperienceRank(cand.ExperienceLevel)
		if candRank < 0 || absInt(requesterRank-candRank) > s.cfg.ExperienceMaxGap {
			continue
		}

		point, err := s.resolvePoint(ctx, cand.PrivacyMode, cand.City, cand.Latitude, cand.Longitude)
		if err != nil {
			log.WithError(err).WithField("candidate_id", cand.UserID).Warn("Skipping candidate without resolvable location")
			continue
		}

		distance, err := geo.DistanceMiles(origin, point)
		if err != nil {
			log.WithError(err).WithField("candidate_id", cand.UserID).Warn("Skipping candidate with invalid coordinates")
			continue
		}

		// Взаимный радиус: кандидат тоже должен дотягиваться до запросившего
		if distance > radius || distance > float64(cand.TravelRadiusMiles) {
			continue
		}

		hint := models.CompatibilityAdjacentLevel
		if candRank == requesterRank {
			hint = models.CompatibilitySameLevel
		}

		results = append(results, &models.CandidateResult{
			UserID:            cand.UserID,
			DistanceMiles:     distance,
			CompatibilityHint: hint,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceMiles != results[j].DistanceMiles {
			return results[i].DistanceMiles < results[j].DistanceMiles
		}
		return results[i].UserID.String() < results[j].UserID.String()
	})

	log.WithField("count", len(results)).Info("Candidate search completed")
	return results, nil
}

// ProposeMatch создает pending-матч с ближайшим подходящим кандидатом
func (s *matchingService) ProposeMatch(ctx context.Context, userID uuid.UUID) (*models.MatchProposal, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "matching",
		"method":  "ProposeMatch",
		"user_id": userID,
	})
	log.Info("Proposing automatic match")

	pending, err := s.matches.HasPendingForUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to check pending matches")
		return nil, fmt.Errorf("service: could not check pending matches: %w", err)
	}
	if pending {
		log.Info("User already has a pending match")
		return nil, ErrAlreadyPending
	}

	candidates, err := s.FindCandidates(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		log.Info("No suitable candidates found")
		return &models.MatchProposal{Created: false}, nil
	}

	// Троттлинг действует на обе стороны пары: кандидат, уже состоящий
	// в pending-матче с кем угодно, не получает второе предложение
	ids := make([]uuid.UUID, len(candidates))
	for i, cand := range candidates {
		ids[i] = cand.UserID
	}
	busy, err := s.matches.PendingParticipants(ctx, ids)
	if err != nil {
		log.WithError(err).Error("Failed to check candidate pending matches")
		return nil, fmt.Errorf("service: could not check candidate pending matches: %w", err)
	}

	var top *models.CandidateResult
	for _, cand := range candidates {
		if _, ok := busy[cand.UserID]; !ok {
			top = cand
			break
		}
	}
	if top == nil {
		log.Info("All candidates already have a pending match")
		return &models.MatchProposal{Created: false}, nil
	}

	match := &models.WingmanMatch{
		User1ID: userID,
		User2ID: top.UserID,
		Status:  models.MatchStatusPending,
	}

	if err := s.matches.Create(ctx, match); err != nil {
		// Параллельное предложение для той же пары проигрывает на уникальном индексе
		if errors.Is(err, ErrAlreadyPending) {
			log.Info("Concurrent proposal already created a pending match")
			return nil, ErrAlreadyPending
		}
		log.WithError(err).Error("Failed to create match in repository")
		return nil, fmt.Errorf("service: could not create match: %w", err)
	}

	s.publishEvent(ctx, log, webhook.EventMatchProposed, match)

	log.WithField("match_id", match.ID).Info("Match proposed successfully")
	return &models.MatchProposal{Created: true, Match: match, Candidate: top}, nil
}

// Respond фиксирует ответ участника на предложение матча
func (s *matchingService) Respond(ctx context.Context, matchID, userID uuid.UUID, action string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "matching",
		"method":   "Respond",
		"match_id": matchID,
		"user_id":  userID,
		"action":   action,
	})
	log.Info("Responding to match proposal")

	var newStatus string
	switch action {
	case ActionAccept:
		newStatus = models.MatchStatusAccepted
	case ActionDecline:
		newStatus = models.MatchStatusDeclined
	default:
		return "", ErrInvalidAction
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		log.WithError(err).Warn("Failed to load match")
		return "", fmt.Errorf("service: could not load match: %w", err)
	}

	if !match.HasParticipant(userID) {
		log.Warn("User is not a participant of the match")
		return "", ErrNotParticipant
	}

	if match.Status != models.MatchStatusPending {
		return "", ErrInvalidTransition
	}

	updated, err := s.matches.UpdateStatusFromPending(ctx, matchID, newStatus)
	if err != nil {
		log.WithError(err).Error("Failed to update match status")
		return "", fmt.Errorf("service: could not update match status: %w", err)
	}
	if !updated {
		// Статус сменился между чтением и обновлением
		return "", ErrInvalidTransition
	}

	match.Status = newStatus
	if newStatus == models.MatchStatusAccepted {
		s.publishEvent(ctx, log, webhook.EventMatchAccepted, match)
	}

	log.WithField("match_status", newStatus).Info("Match response recorded")
	return newStatus, nil
}

// UpsertProfile создает или обновляет анкету вместе с геопозицией
func (s *matchingService) UpsertProfile(ctx context.Context, profile *models.UserProfile, loc *models.UserLocation) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "matching",
		"method":  "UpsertProfile",
		"user_id": profile.UserID,
	})
	log.Info("Upserting user profile")

	if phonePattern.MatchString(profile.Bio) || emailPattern.MatchString(profile.Bio) {
		log.Warn("Bio rejected: contains contact information")
		return ErrBioContainsPII
	}

	hasLat := loc.Latitude != nil
	hasLon := loc.Longitude != nil
	if hasLat != hasLon {
		return geo.ErrInvalidCoordinates
	}
	if hasLat {
		point := geo.Point{Latitude: *loc.Latitude, Longitude: *loc.Longitude}
		if !point.Valid() {
			return geo.ErrInvalidCoordinates
		}
	} else if loc.City == "" {
		return ErrLocationRequired
	}

	if err := s.locations.UpsertProfile(ctx, profile); err != nil {
		log.WithError(err).Error("Failed to upsert profile in repository")
		return fmt.Errorf("service: could not upsert profile: %w", err)
	}

	loc.UserID = profile.UserID
	if err := s.locations.UpsertLocation(ctx, loc); err != nil {
		log.WithError(err).Error("Failed to upsert location in repository")
		return fmt.Errorf("service: could not upsert location: %w", err)
	}

	if err := s.locations.InvalidateLocationCache(ctx, profile.UserID); err != nil {
		log.WithError(err).Warn("Failed to invalidate location cache")
	}

	log.Info("Profile upserted successfully")
	return nil
}

// GetUserMatches возвращает матчи пользователя с пагинацией
func (s *matchingService) GetUserMatches(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.WingmanMatch, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "matching",
		"method":    "GetUserMatches",
		"user_id":   userID,
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing user matches")

	matches, err := s.matches.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list matches from repository")
		return nil, fmt.Errorf("service: could not list matches: %w", err)
	}

	log.WithField("count", len(matches)).Info("Matches listed successfully")
	return matches, nil
}

// GetMatchStats возвращает счетчики матчей за окно наблюдения
func (s *matchingService) GetMatchStats(ctx context.Context) (*models.MatchStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "matching",
		"method":  "GetMatchStats",
	})
	log.Info("Collecting match stats")

	since := time.Now().Add(-time.Duration(s.cfg.StatsTimeWindowMinutes) * time.Minute)
	counts, err := s.matches.CountByStatusSince(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to get match stats from repository")
		return nil, fmt.Errorf("service: could not get match stats: %w", err)
	}

	stats := &models.MatchStats{
		Pending:  counts[models.MatchStatusPending],
		Accepted: counts[models.MatchStatusAccepted],
		Declined: counts[models.MatchStatusDeclined],
	}
	stats.Total = stats.Pending + stats.Accepted + stats.Declined

	return stats, nil
}

// publishEvent ставит событие матча в очередь вебхуков, сбой публикации не прерывает операцию
func (s *matchingService) publishEvent(ctx context.Context, log *logrus.Entry, eventType string, match *models.WingmanMatch) {
	event := webhook.MatchEvent{
		Type:      eventType,
		MatchID:   match.ID,
		User1ID:   match.User1ID,
		User2ID:   match.User2ID,
		Status:    match.Status,
		Timestamp: time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish match event")
	}
}

// getLocation читает геопозицию через кеш (cache-aside)
func (s *matchingService) getLocation(ctx context.Context, userID uuid.UUID) (*models.UserLocation, error) {
	cached, err := s.locations.GetLocationFromCache(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read location cache")
	}
	if cached != nil {
		return cached, nil
	}

	loc, err := s.locations.GetLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.locations.SetLocationCache(ctx, loc); err != nil {
		s.logger.WithError(err).Warn("Failed to cache location")
	}
	return loc, nil
}

// resolvePoint возвращает точку пользователя: точные координаты или центроид города
func (s *matchingService) resolvePoint(ctx context.Context, privacyMode, city string, lat, lon *float64) (geo.Point, error) {
	if privacyMode == models.PrivacyPrecise && lat != nil && lon != nil {
		return geo.Point{Latitude: *lat, Longitude: *lon}, nil
	}

	if city == "" {
		return geo.Point{}, ErrNoLocation
	}

	point, err := s.geocoder.Resolve(ctx, city)
	if err != nil {
		s.logger.WithError(err).WithField("city", city).Warn("Failed to geocode city")
		return geo.Point{}, fmt.Errorf("city %q is not resolvable: %w", city, ErrNoLocation)
	}
	return point, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
