package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/wingman_matching_system/internal/config"
	"github.com/shenikar/wingman_matching_system/internal/geo"
	"github.com/shenikar/wingman_matching_system/internal/models"
	"github.com/shenikar/wingman_matching_system/internal/service/mocks"
	"github.com/shenikar/wingman_matching_system/internal/webhook"
	webhook_mocks "github.com/shenikar/wingman_matching_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Фикстуры залива Сан-Франциско: от центра SF до Окленда примерно 8.35 мили
var (
	sanFrancisco = geo.Point{Latitude: 37.7749, Longitude: -122.4194}
	oakland      = geo.Point{Latitude: 37.8044, Longitude: -122.2711}
	missionSF    = geo.Point{Latitude: 37.7793, Longitude: -122.4193} // ~0.3 мили от центра SF
)

// newTestMatchingService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestMatchingService(t *testing.T) (*matchingService, *mocks.MockMatchRepository, *mocks.MockLocationRepository, *mocks.MockGeocoder, *webhook_mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	matchMock := mocks.NewMockMatchRepository(ctrl)
	locationMock := mocks.NewMockLocationRepository(ctrl)
	geocoderMock := mocks.NewMockGeocoder(ctrl)
	publisherMock := webhook_mocks.NewMockEventPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		RecencyWindow:          168 * time.Hour,
		ExperienceMaxGap:       1,
		CandidateScanLimit:     500,
		StatsTimeWindowMinutes: 60,
	}

	service := NewMatchingService(matchMock, locationMock, geocoderMock, publisherMock, logger, cfg)
	return service.(*matchingService), matchMock, locationMock, geocoderMock, publisherMock
}

func floatPtr(v float64) *float64 { return &v }

// requesterProfile - анкета запросившего пользователя
func requesterProfile(userID uuid.UUID, radius int, level string) *models.UserProfile {
	return &models.UserProfile{
		UserID:            userID,
		Bio:               "Хочу напарника для выходов в городские места",
		TravelRadiusMiles: radius,
		ExperienceLevel:   level,
	}
}

// preciseLocation - геопозиция с точными координатами
func preciseLocation(userID uuid.UUID, p geo.Point) *models.UserLocation {
	return &models.UserLocation{
		UserID:      userID,
		Latitude:    floatPtr(p.Latitude),
		Longitude:   floatPtr(p.Longitude),
		PrivacyMode: models.PrivacyPrecise,
	}
}

// preciseCandidate - кандидат с точными координатами
func preciseCandidate(id uuid.UUID, p geo.Point, radius int, level string) *models.MatchCandidate {
	return &models.MatchCandidate{
		UserID:            id,
		Latitude:          floatPtr(p.Latitude),
		Longitude:         floatPtr(p.Longitude),
		PrivacyMode:       models.PrivacyPrecise,
		TravelRadiusMiles: radius,
		ExperienceLevel:   level,
	}
}

// cityCandidate - кандидат, видимый только на уровне города
func cityCandidate(id uuid.UUID, city string, radius int, level string) *models.MatchCandidate {
	return &models.MatchCandidate{
		UserID:            id,
		City:              city,
		PrivacyMode:       models.PrivacyCityOnly,
		TravelRadiusMiles: radius,
		ExperienceLevel:   level,
	}
}

// expectRequesterLookup - ожидания загрузки анкеты и геопозиции запросившего (промах кеша)
func expectRequesterLookup(ctx context.Context, locationMock *mocks.MockLocationRepository, profile *models.UserProfile, loc *models.UserLocation) {
	locationMock.EXPECT().GetProfile(ctx, profile.UserID).Return(profile, nil).Times(1)
	locationMock.EXPECT().GetLocationFromCache(ctx, profile.UserID).Return(nil, nil).Times(1)
	locationMock.EXPECT().GetLocation(ctx, profile.UserID).Return(loc, nil).Times(1)
	locationMock.EXPECT().SetLocationCache(ctx, loc).Return(nil).Times(1)
}

func TestFindCandidates_OrdersByDistance(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	nearID := uuid.New()
	farID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	near := preciseCandidate(nearID, missionSF, 10, models.ExperienceIntermediate)
	far := preciseCandidate(farID, oakland, 25, models.ExperienceBeginner)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	// Репозиторий отдает кандидатов в произвольном порядке, сортирует сервис
	locationMock.EXPECT().
		FindCandidatesInBox(ctx, userID, gomock.Any(), 500).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, box geo.BoundingBox, limit int) ([]*models.MatchCandidate, error) {
			// Рамка префильтра должна накрывать точку запросившего
			assert.Less(t, box.MinLat, sanFrancisco.Latitude)
			assert.Greater(t, box.MaxLat, sanFrancisco.Latitude)
			assert.Less(t, box.MinLon, sanFrancisco.Longitude)
			assert.Greater(t, box.MaxLon, sanFrancisco.Longitude)
			return []*models.MatchCandidate{far, near}, nil
		}).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, nearID, results[0].UserID)
	assert.InDelta(t, 0.3, results[0].DistanceMiles, 0.05)
	assert.Equal(t, models.CompatibilitySameLevel, results[0].CompatibilityHint)
	assert.Equal(t, farID, results[1].UserID)
	assert.InDelta(t, 8.35, results[1].DistanceMiles, 0.1)
	assert.Equal(t, models.CompatibilityAdjacentLevel, results[1].CompatibilityHint)
}

func TestFindCandidates_TieBreaksByUserID(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	firstID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	secondID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	// Оба кандидата на одинаковом расстоянии
	candA := preciseCandidate(secondID, oakland, 25, models.ExperienceIntermediate)
	candB := preciseCandidate(firstID, oakland, 25, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{candA, candB}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, firstID, results[0].UserID)
	assert.Equal(t, secondID, results[1].UserID)
}

func TestFindCandidates_MutualRadiusFilter(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	reachableID := uuid.New()
	homebodyID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	// Оба в пределах радиуса запросившего, но радиус второго не дотягивается обратно
	reachable := preciseCandidate(reachableID, oakland, 25, models.ExperienceIntermediate)
	homebody := preciseCandidate(homebodyID, oakland, 5, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{reachable, homebody}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, reachableID, results[0].UserID)
}

func TestFindCandidates_SkipsNonAdjacentExperience(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	adjacentID := uuid.New()
	tooFarID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceBeginner)
	loc := preciseLocation(userID, sanFrancisco)
	adjacent := preciseCandidate(adjacentID, oakland, 25, models.ExperienceIntermediate)
	// Разрыв beginner -> advanced больше допустимого
	tooFar := preciseCandidate(tooFarID, oakland, 25, models.ExperienceAdvanced)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{adjacent, tooFar}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, adjacentID, results[0].UserID)
	assert.Equal(t, models.CompatibilityAdjacentLevel, results[0].CompatibilityHint)
}

func TestFindCandidates_SkipsRecentCounterparts(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	freshID := uuid.New()
	recentID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	fresh := preciseCandidate(freshID, oakland, 25, models.ExperienceIntermediate)
	recent := preciseCandidate(recentID, oakland, 25, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{fresh, recent}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	// Недавний контрагент исключается из выдачи
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return([]uuid.UUID{recentID}, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, freshID, results[0].UserID)
}

func TestFindCandidates_RecencyWindowCutoff(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return(nil, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	// Отсечка по времени берется из настроенного окна (7 суток)
	matchMock.EXPECT().
		ExcludedCounterparts(ctx, userID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, since time.Time) ([]uuid.UUID, error) {
			assert.WithinDuration(t, time.Now().Add(-168*time.Hour), since, 5*time.Second)
			return nil, nil
		}).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindCandidates_CityOnlyCandidateGeocoded(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, geocoderMock, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	candidateID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	hidden := cityCandidate(candidateID, "Oakland", 25, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return(nil, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return([]*models.MatchCandidate{hidden}, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)
	// Расстояние считается до центроида города
	geocoderMock.EXPECT().Resolve(ctx, "Oakland").Return(oakland, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, candidateID, results[0].UserID)
	assert.InDelta(t, 8.35, results[0].DistanceMiles, 0.1)
}

func TestFindCandidates_SkipsCandidateWhenGeocodeFails(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, geocoderMock, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	goodID := uuid.New()
	badID := uuid.New()
	geocodeErr := fmt.Errorf("сервис геокодирования недоступен")

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	good := cityCandidate(goodID, "Oakland", 25, models.ExperienceIntermediate)
	bad := cityCandidate(badID, "Atlantis", 25, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return(nil, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return([]*models.MatchCandidate{good, bad}, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)
	geocoderMock.EXPECT().Resolve(ctx, "Oakland").Return(oakland, nil).Times(1)
	geocoderMock.EXPECT().Resolve(ctx, "Atlantis").Return(geo.Point{}, geocodeErr).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	// Неразрешимый кандидат пропускается, поиск не падает
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, goodID, results[0].UserID)
}

func TestFindCandidates_RequesterCityOnly(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, geocoderMock, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	candidateID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := &models.UserLocation{
		UserID:      userID,
		City:        "San Francisco",
		PrivacyMode: models.PrivacyCityOnly,
	}
	cand := preciseCandidate(candidateID, oakland, 25, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	// Запросивший скрыл координаты, его точкой становится центроид города
	geocoderMock.EXPECT().Resolve(ctx, "San Francisco").Return(sanFrancisco, nil).Times(1)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{cand}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, candidateID, results[0].UserID)
}

func TestFindCandidates_RequesterCityUnresolvable(t *testing.T) {
	// Подготовка
	service, _, locationMock, geocoderMock, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	geocodeErr := fmt.Errorf("сервис геокодирования недоступен")

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := &models.UserLocation{
		UserID:      userID,
		City:        "Atlantis",
		PrivacyMode: models.PrivacyCityOnly,
	}

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	geocoderMock.EXPECT().Resolve(ctx, "Atlantis").Return(geo.Point{}, geocodeErr).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrNoLocation)
	assert.ErrorContains(t, err, "could not resolve requester location")
}

func TestFindCandidates_RequesterWithoutLocation(t *testing.T) {
	// Подготовка
	service, _, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)

	// Ожидания
	locationMock.EXPECT().GetProfile(ctx, userID).Return(profile, nil).Times(1)
	locationMock.EXPECT().GetLocationFromCache(ctx, userID).Return(nil, nil).Times(1)
	locationMock.EXPECT().GetLocation(ctx, userID).Return(nil, ErrNoLocation).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestFindCandidates_ProfileNotFound(t *testing.T) {
	// Подготовка
	service, _, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Ожидания
	locationMock.EXPECT().GetProfile(ctx, userID).Return(nil, ErrProfileNotFound).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFindCandidates_RadiusOutOfRange(t *testing.T) {
	// Подготовка
	service, _, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)

	// Ожидания
	locationMock.EXPECT().GetProfile(ctx, userID).Return(profile, nil).Times(2)

	// Действие и проверки
	_, err := service.FindCandidates(ctx, userID, 75)
	assert.ErrorIs(t, err, ErrRadiusOutOfRange)

	_, err = service.FindCandidates(ctx, userID, 0.5)
	assert.ErrorIs(t, err, ErrRadiusOutOfRange)
}

func TestFindCandidates_DefaultsToProfileRadius(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	candidateID := uuid.New()

	// Радиус анкеты 5 миль, Окленд в 8.35 милях остается за пределами
	profile := requesterProfile(userID, 5, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	cand := preciseCandidate(candidateID, oakland, 25, models.ExperienceIntermediate)

	// Ожидания
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{cand}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 0)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindCandidates_LocationFromCache(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)

	// Ожидания
	locationMock.EXPECT().GetProfile(ctx, userID).Return(profile, nil).Times(1)
	// Попадание в кеш, чтение из БД не происходит
	locationMock.EXPECT().GetLocationFromCache(ctx, userID).Return(loc, nil).Times(1)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return(nil, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Действие
	results, err := service.FindCandidates(ctx, userID, 10)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProposeMatch_CreatesPendingWithNearest(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	nearID := uuid.New()
	farID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	near := preciseCandidate(nearID, missionSF, 10, models.ExperienceIntermediate)
	far := preciseCandidate(farID, oakland, 25, models.ExperienceIntermediate)

	// Ожидания
	// 1. Троттлинг не срабатывает
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(false, nil).Times(1)

	// 2. Подбор кандидатов
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{far, near}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// 3. Оба кандидата свободны, проверка идет в ранжированном порядке
	matchMock.EXPECT().PendingParticipants(ctx, []uuid.UUID{nearID, farID}).Return(map[uuid.UUID]struct{}{}, nil).Times(1)

	// 4. Создание матча с ближайшим кандидатом
	matchMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, match *models.WingmanMatch) error {
			// Симулируем, что БД присвоила ID и временные метки
			match.ID = uuid.New()
			match.CreatedAt = time.Now()
			match.UpdatedAt = match.CreatedAt
			return nil
		}).Times(1)

	// 5. Публикация события
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.MatchEvent) {
			assert.Equal(t, webhook.EventMatchProposed, event.Type)
			assert.Equal(t, userID, event.User1ID)
			assert.Equal(t, nearID, event.User2ID)
			assert.Equal(t, models.MatchStatusPending, event.Status)
		}).Return(nil).Times(1)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.True(t, proposal.Created)
	require.NotNil(t, proposal.Match)
	assert.Equal(t, userID, proposal.Match.User1ID)
	assert.Equal(t, nearID, proposal.Match.User2ID)
	assert.Equal(t, models.MatchStatusPending, proposal.Match.Status)
	assert.NotEqual(t, uuid.Nil, proposal.Match.ID)
	require.NotNil(t, proposal.Candidate)
	assert.Equal(t, nearID, proposal.Candidate.UserID)
}

func TestProposeMatch_Throttled(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Ожидания
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(true, nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, proposal)
	assert.ErrorIs(t, err, ErrAlreadyPending)
}

func TestProposeMatch_SkipsCandidateWithPending(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	nearID := uuid.New()
	farID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	near := preciseCandidate(nearID, missionSF, 10, models.ExperienceIntermediate)
	far := preciseCandidate(farID, oakland, 25, models.ExperienceIntermediate)

	// Ожидания
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(false, nil).Times(1)
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{near, far}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)

	// Ближайший кандидат уже состоит в pending-матче с третьим пользователем
	matchMock.EXPECT().
		PendingParticipants(ctx, []uuid.UUID{nearID, farID}).
		Return(map[uuid.UUID]struct{}{nearID: {}}, nil).
		Times(1)

	// Матч создается со следующим свободным кандидатом из ранжированного списка
	matchMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, match *models.WingmanMatch) error {
			assert.Equal(t, farID, match.User2ID)
			match.ID = uuid.New()
			match.CreatedAt = time.Now()
			match.UpdatedAt = match.CreatedAt
			return nil
		}).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.True(t, proposal.Created)
	require.NotNil(t, proposal.Match)
	assert.Equal(t, farID, proposal.Match.User2ID)
	require.NotNil(t, proposal.Candidate)
	assert.Equal(t, farID, proposal.Candidate.UserID)
}

func TestProposeMatch_AllCandidatesPending(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	candidateID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	cand := preciseCandidate(candidateID, missionSF, 10, models.ExperienceIntermediate)

	// Ожидания
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(false, nil).Times(1)
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{cand}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)
	matchMock.EXPECT().
		PendingParticipants(ctx, []uuid.UUID{candidateID}).
		Return(map[uuid.UUID]struct{}{candidateID: {}}, nil).
		Times(1)

	// Занятый кандидат не получает второй pending-матч
	matchMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.False(t, proposal.Created)
	assert.Nil(t, proposal.Match)
	assert.Nil(t, proposal.Candidate)
}

func TestProposeMatch_NoCandidates(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)

	// Ожидания
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(false, nil).Times(1)
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return(nil, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	// Отсутствие кандидатов не является ошибкой
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.False(t, proposal.Created)
	assert.Nil(t, proposal.Match)
}

func TestProposeMatch_ConcurrentDuplicate(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	candidateID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	cand := preciseCandidate(candidateID, missionSF, 10, models.ExperienceIntermediate)

	// Ожидания
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(false, nil).Times(1)
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{cand}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)
	matchMock.EXPECT().PendingParticipants(ctx, []uuid.UUID{candidateID}).Return(map[uuid.UUID]struct{}{}, nil).Times(1)
	// Параллельное предложение успело первым, срабатывает уникальный индекс
	matchMock.EXPECT().Create(ctx, gomock.Any()).Return(ErrAlreadyPending).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, proposal)
	assert.ErrorIs(t, err, ErrAlreadyPending)
}

func TestProposeMatch_PublisherFailureNotFatal(t *testing.T) {
	// Подготовка
	service, matchMock, locationMock, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	candidateID := uuid.New()
	publishErr := fmt.Errorf("redis недоступен")

	profile := requesterProfile(userID, 10, models.ExperienceIntermediate)
	loc := preciseLocation(userID, sanFrancisco)
	cand := preciseCandidate(candidateID, missionSF, 10, models.ExperienceIntermediate)

	// Ожидания
	matchMock.EXPECT().HasPendingForUser(ctx, userID).Return(false, nil).Times(1)
	expectRequesterLookup(ctx, locationMock, profile, loc)
	locationMock.EXPECT().FindCandidatesInBox(ctx, userID, gomock.Any(), 500).Return([]*models.MatchCandidate{cand}, nil).Times(1)
	locationMock.EXPECT().FindCityOnlyCandidates(ctx, userID, 500).Return(nil, nil).Times(1)
	matchMock.EXPECT().ExcludedCounterparts(ctx, userID, gomock.Any()).Return(nil, nil).Times(1)
	matchMock.EXPECT().PendingParticipants(ctx, []uuid.UUID{candidateID}).Return(map[uuid.UUID]struct{}{}, nil).Times(1)
	matchMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(publishErr).Times(1)

	// Действие
	proposal, err := service.ProposeMatch(ctx, userID)

	// Проверки
	// Сбой очереди событий не откатывает созданный матч
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.True(t, proposal.Created)
}

func TestRespond_AcceptSuccess(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	matchID := uuid.New()
	proposerID := uuid.New()
	responderID := uuid.New()

	match := &models.WingmanMatch{
		ID:      matchID,
		User1ID: proposerID,
		User2ID: responderID,
		Status:  models.MatchStatusPending,
	}

	// Ожидания
	matchMock.EXPECT().GetByID(ctx, matchID).Return(match, nil).Times(1)
	matchMock.EXPECT().UpdateStatusFromPending(ctx, matchID, models.MatchStatusAccepted).Return(true, nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.MatchEvent) {
			assert.Equal(t, webhook.EventMatchAccepted, event.Type)
			assert.Equal(t, matchID, event.MatchID)
			assert.Equal(t, models.MatchStatusAccepted, event.Status)
		}).Return(nil).Times(1)

	// Действие
	status, err := service.Respond(ctx, matchID, responderID, ActionAccept)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusAccepted, status)
}

func TestRespond_DeclineSuccess(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, publisherMock := newTestMatchingService(t)
	ctx := context.Background()
	matchID := uuid.New()
	proposerID := uuid.New()
	responderID := uuid.New()

	match := &models.WingmanMatch{
		ID:      matchID,
		User1ID: proposerID,
		User2ID: responderID,
		Status:  models.MatchStatusPending,
	}

	// Ожидания
	matchMock.EXPECT().GetByID(ctx, matchID).Return(match, nil).Times(1)
	matchMock.EXPECT().UpdateStatusFromPending(ctx, matchID, models.MatchStatusDeclined).Return(true, nil).Times(1)
	// Отказ не порождает события вебхука
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	status, err := service.Respond(ctx, matchID, proposerID, ActionDecline)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusDeclined, status)
}

func TestRespond_MatchNotFound(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	matchID := uuid.New()
	userID := uuid.New()

	// Ожидания
	matchMock.EXPECT().GetByID(ctx, matchID).Return(nil, ErrMatchNotFound).Times(1)

	// Действие
	status, err := service.Respond(ctx, matchID, userID, ActionAccept)

	// Проверки
	require.Error(t, err)
	assert.Empty(t, status)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRespond_NotParticipant(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	matchID := uuid.New()
	strangerID := uuid.New()

	match := &models.WingmanMatch{
		ID:      matchID,
		User1ID: uuid.New(),
		User2ID: uuid.New(),
		Status:  models.MatchStatusPending,
	}

	// Ожидания
	matchMock.EXPECT().GetByID(ctx, matchID).Return(match, nil).Times(1)

	// Действие
	status, err := service.Respond(ctx, matchID, strangerID, ActionAccept)

	// Проверки
	require.Error(t, err)
	assert.Empty(t, status)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestRespond_AlreadyResolved(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	matchID := uuid.New()
	responderID := uuid.New()

	// Матч уже принят, повторный ответ невозможен
	match := &models.WingmanMatch{
		ID:      matchID,
		User1ID: uuid.New(),
		User2ID: responderID,
		Status:  models.MatchStatusAccepted,
	}

	// Ожидания
	matchMock.EXPECT().GetByID(ctx, matchID).Return(match, nil).Times(1)

	// Действие
	status, err := service.Respond(ctx, matchID, responderID, ActionDecline)

	// Проверки
	require.Error(t, err)
	assert.Empty(t, status)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRespond_ConcurrentLoser(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	matchID := uuid.New()
	responderID := uuid.New()

	match := &models.WingmanMatch{
		ID:      matchID,
		User1ID: uuid.New(),
		User2ID: responderID,
		Status:  models.MatchStatusPending,
	}

	// Ожидания
	matchMock.EXPECT().GetByID(ctx, matchID).Return(match, nil).Times(1)
	// Статус сменился между чтением и обновлением, условный UPDATE ничего не затронул
	matchMock.EXPECT().UpdateStatusFromPending(ctx, matchID, models.MatchStatusAccepted).Return(false, nil).Times(1)

	// Действие
	status, err := service.Respond(ctx, matchID, responderID, ActionAccept)

	// Проверки
	require.Error(t, err)
	assert.Empty(t, status)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRespond_InvalidAction(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()

	// Действие
	status, err := service.Respond(ctx, uuid.New(), uuid.New(), "maybe")

	// Проверки
	require.Error(t, err)
	assert.Empty(t, status)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestUpsertProfile_Success(t *testing.T) {
	// Подготовка
	service, _, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceBeginner)
	loc := &models.UserLocation{
		Latitude:    floatPtr(sanFrancisco.Latitude),
		Longitude:   floatPtr(sanFrancisco.Longitude),
		PrivacyMode: models.PrivacyPrecise,
	}

	// Ожидания
	locationMock.EXPECT().UpsertProfile(ctx, profile).Return(nil).Times(1)
	locationMock.EXPECT().
		UpsertLocation(ctx, gomock.Any()).
		Do(func(ctx context.Context, saved *models.UserLocation) {
			// Геопозиция привязывается к владельцу анкеты
			assert.Equal(t, userID, saved.UserID)
		}).Return(nil).Times(1)
	locationMock.EXPECT().InvalidateLocationCache(ctx, userID).Return(nil).Times(1)

	// Действие
	err := service.UpsertProfile(ctx, profile, loc)

	// Проверки
	require.NoError(t, err)
}

func TestUpsertProfile_RejectsContactInfo(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	testCases := []struct {
		name string
		bio  string
	}{
		{name: "телефон", bio: "Пиши мне напрямую: 415-555-2671"},
		{name: "телефон со скобками", bio: "Звони (415) 555 2671 в любое время"},
		{name: "email", bio: "Мой адрес buddy@example.com, жду письма"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := requesterProfile(userID, 10, models.ExperienceBeginner)
			profile.Bio = tc.bio
			loc := preciseLocation(userID, sanFrancisco)

			// Действие
			err := service.UpsertProfile(ctx, profile, loc)

			// Проверки
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBioContainsPII)
		})
	}
}

func TestUpsertProfile_LocationValidation(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	testCases := []struct {
		name     string
		loc      *models.UserLocation
		expected error
	}{
		{
			name:     "нет ни координат ни города",
			loc:      &models.UserLocation{PrivacyMode: models.PrivacyPrecise},
			expected: ErrLocationRequired,
		},
		{
			name:     "только широта",
			loc:      &models.UserLocation{Latitude: floatPtr(37.7749), PrivacyMode: models.PrivacyPrecise},
			expected: geo.ErrInvalidCoordinates,
		},
		{
			name: "широта за пределами диапазона",
			loc: &models.UserLocation{
				Latitude:    floatPtr(95.0),
				Longitude:   floatPtr(-122.4194),
				PrivacyMode: models.PrivacyPrecise,
			},
			expected: geo.ErrInvalidCoordinates,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := requesterProfile(userID, 10, models.ExperienceBeginner)

			// Действие
			err := service.UpsertProfile(ctx, profile, tc.loc)

			// Проверки
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestUpsertProfile_CityOnlyWithoutCoordinates(t *testing.T) {
	// Подготовка
	service, _, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()

	profile := requesterProfile(userID, 10, models.ExperienceAdvanced)
	loc := &models.UserLocation{
		City:        "Portland",
		PrivacyMode: models.PrivacyCityOnly,
	}

	// Ожидания
	locationMock.EXPECT().UpsertProfile(ctx, profile).Return(nil).Times(1)
	locationMock.EXPECT().UpsertLocation(ctx, gomock.Any()).Return(nil).Times(1)
	locationMock.EXPECT().InvalidateLocationCache(ctx, userID).Return(nil).Times(1)

	// Действие
	err := service.UpsertProfile(ctx, profile, loc)

	// Проверки
	require.NoError(t, err)
}

func TestUpsertProfile_CacheInvalidationFailureNotFatal(t *testing.T) {
	// Подготовка
	service, _, locationMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	cacheErr := fmt.Errorf("redis недоступен")

	profile := requesterProfile(userID, 10, models.ExperienceBeginner)
	loc := preciseLocation(userID, sanFrancisco)

	// Ожидания
	locationMock.EXPECT().UpsertProfile(ctx, profile).Return(nil).Times(1)
	locationMock.EXPECT().UpsertLocation(ctx, gomock.Any()).Return(nil).Times(1)
	locationMock.EXPECT().InvalidateLocationCache(ctx, userID).Return(cacheErr).Times(1)

	// Действие
	err := service.UpsertProfile(ctx, profile, loc)

	// Проверки
	require.NoError(t, err)
}

func TestGetUserMatches_ClampsPagination(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	userID := uuid.New()
	expectedMatches := []*models.WingmanMatch{
		{ID: uuid.New(), User1ID: userID, Status: models.MatchStatusAccepted},
		{ID: uuid.New(), User2ID: userID, Status: models.MatchStatusPending},
	}

	// Ожидания
	// Некорректная пагинация приводится к значениям по умолчанию
	matchMock.EXPECT().ListByUser(ctx, userID, 1, 20).Return(expectedMatches, nil).Times(1)

	// Действие
	matches, err := service.GetUserMatches(ctx, userID, 0, 500)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedMatches, matches)
}

func TestGetMatchStats_Success(t *testing.T) {
	// Подготовка
	service, matchMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()

	// Ожидания
	matchMock.EXPECT().
		CountByStatusSince(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, since time.Time) (map[string]int, error) {
			assert.WithinDuration(t, time.Now().Add(-60*time.Minute), since, 5*time.Second)
			return map[string]int{
				models.MatchStatusPending:  3,
				models.MatchStatusAccepted: 2,
				models.MatchStatusDeclined: 1,
			}, nil
		}).Times(1)

	// Действие
	stats, err := service.GetMatchStats(ctx)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 2, stats.Accepted)
	assert.Equal(t, 1, stats.Declined)
	assert.Equal(t, 6, stats.Total)
}
