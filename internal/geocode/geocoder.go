package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/wingman_matching_system/internal/geo"
	"github.com/sirupsen/logrus"
)

// ErrCityNotFound возвращается, когда геокодер не знает такого города
var ErrCityNotFound = errors.New("city not found")

// Resolver разрешает название города в точку центроида
type Resolver interface {
	Resolve(ctx context.Context, city string) (geo.Point, error)
}

// HTTPGeocoder - клиент геокодера с Nominatim-совместимым поисковым API
type HTTPGeocoder struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewHTTPGeocoder(baseURL string, timeout time.Duration, logger *logrus.Logger) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Resolve запрашивает центроид города у внешнего геокодера
func (g *HTTPGeocoder) Resolve(ctx context.Context, city string) (geo.Point, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("format", "json")
	query.Set("limit", "1")

	requestURL := fmt.Sprintf("%s/search?%s", g.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to call geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	// Nominatim отдает координаты строками
	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return geo.Point{}, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(places) == 0 {
		return geo.Point{}, ErrCityNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to parse geocoder latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to parse geocoder longitude: %w", err)
	}

	point := geo.Point{Latitude: lat, Longitude: lon}
	if !point.Valid() {
		return geo.Point{}, geo.ErrInvalidCoordinates
	}

	g.logger.WithFields(logrus.Fields{
		"city": city,
		"lat":  lat,
		"lon":  lon,
	}).Debug("City geocoded")
	return point, nil
}

// CachedGeocoder - кеширующий декоратор поверх Resolver. Центроиды городов
// почти не меняются, поэтому TTL длинный.
type CachedGeocoder struct {
	inner       Resolver
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewCachedGeocoder(inner Resolver, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		inner:       inner,
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// Resolve сперва смотрит в Redis, при промахе идет во внешний геокодер
func (c *CachedGeocoder) Resolve(ctx context.Context, city string) (geo.Point, error) {
	key := cacheKey(city)

	val, err := c.redisClient.Get(ctx, key).Bytes()
	if err == nil {
		var point geo.Point
		if err := json.Unmarshal(val, &point); err == nil {
			return point, nil
		}
		c.logger.WithField("key", key).Warn("Failed to unmarshal cached centroid, refetching")
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WithError(err).Warn("Failed to read geocode cache")
	}

	point, err := c.inner.Resolve(ctx, city)
	if err != nil {
		return geo.Point{}, err
	}

	payload, err := json.Marshal(point)
	if err != nil {
		return point, nil
	}
	if err := c.redisClient.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to cache geocoded centroid")
	}
	return point, nil
}

func cacheKey(city string) string {
	return fmt.Sprintf("geocode:city:%s", strings.ToLower(strings.TrimSpace(city)))
}
