package geo

import (
	"errors"
	"math"
)

// EarthRadiusMiles - радиус Земли в милях (сферическая модель)
const EarthRadiusMiles = 3959.0

// ErrInvalidCoordinates возвращается при выходе широты или долготы за допустимые пределы
var ErrInvalidCoordinates = errors.New("coordinates out of range")

// Point - точка на сфере
type Point struct {
	Latitude  float64
	Longitude float64
}

// Valid проверяет, что точка лежит в допустимых пределах широты и долготы
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// DistanceMiles вычисляет расстояние между точками по формуле гаверсинусов.
// Результат симметричен и равен нулю для совпадающих точек.
func DistanceMiles(a, b Point) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, ErrInvalidCoordinates
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c, nil
}

// BoundingBox - прямоугольная рамка в координатах широты и долготы
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBoxFor строит рамку, покрывающую окружность радиуса radiusMiles вокруг точки.
// Рамка грубая и используется как префильтр выборки, точную отсечку делает DistanceMiles.
func BoundingBoxFor(p Point, radiusMiles float64) BoundingBox {
	// Градус широты везде одинаков, градус долготы сжимается к полюсам
	latDelta := radiusMiles / (EarthRadiusMiles * math.Pi / 180)

	lonDelta := 180.0
	if cosLat := math.Cos(toRadians(p.Latitude)); cosLat > 1e-6 {
		lonDelta = latDelta / cosLat
	}

	box := BoundingBox{
		MinLat: p.Latitude - latDelta,
		MaxLat: p.Latitude + latDelta,
		MinLon: p.Longitude - lonDelta,
		MaxLon: p.Longitude + lonDelta,
	}

	// У полюсов рамка обрезается по широте
	if box.MinLat < -90 {
		box.MinLat = -90
	}
	if box.MaxLat > 90 {
		box.MaxLat = 90
	}

	// Долгота сравнивается одним BETWEEN, поэтому окно через антимеридиан
	// раскрывается до полного диапазона вместо обрезки
	if box.MinLon < -180 || box.MaxLon > 180 {
		box.MinLon = -180
		box.MaxLon = 180
	}
	return box
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
