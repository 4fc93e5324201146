package models

import (
	"time"

	"github.com/google/uuid"
)

// Режимы приватности геопозиции
const (
	PrivacyPrecise  = "precise"
	PrivacyCityOnly = "city_only"
)

// UserLocation - геопозиция пользователя. Координаты могут отсутствовать,
// тогда позиция определяется центроидом города.
type UserLocation struct {
	UserID      uuid.UUID `json:"user_id"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	City        string    `json:"city,omitempty"`
	PrivacyMode string    `json:"privacy_mode"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasCoordinates проверяет наличие полной пары координат
func (l *UserLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
