package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы матча. Статус pending единственный нетерминальный.
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusDeclined = "declined"
)

// WingmanMatch - предложение пары напарников. User1ID всегда инициатор.
type WingmanMatch struct {
	ID        uuid.UUID `json:"id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasParticipant проверяет, что пользователь является стороной матча
func (m *WingmanMatch) HasParticipant(userID uuid.UUID) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherParticipant возвращает вторую сторону матча
func (m *WingmanMatch) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// MatchProposal - результат автоподбора. Created=false без ошибки означает,
// что подходящих кандидатов сейчас нет.
type MatchProposal struct {
	Created   bool
	Match     *WingmanMatch
	Candidate *CandidateResult
}

// MatchStats - счетчики матчей по статусам за окно наблюдения
type MatchStats struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
	Total    int `json:"total"`
}
