package service

import "errors"

// Доменные ошибки матчинга. Хендлеры сопоставляют их с HTTP-статусами через errors.Is,
// репозитории возвращают их вместо голых ошибок хранилища.
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNoLocation        = errors.New("user has no usable location")
	ErrLocationRequired  = errors.New("location requires coordinates or a city")
	ErrRadiusOutOfRange  = errors.New("radius out of range")
	ErrAlreadyPending    = errors.New("user already has a pending match")
	ErrMatchNotFound     = errors.New("match not found")
	ErrNotParticipant    = errors.New("user is not a participant of the match")
	ErrInvalidTransition = errors.New("match is not awaiting response")
	ErrInvalidAction     = errors.New("invalid response action")
	ErrBioContainsPII    = errors.New("bio must not contain contact information")
)
