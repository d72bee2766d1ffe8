package domain

import "errors"

// Errores de dominio.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrOriginalNotFound    = errors.New("original message not found")
	ErrTranslationExists   = errors.New("translation already exists for this original and language")
	ErrTranslationNotFound = errors.New("translation not found for this original and language")
	ErrInvalidMessage      = errors.New("message invalid input")
	ErrContentTooLong      = errors.New("message content exceeds maximum length")
)
