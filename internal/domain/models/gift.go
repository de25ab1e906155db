package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Gift представляет одну пронумерованную коробку с подарком.
type Gift struct {
	Number      int        `json:"gift_number" db:"gift_number"`
	StoragePath string     `json:"storage_path" db:"storage_path"`
	MediaType   MediaType  `json:"media_type" db:"media_type"`
	Caption     *string    `json:"caption" db:"caption"`
	OpenedAt    *time.Time `json:"opened_at" db:"opened_at"`
	PublicURL   string     `json:"public_url,omitempty" db:"-"`
}

// OpenedGift is the canonical result of an open attempt.
type OpenedGift struct {
	Number   int       `json:"gift_number"`
	OpenedAt time.Time `json:"opened_at"`
	// AlreadyOpened is set when the conditional update found the gift opened
	// and the stored timestamp was read back instead.
	AlreadyOpened bool `json:"already_opened"`
}

func (g Gift) IsOpened() bool {
	return g.OpenedAt != nil
}

// Title returns the caption, or "Gift n" when there is none.
func (g Gift) Title() string {
	if g.Caption != nil && strings.TrimSpace(*g.Caption) != "" {
		return *g.Caption
	}
	return fmt.Sprintf("Gift %d", g.Number)
}

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// ValidateGiftNumber проверяет, что номер лежит в диапазоне [1, total].
func ValidateGiftNumber(number, total int) error {
	if number < 1 || number > total {
		return &GiftValidationError{
			Number: number,
			Total:  total,
		}
	}
	return nil
}

// GiftValidationError is returned for gift numbers outside 1..Total.
type GiftValidationError struct {
	Number int
	Total  int
}

func (e *GiftValidationError) Error() string {
	return fmt.Sprintf("invalid gift_number %d: must be between 1 and %d", e.Number, e.Total)
}

// IsGiftValidationError проверяет, является ли ошибка ошибкой валидации
func IsGiftValidationError(err error) bool {
	var target *GiftValidationError
	return errors.As(err, &target)
}
