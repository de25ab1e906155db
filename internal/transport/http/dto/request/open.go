package request

// OpenGiftRequest тело POST /api/open. Указатель отличает отсутствующее поле от нуля.
type OpenGiftRequest struct {
	GiftNumber *int `json:"gift_number" validate:"required"`
}
