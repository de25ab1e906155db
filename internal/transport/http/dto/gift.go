package dto

import (
	"time"

	"giftbox/internal/domain/models"
)

type GiftResponse struct {
	GiftNumber  int        `json:"gift_number" example:"7"`
	StoragePath string     `json:"storage_path" example:"07.jpg"`
	MediaType   string     `json:"media_type" example:"image"`
	Caption     *string    `json:"caption"`
	OpenedAt    *time.Time `json:"opened_at"`
	PublicURL   string     `json:"public_url" example:"http://localhost:8080/media/gift-photos/07.jpg"`
}

type GiftListResponse struct {
	Gifts []GiftResponse `json:"gifts"`
}

type OpenedGiftResponse struct {
	GiftNumber    int       `json:"gift_number" example:"7"`
	OpenedAt      time.Time `json:"opened_at"`
	AlreadyOpened bool      `json:"already_opened"`
}

type OpenGiftResponse struct {
	Gift OpenedGiftResponse `json:"gift"`
}

func NewGiftResponse(g models.Gift) GiftResponse {
	return GiftResponse{
		GiftNumber:  g.Number,
		StoragePath: g.StoragePath,
		MediaType:   string(g.MediaType),
		Caption:     g.Caption,
		OpenedAt:    g.OpenedAt,
		PublicURL:   g.PublicURL,
	}
}

func NewGiftListResponse(gifts []models.Gift) GiftListResponse {
	resp := GiftListResponse{Gifts: make([]GiftResponse, 0, len(gifts))}
	for _, g := range gifts {
		resp.Gifts = append(resp.Gifts, NewGiftResponse(g))
	}
	return resp
}

func NewOpenGiftResponse(o models.OpenedGift) OpenGiftResponse {
	return OpenGiftResponse{
		Gift: OpenedGiftResponse{
			GiftNumber:    o.Number,
			OpenedAt:      o.OpenedAt,
			AlreadyOpened: o.AlreadyOpened,
		},
	}
}
