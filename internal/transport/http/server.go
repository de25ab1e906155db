package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"giftbox/internal/domain/models"
	"giftbox/internal/lib/logger/sl"
	services "giftbox/internal/services/gift_service"
	"giftbox/internal/storage"
	"giftbox/internal/transport/http/dto"
	"giftbox/internal/transport/http/dto/request"
	"giftbox/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"

	_ "giftbox/docs"
)

type GiftService interface {
	ListGifts(ctx context.Context) ([]models.Gift, error)
	OpenGift(ctx context.Context, number int) (models.OpenedGift, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// MediaFiles резолвит путь из URL в файл на диске.
type MediaFiles interface {
	GetFullPath(relativePath string) (string, error)
}

type Routers struct {
	log         *slog.Logger
	GiftService GiftService
	Store       Pinger
	Media       MediaFiles
}

func NewRouter(log *slog.Logger, giftService GiftService, store Pinger, media MediaFiles) *Routers {
	return &Routers{
		log:         log,
		GiftService: giftService,
		Store:       store,
		Media:       media,
	}
}

// ListGifts godoc
// @Summary Список подарков
// @Description Все подарки по возрастанию номера, с публичной ссылкой на медиа.
// @Tags gifts
// @Produce json
// @Success 200 {object} dto.GiftListResponse "Подарки"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/gifts [get]
func (r *Routers) ListGifts(c echo.Context) error {
	const op = "http.routers.ListGifts"

	log := r.log.With(
		slog.String("op", op),
	)

	gifts, err := r.GiftService.ListGifts(c.Request().Context())
	if err != nil {
		log.Error("failed to list gifts", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStoreUnavailable)
	}

	return c.JSON(http.StatusOK, dto.NewGiftListResponse(gifts))
}

// OpenGift godoc
// @Summary Открыть подарок
// @Description Ставит opened_at, если подарок ещё не открыт. Повторный вызов возвращает уже сохранённое время.
// @Tags gifts
// @Accept json
// @Produce json
// @Param request body request.OpenGiftRequest true "Номер подарка"
// @Success 200 {object} dto.OpenGiftResponse "Каноничное время открытия"
// @Failure 400 {object} response.ErrorResponse "Неверный номер"
// @Failure 404 {object} response.ErrorResponse "Подарок не найден"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/open [post]
func (r *Routers) OpenGift(c echo.Context) error {
	const op = "http.routers.OpenGift"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.OpenGiftRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("invalid request body", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidGiftNumber)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("gift_number missing", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidGiftNumber.WithDetails("gift_number is required"))
	}

	opened, err := r.GiftService.OpenGift(c.Request().Context(), *req.GiftNumber)
	if err != nil {
		switch {
		case models.IsGiftValidationError(err):
			var vErr *models.GiftValidationError
			errors.As(err, &vErr)
			return c.JSON(http.StatusBadRequest, response.ErrInvalidGiftNumber.WithDetails(vErr.Error()))
		case errors.Is(err, storage.ErrGiftNotFound):
			return c.JSON(http.StatusNotFound, response.ErrGiftNotFound)
		case errors.Is(err, services.ErrStoreUnavailable):
			return c.JSON(http.StatusInternalServerError, response.ErrStoreUnavailable)
		}

		log.Error("unexpected open error", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStoreUnavailable)
	}

	return c.JSON(http.StatusOK, dto.NewOpenGiftResponse(opened))
}

// Health godoc
// @Summary Проверка здоровья
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	if r.Store != nil {
		if err := r.Store.Ping(c.Request().Context()); err != nil {
			r.log.With(slog.String("op", op)).Error("store ping failed", sl.Err(err))
			return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails(response.CodeStoreUnavailable, err.Error()))
		}
	}

	return c.JSON(http.StatusOK, response.StatusOK())
}

// MediaFile отдаёт файл подарка из локального каталога.
func (r *Routers) MediaFile(c echo.Context) error {
	const op = "http.routers.MediaFile"

	if r.Media == nil {
		return echo.ErrNotFound
	}

	full, err := r.Media.GetFullPath(c.Param("*"))
	if err != nil {
		r.log.With(slog.String("op", op)).Warn("rejected media path", sl.Err(err))
		return echo.ErrNotFound
	}

	return c.File(full)
}
