package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spookyuser/tarot-game/internal/app"
	"github.com/spookyuser/tarot-game/internal/domain"
	"github.com/spookyuser/tarot-game/internal/ports"
)

type Handler struct {
	readings *app.ReadingService
	summary  *app.SummaryService
	cards    ports.CardSource
	clients  ports.ClientSource
}

func NewHandler(readings *app.ReadingService, summary *app.SummaryService, cards ports.CardSource, clients ports.ClientSource) *Handler {
	return &Handler{readings: readings, summary: summary, cards: cards, clients: clients}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/reading", h.GenerateReading)
	e.POST("/v1/summary", h.Summarize)
	e.GET("/v1/cards", h.ListCards)
	e.GET("/v1/clients", h.ListClients)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GenerateReading(c echo.Context) error {
	var body any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
	}

	result, err := h.readings.GenerateReading(c.Request().Context(), body)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, toReadingResponse(result))
}

func (h *Handler) Summarize(c echo.Context) error {
	var body any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
	}

	summary, err := h.summary.Summarize(c.Request().Context(), body)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}

func (h *Handler) ListCards(c echo.Context) error {
	cards, err := h.cards.Cards(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, cards)
}

func (h *Handler) ListClients(c echo.Context) error {
	clients, err := h.clients.Clients(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

func toReadingResponse(r app.ReadingResult) ReadingResponse {
	slots := make([]SlotResponse, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = SlotResponse{
			Index:       s.Index,
			Card:        nullable(s.Card),
			Text:        nullable(s.Text),
			Orientation: nullable(string(s.Orientation)),
		}
	}

	var activeIndex *int
	if r.HadGameState {
		idx := r.ActiveEncounterIndex
		activeIndex = &idx
	}

	return ReadingResponse{
		Client:               r.Client,
		Slots:                slots,
		Generated:            r.Generated,
		FilledSlot:           r.FilledSlot,
		GameState:            r.GameState,
		ActiveEncounterIndex: activeIndex,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrNoTargetSlot),
		errors.Is(err, domain.ErrNoEncounters):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM):
		slog.Error("upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Generation failed", Detail: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
