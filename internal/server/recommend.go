package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dreamgarage/dreamcar/config"
	"github.com/dreamgarage/dreamcar/internal/catalog"
	"github.com/dreamgarage/dreamcar/internal/recommend"
	"github.com/dreamgarage/dreamcar/models"
)

type RecommendHandler struct {
	Catalog  *catalog.Store
	Ranker   *recommend.Ranker
	Inferrer *recommend.Inferrer
	Defaults config.DefaultsConfig
	Logger   *log.Logger
}

func (h *RecommendHandler) Register(e *echo.Echo) {
	e.POST("/recommend_cars", h.recommendCars)
	e.POST("/recommend_filters", h.recommendFilters)
}

func (h *RecommendHandler) recommendCars(c echo.Context) error {
	recommendRequests.WithLabelValues("recommend_cars").Inc()

	var filter models.Filter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := filter.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	topN := h.Defaults.TopN
	if s := c.QueryParam("top_n"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "top_n must be a positive integer")
		}
		topN = n
	}

	vehicles, err := h.Catalog.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Logger.Printf("loaded %d vehicles", len(vehicles))

	filtered := catalog.Apply(vehicles, filter)
	h.Logger.Printf("after filtering: %d vehicles match criteria", len(filtered))

	best := h.Ranker.Rank(c.Request().Context(), filtered, filter.PreferencesText, topN)
	if len(best) == 0 {
		emptyRankings.Inc()
	}
	h.Logger.Printf("returning %d recommendations", len(best))

	return c.JSON(http.StatusOK, map[string]interface{}{"recommendations": best})
}

// conversationTurn decodes the wire form of one transcript entry: a
// two-element array [role_code, text] with role code 0=user, 1=assistant.
type conversationTurn struct {
	RoleCode int
	Text     string
}

func (t *conversationTurn) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("conversation entry must be a [role, text] pair")
	}
	if err := json.Unmarshal(pair[0], &t.RoleCode); err != nil {
		return fmt.Errorf("conversation role must be an integer: %w", err)
	}
	if err := json.Unmarshal(pair[1], &t.Text); err != nil {
		return fmt.Errorf("conversation text must be a string: %w", err)
	}
	return nil
}

func (h *RecommendHandler) recommendFilters(c echo.Context) error {
	recommendRequests.WithLabelValues("recommend_filters").Inc()

	var req struct {
		Conversation []conversationTurn `json:"conversation"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transcript := make([]models.ChatTurn, 0, len(req.Conversation))
	for _, turn := range req.Conversation {
		role := models.RoleUser
		if turn.RoleCode != 0 {
			role = models.RoleAssistant
		}
		transcript = append(transcript, models.ChatTurn{Role: role, Message: turn.Text})
	}

	filters := h.Inferrer.InferFilters(c.Request().Context(), transcript)

	// The inference service returns raw optionals; user-facing defaults are
	// substituted here at the boundary.
	resp := map[string]interface{}{
		"vehicle_types":    orStrings(filters.VehicleTypes),
		"price_range":      orRange(filters.PriceRange, h.Defaults.PriceRange),
		"mpg_range":        orRange(filters.MPGRange, h.Defaults.MPGRange),
		"seating_options":  orInts(filters.SeatingOptions),
		"preferences_text": filters.PreferencesText,
	}
	h.Logger.Printf("returning filters: %v", resp)
	return c.JSON(http.StatusOK, resp)
}

func orStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func orInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func orRange(v, def []float64) []float64 {
	if len(v) != 2 {
		return def
	}
	return v
}
