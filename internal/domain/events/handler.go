package events

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/notluquis/bioalergia-sub009/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/events", h.ListEvents)
	api.GET("/events/:id", h.GetEvent)
	api.POST("/events/:id/reparse", h.ReparseEvent)
	api.POST("/parse", h.ParseText)
}

func (h *Handler) ListEvents(c echo.Context) error {
	pg := pagination.FromContext(c)

	from, to, err := timeRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter := ListFilter{From: from, To: to}
	if cat := c.QueryParam("category"); cat != "" {
		filter.Category = &cat
	}
	if att := c.QueryParam("attended"); att != "" {
		v, err := strconv.ParseBool(att)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid attended")
		}
		filter.Attended = &v
	}
	if inc := c.QueryParam("include_ignored"); inc != "" {
		v, err := strconv.ParseBool(inc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid include_ignored")
		}
		filter.IncludeIgnored = v
	}

	items, total, err := h.svc.List(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ev, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *Handler) ReparseEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ev, err := h.svc.Reparse(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	return c.JSON(http.StatusOK, ev)
}

type parseRequest struct {
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
}

// ParseText runs the engine over request text without persisting anything.
func (h *Handler) ParseText(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.ParseText(req.Summary, req.Description))
}
