package finance

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/finance/income", h.IncomeSummary)
}

func (h *Handler) IncomeSummary(c echo.Context) error {
	from, err := parsePeriod(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	to, err := parsePeriod(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter := SummaryFilter{From: from, To: to}
	if cat := c.QueryParam("category"); cat != "" {
		filter.Category = &cat
	}
	rows, err := h.svc.IncomeSummary(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []*IncomeRow{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": rows})
}
