package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpconnect/marketplace-api/internal/api/metrics"
	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

// HelperHandler serves helper search and profile pages.
type HelperHandler struct {
	service ports.HelperService
}

func NewHelperHandler(service ports.HelperService) *HelperHandler {
	return &HelperHandler{service: service}
}

// Search handles GET /api/helpers.
//
// @Summary      Search helpers
// @Tags         helpers
// @Produce      json
// @Param        city   query     string  false  "Case-insensitive substring of the city"
// @Param        skill  query     string  false  "Case-insensitive substring of the skills"
// @Success      200    {array}   profileResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/helpers [get]
func (h *HelperHandler) Search(c echo.Context) error {
	helpers, err := h.service.Search(c.Request().Context(), ports.HelperFilter{
		City:  c.QueryParam("city"),
		Skill: c.QueryParam("skill"),
	})
	if err != nil {
		return internalError("Could not retrieve helper data.", err)
	}

	metrics.HelperSearchesTotal.Inc()
	return c.JSON(http.StatusOK, toProfileListResponse(helpers))
}

// Get handles GET /api/helpers/:id.
//
// @Summary      Helper profile with availabilities and reviews
// @Tags         helpers
// @Produce      json
// @Param        id   path      string  true  "Helper id"
// @Success      200  {object}  helperDetailResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/helpers/{id} [get]
func (h *HelperHandler) Get(c echo.Context) error {
	hp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrHelperNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Helper not found")
		}
		return internalError("Could not retrieve helper profile.", err)
	}

	return c.JSON(http.StatusOK, toHelperDetailResponse(hp))
}
