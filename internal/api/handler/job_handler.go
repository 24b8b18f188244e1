package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/helpconnect/marketplace-api/internal/api/metrics"
	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

// JobHandler handles job requests and their status changes.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /api/jobs.
//
// @Summary      Request a job from a helper
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string            false  "Replays the first job created with this key"
// @Param        body             body      createJobRequest  true   "Job details"
// @Success      201              {object}  createJobResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := bindAndValidate(c, &req, "Missing required job details."); err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.CreateJob(c.Request().Context(), toCreateJobInput(req, idempotencyKey))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing required job details.")
		}
		return internalError("Database error during job creation.", err)
	}

	metrics.JobsCreatedTotal.WithLabelValues(strconv.FormatBool(result.AlreadyExisted)).Inc()

	return c.JSON(http.StatusCreated, createJobResponse{
		Message: "Job request submitted successfully!",
		JobID:   result.JobID,
	})
}

// ListForHelper handles GET /api/jobs/helper/:id.
//
// @Summary      Jobs booked with a helper
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Helper id"
// @Success      200  {array}   helperJobResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/jobs/helper/{id} [get]
func (h *JobHandler) ListForHelper(c echo.Context) error {
	return h.listJobs(c, c.Param("id"))
}

// MyJobs handles GET /api/me/jobs for the authenticated helper.
//
// @Summary      Jobs booked with the current helper
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   helperJobResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/me/jobs [get]
func (h *JobHandler) MyJobs(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	return h.listJobs(c, userID)
}

func (h *JobHandler) listJobs(c echo.Context, helperID string) error {
	jobs, err := h.service.ListHelperJobs(c.Request().Context(), helperID)
	if err != nil {
		return internalError("Could not retrieve jobs.", err)
	}
	return c.JSON(http.StatusOK, toHelperJobsResponse(jobs))
}

// UpdateStatus handles PUT /api/jobs/:id/status.
//
// @Summary      Change the status of a job
// @Description  Any of accepted, rejected, completed or cancelled may be set from any status.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Job id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/jobs/{id}/status [put]
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req, "Invalid status value."); err != nil {
		return err
	}

	jobID := c.Param("id")
	matched, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateJobStatusInput{
		JobID:     jobID,
		Status:    req.Status,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status value.")
		}
		return internalError("Database error during status update.", err)
	}

	metrics.JobStatusUpdatesTotal.WithLabelValues(req.Status, strconv.FormatBool(matched)).Inc()

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Job %s status updated to %s", jobID, req.Status),
	})
}
