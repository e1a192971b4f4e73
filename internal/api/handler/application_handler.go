package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sizafi/marketplace-api/internal/api/metrics"
	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

// ApplicationHandler handles the worker-application workflow.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type reviewRequest struct {
	Status      string `json:"status" validate:"required,oneof=approved rejected"`
	Description string `json:"description"`
}

// Apply handles POST /application/apply. Expects a multipart form with the
// requested trade in "service" and the supporting document in "pdf".
//
// @Summary      Submit a worker application
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        service  formData  string  true  "Requested trade"
// @Param        pdf      formData  file    true  "Supporting document"
// @Success      201      {object}  ports.SubmittedApplication
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /application/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	applicantID, err := callerID(c)
	if err != nil {
		return err
	}

	input := ports.SubmitApplicationInput{
		ApplicantID: applicantID,
		Trade:       c.FormValue("service"),
	}

	if fh, err := c.FormFile("pdf"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable document")
		}
		defer f.Close()

		input.File = f
		input.FileName = fh.Filename
		input.Size = fh.Size
		input.ContentType = fh.Header.Get("Content-Type")
	}

	result, err := h.service.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.WithLabelValues(input.Trade).Inc()
	return c.JSON(http.StatusCreated, result)
}

// Mine handles GET /application/mine — the caller's applications, newest first.
//
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Router       /application/mine [get]
func (h *ApplicationHandler) Mine(c echo.Context) error {
	applicantID, err := callerID(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListMine(c.Request().Context(), applicantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// ListAll handles GET /application — all applications with applicant identity
// joined in, optionally restricted via ?status=.
//
// @Summary      List all applications (admin)
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   ports.ApplicationWithApplicant
// @Failure      403     {object}  map[string]string
// @Router       /application [get]
func (h *ApplicationHandler) ListAll(c echo.Context) error {
	status := domain.ApplicationStatus(c.QueryParam("status"))
	apps, err := h.service.ListAll(c.Request().Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// Pending handles GET /application/pending.
//
// @Summary      List pending applications (admin)
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ApplicationWithApplicant
// @Failure      403  {object}  map[string]string
// @Router       /application/pending [get]
func (h *ApplicationHandler) Pending(c echo.Context) error {
	apps, err := h.service.ListAll(c.Request().Context(), domain.ApplicationPending)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// Review handles PUT /application/:id/review.
//
// @Summary      Review an application (admin)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application id"
// @Param        body  body      reviewRequest  true  "Decision and optional feedback"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /application/{id}/review [put]
func (h *ApplicationHandler) Review(c echo.Context) error {
	reviewerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.Review(c.Request().Context(), ports.ReviewInput{
		ApplicationID: c.Param("id"),
		Decision:      domain.ApplicationStatus(req.Status),
		Note:          req.Description,
		ReviewerID:    reviewerID,
	})
	if err != nil {
		return err
	}

	metrics.ApplicationsReviewedTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "application " + req.Status,
		"application": app,
	})
}
