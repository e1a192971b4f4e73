package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sizafi/marketplace-api/internal/core/ports"
)

// WorkerHandler exposes the worker directory.
type WorkerHandler struct {
	service ports.WorkerService
}

func NewWorkerHandler(service ports.WorkerService) *WorkerHandler {
	return &WorkerHandler{service: service}
}

// List handles GET /workers with an optional ?role= trade filter.
//
// @Summary      List workers
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Filter to one trade (e.g. plumber)"
// @Success      200   {array}   userResponse
// @Failure      400   {object}  map[string]string
// @Router       /workers [get]
func (h *WorkerHandler) List(c echo.Context) error {
	workers, err := h.service.ListWorkers(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, toUserResponse(w))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /workers/:id.
//
// @Summary      Get a worker by id
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Worker id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /workers/{id} [get]
func (h *WorkerHandler) Get(c echo.Context) error {
	worker, err := h.service.GetWorker(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(worker))
}
