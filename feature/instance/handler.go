package instance

import (
	"errors"

	"beammp-manager/core/errs"
	"beammp-manager/core/lifecycle"
	"beammp-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the managed instance.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the instance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/instance")
	group.Get("/state", h.HandleState)
	group.Post("/install", h.HandleInstall)
	group.Get("/update", h.HandleCheckUpdate)
	group.Post("/update", h.HandleUpdate)
	group.Post("/start", h.HandleStart)
	group.Post("/stop", h.HandleStop)
	group.Get("/releases", h.HandleReleases)
	group.Post("/releases/:tag/restore", h.HandleRestore)
	group.Get("/history", h.HandleHistory)
}

// statusFor maps an operation error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lifecycle.ErrServerRunning), errors.Is(err, ErrNotRunning):
		return fiber.StatusConflict
	case errors.Is(err, lifecycle.ErrVersionUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, lifecycle.ErrArchiveDisabled):
		return fiber.StatusNotImplemented
	}
	switch errs.KindOf(err) {
	case errs.KindConfigMissing:
		return fiber.StatusPreconditionFailed
	case errs.KindMalformedConfig:
		return fiber.StatusUnprocessableEntity
	case errs.KindNetwork:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func (h *Handler) outcome(c *fiber.Ctx, action string, out lifecycle.Outcome) error {
	l := logger.WithRayID(h.service.logger, c)
	if !out.OK() {
		l.Error(action+" failed", zap.Error(out.Err))
		return c.Status(statusFor(out.Err)).JSON(fiber.Map{
			"error": out.Message(),
			"kind":  errs.KindOf(out.Err),
			"state": h.service.Status().State,
		})
	}
	l.Info(action+" completed", zap.String("notice", out.Notice))
	return c.JSON(fiber.Map{
		"notice": out.Notice,
		"state":  h.service.Status().State,
	})
}

// HandleState returns the instance state.
// @Summary Get Instance State
// @Description Returns the lifecycle state, the running process id and the installed version.
// @Tags instance
// @Produce json
// @Success 200 {object} Status "Instance Status"
// @Router /instance/state [get]
func (h *Handler) HandleState(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleInstall installs the latest release.
// @Summary Install Server
// @Description Downloads the latest BeamMP server release, records its version and writes a default ServerConfig.toml if none exists.
// @Tags instance
// @Produce json
// @Success 200 {object} map[string]string "Notice"
// @Failure 409 {object} map[string]string "Server is running"
// @Failure 500 {object} map[string]string "Install Error"
// @Router /instance/install [post]
func (h *Handler) HandleInstall(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Install requested")
	return h.outcome(c, "Install", h.service.Install(c.UserContext()))
}

// HandleCheckUpdate compares the installed and latest versions.
// @Summary Check For Update
// @Description Compares the installed version with the latest release without downloading anything.
// @Tags instance
// @Produce json
// @Success 200 {object} lifecycle.UpdateStatus "Update Status"
// @Failure 503 {object} map[string]string "Version comparison unavailable"
// @Router /instance/update [get]
func (h *Handler) HandleCheckUpdate(c *fiber.Ctx) error {
	status, err := h.service.CheckUpdate(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Update check failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleUpdate updates the server when a newer release exists.
// @Summary Update Server
// @Description Downloads the latest release when its tag differs from the installed one.
// @Tags instance
// @Produce json
// @Success 200 {object} map[string]string "Notice (updated or up-to-date)"
// @Failure 409 {object} map[string]string "Server is running"
// @Failure 503 {object} map[string]string "Version comparison unavailable"
// @Router /instance/update [post]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Update requested")
	return h.outcome(c, "Update", h.service.Update(c.UserContext()))
}

// HandleStart starts the server.
// @Summary Start Server
// @Description Reconciles ServerConfig.toml with the configured settings and launches the server.
// @Tags instance
// @Produce json
// @Success 200 {object} Status "Instance Status"
// @Failure 409 {object} map[string]string "Server is running"
// @Failure 412 {object} map[string]string "Configuration missing"
// @Failure 422 {object} map[string]string "Configuration malformed"
// @Failure 500 {object} map[string]string "Spawn Error"
// @Router /instance/start [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	status, err := h.service.Start(c.UserContext())
	if err != nil {
		l.Error("Start failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  errs.KindOf(err),
			"state": status.State,
		})
	}
	l.Info("Server started", zap.Int("pid", status.PID))
	return c.JSON(status)
}

// HandleStop stops the server.
// @Summary Stop Server
// @Description Sends the exit command to the server console. The process exits asynchronously.
// @Tags instance
// @Produce json
// @Success 200 {object} Status "Instance Status"
// @Failure 409 {object} map[string]string "Server is not running"
// @Router /instance/stop [post]
func (h *Handler) HandleStop(c *fiber.Ctx) error {
	status, err := h.service.Stop(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error(), "state": status.State})
	}
	logger.WithRayID(h.service.logger, c).Info("Shutdown requested")
	return c.JSON(status)
}

// HandleReleases lists archived releases.
// @Summary List Archived Releases
// @Description Lists server executables kept in the release archive, newest first.
// @Tags instance
// @Produce json
// @Success 200 {array} storage.ArchivedRelease "Archived Releases"
// @Failure 501 {object} map[string]string "Archive not configured"
// @Router /instance/releases [get]
func (h *Handler) HandleReleases(c *fiber.Ctx) error {
	releases, err := h.service.Releases(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(releases)
}

// HandleRestore restores an archived release.
// @Summary Restore Archived Release
// @Description Replaces the server executable with an archived release.
// @Tags instance
// @Produce json
// @Param tag path string true "Release tag (e.g. 'v3.4.1')"
// @Success 200 {object} map[string]string "Notice"
// @Failure 409 {object} map[string]string "Server is running"
// @Failure 501 {object} map[string]string "Archive not configured"
// @Router /instance/releases/{tag}/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	return h.outcome(c, "Restore", h.service.Restore(c.UserContext(), c.Params("tag")))
}

// HandleHistory lists recent lifecycle events.
// @Summary Lifecycle History
// @Description Lists recent lifecycle events. Empty when no database is configured.
// @Tags instance
// @Produce json
// @Param limit query int false "Maximum number of events" default(20)
// @Success 200 {array} history.Event "Events"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /instance/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	events, err := h.service.History(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if events == nil {
		return c.JSON([]any{})
	}
	return c.JSON(events)
}
