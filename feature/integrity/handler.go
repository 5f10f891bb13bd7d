package integrity

import (
	"errors"

	"beammp-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/install", h.HandleInstallCheck)
	group.Get("/import", h.HandleImportCheck)
	group.Get("/config", h.HandleConfigCheck)
	group.Get("/history", h.HandleHistoryCheck)
	group.Get("/archive", h.HandleArchiveCheck)
	group.Get("/releases", h.HandleReleaseCheck)
}

func unavailable(err error) bool {
	return errors.Is(err, ErrNoDatabase) || errors.Is(err, ErrNoArchive)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Install, Config, History, Archive, Releases).
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	install := h.service.CheckInstall()
	report["install"] = fiber.Map{"valid": install.Valid(), "missing": install.Missing, "message": install.Message()}

	if cfg, err := h.service.CheckConfig(); err != nil {
		report["config"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["config"] = cfg
	}

	if hist, err := h.service.CheckHistory(); err != nil {
		report["history"] = fiber.Map{"status": statusText(err), "error": err.Error()}
	} else {
		report["history"] = hist
	}

	if archive, err := h.service.CheckArchive(c.UserContext()); err != nil {
		report["archive"] = fiber.Map{"status": statusText(err), "error": err.Error()}
	} else {
		report["archive"] = archive
	}

	if plan, err := h.service.CheckReleases(c.UserContext()); err != nil {
		report["releases"] = fiber.Map{"status": statusText(err), "error": err.Error()}
	} else {
		report["releases"] = plan.Summary
	}

	return c.JSON(report)
}

func statusText(err error) string {
	if unavailable(err) {
		return "disabled"
	}
	return "error"
}

// HandleInstallCheck checks the instance directory.
// @Summary Check Install
// @Description Checks that the server executable and ServerConfig.toml exist in the instance directory.
// @Tags integrity
// @Produce json
// @Success 200 {object} lifecycle.Validity "Install Report"
// @Router /integrity/install [get]
func (h *Handler) HandleInstallCheck(c *fiber.Ctx) error {
	v := h.service.CheckInstall()
	if !v.Valid() {
		logger.WithRayID(h.service.logger, c).Warn("Install incomplete", zap.Strings("missing", v.Missing))
	}
	return c.JSON(fiber.Map{"valid": v.Valid(), "path": v.Path, "missing": v.Missing, "message": v.Message()})
}

// HandleImportCheck checks an existing installation before adopting it.
// @Summary Check Import Path
// @Description Checks that the server executable and ServerConfig.toml exist at the given path.
// @Tags integrity
// @Produce json
// @Param path query string true "Directory of the installation to import"
// @Success 200 {object} lifecycle.Validity "Import Report"
// @Failure 400 {object} map[string]string "Missing path"
// @Router /integrity/import [get]
func (h *Handler) HandleImportCheck(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}
	v := h.service.CheckImport(path)
	return c.JSON(fiber.Map{
		"valid":          v.Valid(),
		"path":           v.Path,
		"missing":        v.Missing,
		"missing_fields": v.MissingFields,
		"message":        v.Message(),
	})
}

// HandleConfigCheck inspects the configuration document.
// @Summary Check Config
// @Description Reports the managed settings of ServerConfig.toml, missing fields and fields that differ from the configured values.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ConfigReport "Config Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/config [get]
func (h *Handler) HandleConfigCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckConfig()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Config check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleHistoryCheck checks the history table schema.
// @Summary Check History Schema
// @Description Checks if the lifecycle_events table matches the expected model.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 501 {object} map[string]string "Database not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/history [get]
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckHistory()
	if err != nil {
		return h.fail(c, "History schema check failed", err)
	}
	return c.JSON(report)
}

// HandleArchiveCheck checks and optionally fixes the archive bucket.
// @Summary Check Archive
// @Description Checks if the release archive bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.ArchiveReport "Archive Report"
// @Failure 501 {object} map[string]string "Archive not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/archive [get]
func (h *Handler) HandleArchiveCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckArchive(c.UserContext())
	if err != nil {
		return h.fail(c, "Archive check failed", err)
	}

	if !report.Exists && c.QueryBool("fix") {
		logger.WithRayID(h.service.logger, c).Info("Attempting to create archive bucket")
		if err := h.service.FixArchive(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create archive bucket",
				"details": err.Error(),
			})
		}
		report.Exists = true
		report.Fixed = true
	}

	return c.JSON(report)
}

// HandleReleaseCheck reconciles release tags across history, archive and the installed version.
// @Summary Check Releases
// @Description Lists every known release tag with its presence in the history database, the archive and the instance directory. With fix=true the installed release is archived when missing.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Archive the installed release when missing"
// @Success 200 {object} reconcile.ReleasePlan "Release Plan"
// @Failure 501 {object} map[string]string "Archive not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/releases [get]
func (h *Handler) HandleReleaseCheck(c *fiber.Ctx) error {
	if c.QueryBool("fix") {
		plan, executed, err := h.service.FixReleases(c.UserContext())
		if err != nil {
			return h.fail(c, "Release fix failed", err)
		}
		return c.JSON(fiber.Map{"plan": plan, "executed": executed})
	}

	plan, err := h.service.CheckReleases(c.UserContext())
	if err != nil {
		return h.fail(c, "Release check failed", err)
	}
	return c.JSON(plan)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	if unavailable(err) {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
