package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/meetinglens/meetinglens/internal/adapter/dto"
	"github.com/meetinglens/meetinglens/pkg/config"
)

// StatusController serves health and readiness endpoints.
type StatusController struct {
	cfg *config.Config
}

// NewStatusController creates the controller.
func NewStatusController(cfg *config.Config) *StatusController {
	return &StatusController{cfg: cfg}
}

// Health is the liveness probe.
func (ctrl *StatusController) Health(c echo.Context) error {
	return HandleSuccess(c, dto.HealthResponse{
		Status:  "healthy",
		Service: "meetinglens",
	})
}

// Status reports configuration readiness and the active pipeline limits.
//
// @Summary Service status and limits
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /v1/status [get]
func (ctrl *StatusController) Status(c echo.Context) error {
	status := "ready"
	configured := ctrl.cfg.ValidateAPIKey()
	if !configured {
		status = "degraded"
	}

	return HandleSuccess(c, dto.StatusResponse{
		Status:           status,
		APIKeyConfigured: configured,
		Provider:         ctrl.cfg.Analysis.TranscriberProvider,
		MaxFileSizeMB:    float64(ctrl.cfg.Analysis.MaxFileSizeBytes) / 1024 / 1024,
		MaxDurationSec:   ctrl.cfg.Analysis.MaxAudioDuration,
		SupportedFormats: ctrl.cfg.SupportedFormatsList(),
	})
}
