package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/meetinglens/meetinglens/internal/adapter/dto"
	"github.com/meetinglens/meetinglens/internal/usecase/session"
)

// SessionController serves session status endpoints.
type SessionController struct {
	sessions *session.Service
}

// NewSessionController creates the controller.
func NewSessionController(sessions *session.Service) *SessionController {
	return &SessionController{sessions: sessions}
}

// Get returns the current status of an analysis session.
//
// @Summary Get session status
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} dto.SessionResponse
// @Router /v1/sessions/{id} [get]
func (ctrl *SessionController) Get(c echo.Context) error {
	sess, err := ctrl.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(c, err)
	}
	return HandleSuccess(c, dto.NewSessionResponse(sess))
}

// Delete removes a session record.
//
// @Summary Delete a session
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} map[string]string
// @Router /v1/sessions/{id} [delete]
func (ctrl *SessionController) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := ctrl.sessions.Delete(c.Request().Context(), id); err != nil {
		return HandleError(c, err)
	}
	return HandleSuccess(c, map[string]string{
		"session_id": id,
		"message":    "Session deleted",
	})
}
