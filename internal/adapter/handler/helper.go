package handler

import (
	goerrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/adapter/dto"
)

// HandleSuccess writes a 200 JSON payload.
func HandleSuccess(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// HandleError maps application errors to the error envelope. Unknown errors
// are masked as internal server errors so raw causes never leak to clients.
func HandleError(c echo.Context, err error) error {
	var appErr apperrors.AppError
	if goerrors.As(err, &appErr) {
		return c.JSON(appErr.HTTPCode, dto.ErrorResponse{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    apperrors.ErrorCode_INTERNAL.String(),
		Message: "Internal server error",
	})
}
