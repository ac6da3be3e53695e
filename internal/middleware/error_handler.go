package middleware

import (
	"net/http"

	"myStoreCloud/pkg/logger"

	jsonres "myStoreCloud/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the catch-all for errors that escape the handlers,
// normalized into the common response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
