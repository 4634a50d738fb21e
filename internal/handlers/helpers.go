package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// publicBaseURL is the base for proxy and webhook URLs handed out to the
// outside world: the configured worker URL when present, otherwise the
// scheme and host of the inbound request.
func publicBaseURL(c echo.Context, workerURL string) string {
	if base := strings.TrimSpace(workerURL); base != "" {
		return strings.TrimSuffix(base, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

func successBody(message string) echo.Map {
	return echo.Map{"status": "success", "message": message}
}
