package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filelinkbot/filelink/internal/telegram"
)

// FileHandler exchanges a stable /file/{file_id} URL for the platform's
// short-lived download URL: 302 redirect by default, JSON metadata with
// ?json=true, or a streamed passthrough with ?stream=true.
type FileHandler struct {
	logger *slog.Logger
	api    telegram.BotAPI
	httpc  *http.Client
}

type fileInfo struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileSize     int64  `json:"file_size,omitempty"`
	FilePath     string `json:"file_path"`
	DownloadURL  string `json:"download_url"`
}

func NewFileHandler(log *slog.Logger, api telegram.BotAPI) *FileHandler {
	if log == nil {
		log = slog.Default()
	}
	return &FileHandler{
		logger: log.With(slog.String("handler", "file")),
		api:    api,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *FileHandler) Register(e *echo.Echo) {
	e.GET("/file/:file_id", h.Handle)
	e.GET("/file", h.MissingID)
	e.GET("/file/", h.MissingID)
}

// MissingID rejects proxy requests with no file identifier before any
// upstream call is made.
func (h *FileHandler) MissingID(c echo.Context) error {
	return echo.NewHTTPError(http.StatusBadRequest, "file_id is required")
}

func (h *FileHandler) Handle(c echo.Context) error {
	fileID := strings.TrimSpace(c.Param("file_id"))
	if fileID == "" {
		return h.MissingID(c)
	}

	file, err := h.api.GetFile(c.Request().Context(), fileID)
	if err != nil {
		return upstreamError(err)
	}
	if file.FilePath == "" {
		// The platform resolved the id but returned no path; without it no
		// download URL exists. Distinct from an empty-string default.
		return echo.NewHTTPError(http.StatusInternalServerError, "file path unavailable")
	}
	downloadURL := h.api.FileDownloadURL(file.FilePath)

	if isFlagSet(c.QueryParam("json")) {
		return c.JSON(http.StatusOK, echo.Map{
			"status": "success",
			"file_info": fileInfo{
				FileID:       file.FileID,
				FileUniqueID: file.FileUniqueID,
				FileSize:     file.FileSize,
				FilePath:     file.FilePath,
				DownloadURL:  downloadURL,
			},
		})
	}
	if isFlagSet(c.QueryParam("stream")) {
		return h.stream(c, downloadURL)
	}
	return c.Redirect(http.StatusFound, downloadURL)
}

// stream proxies the file bytes through this service so the client never
// sees the token-bearing platform URL. Bytes are copied, never inspected.
func (h *FileHandler) stream(c echo.Context, downloadURL string) error {
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, downloadURL, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "build download request failed")
	}
	resp, err := h.httpc.Do(req)
	if err != nil {
		h.logger.Error("download request failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "file download failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return echo.NewHTTPError(http.StatusInternalServerError,
			"file download failed: upstream status "+strconv.Itoa(resp.StatusCode))
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	if resp.ContentLength > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(resp.ContentLength, 10))
	}
	return c.Stream(http.StatusOK, contentType, resp.Body)
}

// upstreamError surfaces the platform's own description; it is the most
// debuggable signal and carries no secrets.
func upstreamError(err error) error {
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		return echo.NewHTTPError(http.StatusInternalServerError, apiErr.Description)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "telegram api request failed")
}

func isFlagSet(v string) bool {
	return v == "true" || v == "1"
}
