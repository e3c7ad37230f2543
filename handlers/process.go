package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

type processRequest struct {
	Path    string `json:"path" form:"path"`
	Caption string `json:"caption" form:"caption"`
}

// ProcessPost enqueues a transcode-and-publish job for a video already on
// local disk. The job runs asynchronously; progress lands in the log.
func ProcessPost(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "bad request")
	}
	if req.Path == "" {
		return c.String(http.StatusBadRequest, "path is required")
	}
	if _, err := os.Stat(req.Path); err != nil {
		return c.String(http.StatusNotFound, fmt.Sprintf("no such file: %s", req.Path))
	}

	log.Infof("queueing %s", req.Path)
	submit(req.Path, filepath.Base(req.Path), req.Caption)
	return c.String(http.StatusAccepted, "queued")
}

func HealthGet(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
