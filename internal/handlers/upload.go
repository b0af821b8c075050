package handlers

import (
	"context"
	"errors"
	"net/http"

	"arduino_agent/internal/models"
	"arduino_agent/internal/serial"
	"arduino_agent/internal/service"
	"arduino_agent/internal/sketch"

	"github.com/gin-gonic/gin"
)

const (
	msgUploadOK       = "Upload successful"
	errMissingCode    = "Missing 'code' in request"
	errDeviceNotFound = "Arduino device not found"
	errUploadFailed   = "Upload failed"
	errAgentBusy      = "Another upload is in progress"
	errEnumerate      = "Failed to enumerate serial ports"
)

// UploadRequest is the body of POST /upload.
type UploadRequest struct {
	// Sketch source, written verbatim as the main .ino file
	Code string `json:"code" example:"void setup(){} void loop(){}"`
	// Board profile; empty uses the configured default
	FQBN string `json:"fqbn,omitempty" example:"arduino:avr:uno"`
}

// @Summary      Compile and upload a sketch
// @Description  Locates the first serial port that looks like a board, compiles the sketch and flashes it. Uploads are processed one at a time.
// @Tags         upload
// @Accept       json
// @Produce      json
// @Param        body  body      UploadRequest           true  "Sketch source"
// @Success      200   {object}  map[string]interface{}  "message, logs, port, fqbn"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]interface{}  "error, stage, logs"
// @Failure      503   {object}  map[string]string
// @Router       /upload [post]
// @Router       /api/v1/upload [post]
func (h *Handler) upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingCode})
		return
	}

	res, err := h.services.Uploader.Upload(c.Request.Context(), service.UploadParams{
		Source: req.Code,
		FQBN:   req.FQBN,
	})
	if err != nil {
		h.uploadError(c, err)
		return
	}

	if !res.Success {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": errUploadFailed,
			"stage": res.Stage,
			"logs":  res.Logs,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msgUploadOK,
		"logs":    res.Logs,
		"port":    res.Port,
		"fqbn":    res.FQBN,
	})
}

func (h *Handler) uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptySource):
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingCode})
	case errors.Is(err, serial.ErrDeviceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNotFound})
	case errors.Is(err, sketch.ErrWorkspaceIO):
		if h.log != nil {
			h.log.Errorw("upload_stage_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": errUploadFailed,
			"stage": models.StageStage,
			"logs":  err.Error(),
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logAndJSONError(c, http.StatusServiceUnavailable, errAgentBusy, "upload_slot_wait_aborted", err)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errEnumerate, "upload_locate_failed", err)
	}
}
