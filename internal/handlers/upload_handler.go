package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"bloodbank-backend/internal/middleware"
	"bloodbank-backend/internal/storage"
	"bloodbank-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UploadFormField is the multipart field carrying the file.
const UploadFormField = "file"

// FileSaver stores one uploaded file and returns its public URL.
type FileSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type UploadHandler struct {
	files    FileSaver
	maxBytes int64
	log      zerolog.Logger
}

// NewUploadHandler caps request bodies at maxBytes; 0 means no cap.
func NewUploadHandler(files FileSaver, maxBytes int64, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{files: files, maxBytes: maxBytes, log: log}
}

// UploadFile handles POST /api/upload. The returned fileUrl is meant to be
// sent back later as medical_report_url when creating a request.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	fh, err := c.FormFile(UploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.MessageResponse(c, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		utils.MessageResponse(c, http.StatusBadRequest, "Please upload a valid file")
		return
	}

	url, err := h.files.Save(fh)
	if err != nil {
		var rejected *storage.RejectedError
		if errors.As(err, &rejected) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unsupported file type", rejected)
			return
		}

		h.log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("filename", fh.Filename).
			Msg("failed to store upload")
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store file", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fileUrl": url})
}
