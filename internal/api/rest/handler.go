package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-minter/internal/api/shared/errors"
	"github.com/feral-file/ff-minter/internal/api/shared/executor"
	"github.com/feral-file/ff-minter/internal/logger"
)

const (
	INDEX_MESSAGE = "Pinata backend is running and ready for uploads."
	UPLOAD_FIELD  = "file"
)

// Handler defines the interface for relay HTTP handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Index confirms the relay is up
	// GET /
	Index(c *gin.Context)

	// HealthCheck returns the health status of the relay
	// GET /health
	HealthCheck(c *gin.Context)

	// Upload pins the multipart field "file"
	// POST /upload
	Upload(c *gin.Context)

	// PinMetadata pins a {name, description, image} document
	// POST /metadata
	PinMetadata(c *gin.Context)

	// ListTokens returns the gallery
	// GET /api/v1/tokens?account=<address>&mine=<bool>&q=<text>
	ListTokens(c *gin.Context)

	// RefreshTokens runs a gallery pass now
	// POST /api/v1/tokens/refresh?account=<address>&mine=<bool>&q=<text>
	RefreshTokens(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
	io       adapter.IO
}

// NewHandler creates a new relay handler using the shared executor
func NewHandler(exec executor.Executor, io adapter.IO) Handler {
	return &handler{
		executor: exec,
		io:       io,
	}
}

func (h *handler) Index(c *gin.Context) {
	c.String(http.StatusOK, INDEX_MESSAGE)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: "ff-minter-relay",
	})
}

func (h *handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile(UPLOAD_FIELD)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondRelayError(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		respondRelayError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("file", fileHeader.Filename))
		respondRelayError(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WarnCtx(c.Request.Context(), "failed to close upload", zap.Error(err))
		}
	}()

	data, err := h.io.ReadAll(file)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("file", fileHeader.Filename))
		respondRelayError(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	receipt, err := h.executor.PinUpload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) && apiErr.Code == apierrors.ErrCodeBadRequest {
			respondRelayError(c, http.StatusBadRequest, apiErr.Message)
			return
		}
		logger.ErrorCtx(c.Request.Context(), err, zap.String("file", fileHeader.Filename))
		respondRelayError(c, http.StatusInternalServerError, "Failed to upload to Pinata")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *handler) PinMetadata(c *gin.Context) {
	var req dto.PinMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	receipt, err := h.executor.PinMetadata(c.Request.Context(), req)
	if err != nil {
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			respondAPIError(c, err, "Failed to pin metadata")
			return
		}
		logger.ErrorCtx(c.Request.Context(), err, zap.String("name", req.Name))
		respondRelayError(c, http.StatusInternalServerError, "Failed to upload to Pinata")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *handler) ListTokens(c *gin.Context) {
	queryParams, err := ParseListTokensQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListTokens(c.Request.Context(), queryParams.Filter())
	if err != nil {
		respondAPIError(c, err, "Failed to list tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) RefreshTokens(c *gin.Context) {
	queryParams, err := ParseListTokensQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.RefreshTokens(c.Request.Context(), queryParams.Filter())
	if err != nil {
		respondAPIError(c, err, "Failed to refresh tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}
