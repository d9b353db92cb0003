package server_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/api/middleware"
	"github.com/feral-file/ff-minter/internal/api/server"
	"github.com/feral-file/ff-minter/internal/api/shared/dto"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mocks"
	"github.com/feral-file/ff-minter/internal/ratelimit"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func uploadRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "art.bin")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestRouter_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockAPIExecutor(ctrl)
	router := server.New(server.Config{MaxUploadSize: 1 << 20}, exec).Router()

	exec.EXPECT().PinUpload(gomock.Any(), "art.bin", []byte("small")).
		Return(&domain.PinReceipt{Success: true, IpfsHash: "QmSmall"}, nil)

	req := uploadRequest(t, []byte("small"))
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.REQUEST_ID_HEADER))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UploadTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No PinUpload expectation: an oversized body never reaches the executor
	exec := mocks.NewMockAPIExecutor(ctrl)
	router := server.New(server.Config{MaxUploadSize: 1024}, exec).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, bytes.Repeat([]byte("a"), 64*1024)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"File too large"}`, w.Body.String())
}

func TestRouter_Auth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockAPIExecutor(ctrl)
	router := server.New(server.Config{
		MaxUploadSize: 1 << 20,
		Auth:          middleware.AuthConfig{APIKeys: []string{"relay-key"}},
	}, exec).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, []byte("small")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health stays public
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockAPIExecutor(ctrl)
	router := server.New(server.Config{
		MaxUploadSize: 1 << 20,
		RateLimit:     ratelimit.Config{RequestsPerSecond: 0.001, Burst: 1},
	}, exec).Router()

	exec.EXPECT().PinUpload(gomock.Any(), "art.bin", []byte("small")).
		Return(&domain.PinReceipt{Success: true, IpfsHash: "QmSmall"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, []byte("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, []byte("small")))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Reads are not limited
	exec.EXPECT().ListTokens(gomock.Any(), gomock.Any()).Return(&dto.TokenListResponse{}, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tokens", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
