package pinning_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/pinning"
)

type capturedPin struct {
	headers  http.Header
	fileName string
	fileType string
	data     []byte
	metadata string
}

func newPinataServer(t *testing.T, status int, captured *[]capturedPin) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)

		*captured = append(*captured, capturedPin{
			headers:  r.Header.Clone(),
			fileName: header.Filename,
			fileType: header.Header.Get("Content-Type"),
			data:     data,
			metadata: r.FormValue("pinataMetadata"),
		})

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"IpfsHash":  "QmHash" + header.Filename,
			"PinSize":   len(data),
			"Timestamp": "2026-10-19T00:00:00Z",
		})
	}))
}

func newClient(server *httptest.Server, cfg pinning.Config) pinning.Pinner {
	cfg.APIURL = server.URL + "/"
	return pinning.NewPinataClient(cfg, adapter.NewHTTPClient(5*time.Second, 0), adapter.NewJSON(), adapter.NewJCS())
}

func TestPinataClient_PinFile(t *testing.T) {
	var captured []capturedPin
	server := newPinataServer(t, http.StatusOK, &captured)
	defer server.Close()

	client := newClient(server, pinning.Config{APIKey: "key", APISecret: "secret"})

	result, err := client.PinFile(context.Background(), "cat.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "QmHashcat.png", result.IpfsHash)
	assert.Equal(t, int64(9), result.PinSize)

	require.Len(t, captured, 1)
	assert.Equal(t, "key", captured[0].headers.Get("pinata_api_key"))
	assert.Equal(t, "secret", captured[0].headers.Get("pinata_secret_api_key"))
	assert.Empty(t, captured[0].headers.Get("Authorization"))
	assert.Equal(t, "cat.png", captured[0].fileName)
	assert.Equal(t, "image/png", captured[0].fileType)
	assert.Equal(t, []byte("png-bytes"), captured[0].data)
	assert.JSONEq(t, `{"name":"cat.png","keyvalues":{"content_type":"image/png"}}`, captured[0].metadata)
}

func TestPinataClient_PinFile_JWT(t *testing.T) {
	var captured []capturedPin
	server := newPinataServer(t, http.StatusOK, &captured)
	defer server.Close()

	client := newClient(server, pinning.Config{JWT: "token"})

	_, err := client.PinFile(context.Background(), "a.bin", "", []byte{1})
	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, "Bearer token", captured[0].headers.Get("Authorization"))
	assert.Equal(t, "application/octet-stream", captured[0].fileType)
}

func TestPinataClient_PinFile_Errors(t *testing.T) {
	var captured []capturedPin
	server := newPinataServer(t, http.StatusUnauthorized, &captured)
	defer server.Close()

	client := newClient(server, pinning.Config{JWT: "bad"})

	_, err := client.PinFile(context.Background(), "a.png", "image/png", []byte{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)

	_, err = client.PinFile(context.Background(), "empty.png", "image/png", nil)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Len(t, captured, 1, "empty files are rejected before any request")
}

func TestPinataClient_PinJSON_IsCanonical(t *testing.T) {
	var captured []capturedPin
	server := newPinataServer(t, http.StatusOK, &captured)
	defer server.Close()

	client := newClient(server, pinning.Config{JWT: "token"})

	doc := domain.MetadataDocument{Name: "Cat", Description: "A cat", Image: "ipfs://QmImage"}
	_, err := client.PinJSON(context.Background(), "metadata.json", doc)
	require.NoError(t, err)

	reordered := map[string]string{"image": "ipfs://QmImage", "name": "Cat", "description": "A cat"}
	_, err = client.PinJSON(context.Background(), "metadata.json", reordered)
	require.NoError(t, err)

	require.Len(t, captured, 2)
	assert.Equal(t, "application/json", captured[0].fileType)
	assert.Equal(t, `{"description":"A cat","image":"ipfs://QmImage","name":"Cat"}`, string(captured[0].data))
	assert.Equal(t, captured[0].data, captured[1].data)
}
