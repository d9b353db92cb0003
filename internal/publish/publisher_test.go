package publish_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mocks"
	"github.com/feral-file/ff-minter/internal/publish"
	"github.com/feral-file/ff-minter/internal/uri"
)

// 1x1 transparent PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

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

func newPublisher(relayURL string) publish.Publisher {
	return publish.NewRelayPublisher(
		publish.Config{RelayURL: relayURL},
		adapter.NewHTTPClient(5*time.Second, 0),
		adapter.NewJSON(),
		uri.NewResolver(&uri.Config{IPFSGateway: "https://gateway.example.com"}),
	)
}

func TestPublishFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)
		assert.Equal(t, pngBytes, data)
		assert.Equal(t, "art.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(`{"success":true,"IpfsHash":"QmImage","link":"https://gateway.pinata.cloud/ipfs/QmImage"}`))
	}))
	defer server.Close()

	locator, err := newPublisher(server.URL+"/").PublishFile(context.Background(), pngBytes, "/tmp/uploads/art.png")

	require.NoError(t, err)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmImage", locator)
}

func TestPublishFile_ResolvesWhenNoLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"IpfsHash":"QmImage"}`))
	}))
	defer server.Close()

	locator, err := newPublisher(server.URL).PublishFile(context.Background(), pngBytes, "art.png")

	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com/ipfs/QmImage", locator)
}

func TestPublishFile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		data   []byte
		want   error
	}{
		{name: "empty file", data: []byte{}, want: domain.ErrUploadFailed},
		{name: "relay error", status: http.StatusInternalServerError, body: `{"error":"Failed to upload to Pinata"}`, data: pngBytes, want: domain.ErrUploadFailed},
		{name: "no hash", status: http.StatusOK, body: `{"success":true}`, data: pngBytes, want: domain.ErrUploadFailed},
		{name: "not successful", status: http.StatusOK, body: `{"success":false,"IpfsHash":"QmImage"}`, data: pngBytes, want: domain.ErrUploadFailed},
		{name: "garbage", status: http.StatusOK, body: `<html>`, data: pngBytes, want: domain.ErrUploadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			locator, err := newPublisher(server.URL).PublishFile(context.Background(), tt.data, "art.png")

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, locator)
		})
	}
}

func TestPublishMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metadata", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var doc domain.MetadataDocument
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&doc)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, domain.MetadataDocument{
			Name:        "Sunrise",
			Description: "First light",
			Image:       "https://gateway.pinata.cloud/ipfs/QmImage",
		}, doc)

		_, _ = w.Write([]byte(`{"success":true,"IpfsHash":"QmMeta","link":"https://gateway.pinata.cloud/ipfs/QmMeta","uri":"ipfs://QmMeta"}`))
	}))
	defer server.Close()

	locator, err := newPublisher(server.URL).PublishMetadata(context.Background(), " Sunrise ", "First light", "https://gateway.pinata.cloud/ipfs/QmImage")

	require.NoError(t, err)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmMeta", locator)
}

func TestPublishMetadata_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no request may reach the relay
	httpClient := mocks.NewMockHTTPClient(ctrl)
	publisher := publish.NewRelayPublisher(publish.Config{RelayURL: "http://relay"}, httpClient, adapter.NewJSON(), mocks.NewMockURIResolver(ctrl))

	tests := []struct {
		name  string
		title string
		image string
	}{
		{name: "blank name", title: "  ", image: "ipfs://QmImage"},
		{name: "no image", title: "Sunrise", image: ""},
		{name: "local preview", title: "Sunrise", image: "blob:http://localhost:3000/2b8e"},
		{name: "data uri", title: "Sunrise", image: "data:image/png;base64,AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := publisher.PublishMetadata(context.Background(), tt.title, "", tt.image)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestPublish_Transport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	resolver := mocks.NewMockURIResolver(ctrl)
	publisher := publish.NewRelayPublisher(publish.Config{RelayURL: "http://relay"}, httpClient, adapter.NewJSON(), resolver)

	httpClient.EXPECT().
		Post(gomock.Any(), "http://relay/metadata", "application/json", gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("dial tcp: connection refused"))

	_, err := publisher.PublishMetadata(context.Background(), "Sunrise", "", "ipfs://QmImage")
	assert.ErrorIs(t, err, domain.ErrUploadFailed)

	httpClient.EXPECT().
		Post(gomock.Any(), "http://relay/upload", gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]byte(`{"success":true,"IpfsHash":"QmImage"}`), nil)
	resolver.EXPECT().Resolve("QmImage").Return("https://gw/ipfs/QmImage")

	locator, err := publisher.PublishFile(context.Background(), pngBytes, "")
	require.NoError(t, err)
	assert.Equal(t, "https://gw/ipfs/QmImage", locator)
}

func TestPublish_MissingRelayURL(t *testing.T) {
	_, err := newPublisher("").PublishFile(context.Background(), pngBytes, "art.png")
	assert.ErrorIs(t, err, domain.ErrConfig)
}
