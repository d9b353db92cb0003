package pinning

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

const (
	pinFilePath = "/pinning/pinFileToIPFS"
)

// Config holds pinning service configuration
type Config struct {
	APIURL    string
	APIKey    string
	APISecret string
	JWT       string
}

// PinResult is the pinning service's answer to a pin request
type PinResult struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Pinner pins content to IPFS through a pinning service
//
//go:generate mockgen -source=pinata.go -destination=../mocks/pinner.go -package=mocks -mock_names=Pinner=MockPinner
type Pinner interface {
	// PinFile pins raw bytes under the given display name
	PinFile(ctx context.Context, name string, contentType string, data []byte) (*PinResult, error)

	// PinJSON pins the canonical JSON encoding of doc.
	// Equal documents always produce the same bytes and therefore the same CID.
	PinJSON(ctx context.Context, name string, doc interface{}) (*PinResult, error)
}

type pinataClient struct {
	config     Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
	jcs        adapter.JCS
}

// NewPinataClient creates a Pinner backed by the Pinata REST API
func NewPinataClient(config Config, httpClient adapter.HTTPClient, json adapter.JSON, jcs adapter.JCS) Pinner {
	config.APIURL = strings.TrimSuffix(config.APIURL, "/")
	return &pinataClient{
		config:     config,
		httpClient: httpClient,
		json:       json,
		jcs:        jcs,
	}
}

type pinataMetadata struct {
	Name      string            `json:"name"`
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

type pinataOptions struct {
	CIDVersion int `json:"cidVersion"`
}

func (c *pinataClient) PinFile(ctx context.Context, name string, contentType string, data []byte) (*PinResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrUploadFailed)
	}

	meta := pinataMetadata{Name: name}
	if contentType != "" {
		meta.KeyValues = map[string]string{"content_type": contentType}
	}
	metaJSON, err := c.json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pin metadata: %w", err)
	}
	optsJSON, err := c.json.Marshal(pinataOptions{CIDVersion: 0})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pin options: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := w.WriteField("pinataMetadata", string(metaJSON)); err != nil {
		return nil, fmt.Errorf("failed to write metadata field: %w", err)
	}
	if err := w.WriteField("pinataOptions", string(optsJSON)); err != nil {
		return nil, fmt.Errorf("failed to write options field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	respBody, err := c.httpClient.Post(ctx, c.config.APIURL+pinFilePath, w.FormDataContentType(), &body, c.authHeaders())
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) {
			logger.WarnCtx(ctx, "Pinning service rejected upload",
				zap.Int("status", statusErr.StatusCode),
				zap.String("body", statusErr.Body),
				zap.String("name", name))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	var result PinResult
	if err := c.json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode pinning response: %w", domain.ErrUploadFailed, err)
	}
	if result.IpfsHash == "" {
		return nil, fmt.Errorf("%w: pinning response has no IpfsHash", domain.ErrUploadFailed)
	}

	logger.InfoCtx(ctx, "Pinned file",
		zap.String("name", name),
		zap.String("cid", result.IpfsHash),
		zap.Int64("size", result.PinSize))

	return &result, nil
}

func (c *pinataClient) PinJSON(ctx context.Context, name string, doc interface{}) (*PinResult, error) {
	raw, err := c.json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	canonical, err := c.jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}

	return c.PinFile(ctx, name, "application/json", canonical)
}

func (c *pinataClient) authHeaders() map[string]string {
	if c.config.JWT != "" {
		return map[string]string{"Authorization": "Bearer " + c.config.JWT}
	}
	return map[string]string{
		"pinata_api_key":        c.config.APIKey,
		"pinata_secret_api_key": c.config.APISecret,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
