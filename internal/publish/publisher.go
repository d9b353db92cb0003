package publish

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/uri"
)

// Publisher pins artwork files and their metadata through the relay
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishFile pins a file and returns its gateway locator
	PublishFile(ctx context.Context, data []byte, fileName string) (string, error)

	// PublishMetadata pins {name, description, image} and returns the document's gateway locator.
	// imageLocator must already be published.
	PublishMetadata(ctx context.Context, name, description, imageLocator string) (string, error)
}

// Config holds the relay client configuration
type Config struct {
	RelayURL string
}

type relayPublisher struct {
	config     Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
	resolver   uri.Resolver
}

// NewRelayPublisher creates a publisher that talks to the relay at config.RelayURL
func NewRelayPublisher(config Config, httpClient adapter.HTTPClient, json adapter.JSON, resolver uri.Resolver) Publisher {
	config.RelayURL = strings.TrimRight(strings.TrimSpace(config.RelayURL), "/")
	return &relayPublisher{
		config:     config,
		httpClient: httpClient,
		json:       json,
		resolver:   resolver,
	}
}

func (p *relayPublisher) PublishFile(ctx context.Context, data []byte, fileName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrUploadFailed)
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = "file"
	}

	body, contentType, err := fileForm(data, filepath.Base(fileName))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	receipt, err := p.post(ctx, "/upload", contentType, body)
	if err != nil {
		return "", err
	}

	logger.InfoCtx(ctx, "File published", zap.String("fileName", fileName), zap.String("cid", receipt.IpfsHash))

	return p.locator(receipt), nil
}

func (p *relayPublisher) PublishMetadata(ctx context.Context, name, description, imageLocator string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: metadata name is required", domain.ErrInvalidInput)
	}
	if !uri.IsResolvable(imageLocator) {
		return "", fmt.Errorf("%w: image %q is not a published locator", domain.ErrInvalidInput, imageLocator)
	}

	doc := domain.MetadataDocument{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Image:       strings.TrimSpace(imageLocator),
	}
	body, err := p.json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode metadata: %w", domain.ErrUploadFailed, err)
	}

	receipt, err := p.post(ctx, "/metadata", "application/json", body)
	if err != nil {
		return "", err
	}

	logger.InfoCtx(ctx, "Metadata published", zap.String("name", doc.Name), zap.String("cid", receipt.IpfsHash))

	return p.locator(receipt), nil
}

func (p *relayPublisher) post(ctx context.Context, path, contentType string, body []byte) (*domain.PinReceipt, error) {
	if p.config.RelayURL == "" {
		return nil, fmt.Errorf("%w: relay url", domain.ErrConfig)
	}

	respBody, err := p.httpClient.Post(ctx, p.config.RelayURL+path, contentType, bytes.NewReader(body), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	var receipt domain.PinReceipt
	if err := p.json.Unmarshal(respBody, &receipt); err != nil {
		return nil, fmt.Errorf("%w: failed to decode relay response: %w", domain.ErrUploadFailed, err)
	}
	if !receipt.Success || receipt.IpfsHash == "" {
		return nil, fmt.Errorf("%w: relay did not return a content hash", domain.ErrUploadFailed)
	}

	return &receipt, nil
}

// locator prefers the relay's gateway link and falls back to resolving the hash
func (p *relayPublisher) locator(receipt *domain.PinReceipt) string {
	if receipt.Link != "" {
		return receipt.Link
	}
	return p.resolver.Resolve(receipt.IpfsHash)
}

// fileForm builds the multipart body of an /upload request
func fileForm(data []byte, fileName string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", mimetype.Detect(data).String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
