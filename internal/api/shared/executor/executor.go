package executor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-minter/internal/api/shared/errors"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/gallery"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/pinning"
	"github.com/feral-file/ff-minter/internal/uri"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// PinUpload pins an uploaded file and returns its content hash and gateway link
	PinUpload(ctx context.Context, fileName string, data []byte) (*domain.PinReceipt, error)

	// PinMetadata pins a metadata document whose image is already published
	PinMetadata(ctx context.Context, req dto.PinMetadataRequest) (*domain.PinReceipt, error)

	// ListTokens returns the latest gallery snapshot filtered and sorted by filter
	ListTokens(ctx context.Context, filter gallery.Filter) (*dto.TokenListResponse, error)

	// RefreshTokens runs a gallery pass now and returns the result filtered by filter
	RefreshTokens(ctx context.Context, filter gallery.Filter) (*dto.TokenListResponse, error)
}

type executor struct {
	pinner    pinning.Pinner
	resolver  uri.Resolver
	refresher gallery.Refresher
}

// NewExecutor creates an executor. refresher may be nil when the gallery is not configured.
func NewExecutor(pinner pinning.Pinner, resolver uri.Resolver, refresher gallery.Refresher) Executor {
	return &executor{pinner: pinner, resolver: resolver, refresher: refresher}
}

func (e *executor) PinUpload(ctx context.Context, fileName string, data []byte) (*domain.PinReceipt, error) {
	if len(data) == 0 {
		return nil, apierrors.NewBadRequestError("No file uploaded")
	}

	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." {
		name = ulid.Make().String()
	}

	result, err := e.pinner.PinFile(ctx, name, mimetype.Detect(data).String(), data)
	if err != nil {
		return nil, err
	}

	return &domain.PinReceipt{
		Success:  true,
		IpfsHash: result.IpfsHash,
		Link:     e.resolver.Resolve(result.IpfsHash),
	}, nil
}

func (e *executor) PinMetadata(ctx context.Context, req dto.PinMetadataRequest) (*domain.PinReceipt, error) {
	doc := domain.MetadataDocument{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
	}

	if doc.Name == "" {
		return nil, apierrors.NewValidationError("name is required")
	}
	if !uri.IsResolvable(doc.Image) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("image %q is not a published locator", doc.Image))
	}

	result, err := e.pinner.PinJSON(ctx, "metadata-"+ulid.Make().String()+".json", doc)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Metadata pinned", zap.String("name", doc.Name), zap.String("cid", result.IpfsHash))

	return &domain.PinReceipt{
		Success:  true,
		IpfsHash: result.IpfsHash,
		Link:     e.resolver.Resolve(result.IpfsHash),
		URI:      uri.IPFSURI(result.IpfsHash),
	}, nil
}

func (e *executor) ListTokens(_ context.Context, filter gallery.Filter) (*dto.TokenListResponse, error) {
	if e.refresher == nil {
		return nil, apierrors.NewServiceError("Gallery is not configured")
	}

	return toTokenListResponse(e.refresher.Snapshot(), filter), nil
}

func (e *executor) RefreshTokens(ctx context.Context, filter gallery.Filter) (*dto.TokenListResponse, error) {
	if e.refresher == nil {
		return nil, apierrors.NewServiceError("Gallery is not configured")
	}

	if _, err := e.refresher.Refresh(ctx); err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			return nil, apierrors.NewConflictError("Gallery refresh already in progress")
		}
		return nil, apierrors.NewServiceError("Failed to refresh gallery", err.Error())
	}

	return toTokenListResponse(e.refresher.Snapshot(), filter), nil
}

func toTokenListResponse(snapshot *gallery.Snapshot, filter gallery.Filter) *dto.TokenListResponse {
	items := gallery.Apply(snapshot.Items, filter)

	response := &dto.TokenListResponse{
		Tokens:    items,
		Total:     len(items),
		Stale:     snapshot.LastError != "",
		LastError: snapshot.LastError,
	}
	if !snapshot.UpdatedAt.IsZero() {
		updatedAt := snapshot.UpdatedAt
		response.UpdatedAt = &updatedAt
	}

	return response
}
