package gallery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/uri"
)

// Config holds the aggregation configuration
type Config struct {
	WorkerPoolSize int           // Concurrent per-token resolutions
	FetchTimeout   time.Duration // Timeout of one token's metadata and owner lookups
}

// Aggregator builds the gallery from the contract and the content network
//
//go:generate mockgen -source=aggregator.go -destination=../mocks/gallery_aggregator.go -package=mocks -mock_names=Aggregator=MockGalleryAggregator
type Aggregator interface {
	// ListAll returns every token record the contract knows about
	ListAll(ctx context.Context) ([]domain.TokenRecord, error)

	// Aggregate lists all tokens and resolves the metadata and owner of each.
	// Per-token failures are replaced by placeholders; only ListAll failures are returned.
	Aggregate(ctx context.Context) ([]domain.GalleryItem, error)
}

type aggregator struct {
	config     Config
	reader     contract.Reader
	httpClient adapter.HTTPClient
	resolver   uri.Resolver
}

// NewAggregator creates an aggregator reading from reader; reader may be nil until a connection exists
func NewAggregator(config Config, reader contract.Reader, httpClient adapter.HTTPClient, resolver uri.Resolver) Aggregator {
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 8
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 15 * time.Second
	}

	return &aggregator{
		config:     config,
		reader:     reader,
		httpClient: httpClient,
		resolver:   resolver,
	}
}

func (a *aggregator) ListAll(ctx context.Context) ([]domain.TokenRecord, error) {
	if a.reader == nil {
		return nil, fmt.Errorf("%w: no read handle", domain.ErrQueryFailed)
	}

	records, err := a.reader.GetAllTokens(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *aggregator) Aggregate(ctx context.Context) ([]domain.GalleryItem, error) {
	records, err := a.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.GalleryItem, len(records))

	pool := pond.NewPool(
		a.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)
	for i, record := range records {
		pool.Submit(func() {
			items[i] = a.resolveToken(ctx, record)
		})
	}
	pool.StopAndWait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Gallery aggregated", zap.Int("tokens", len(items)))

	return items, nil
}

// resolveToken fetches the metadata and owner of one token, substituting placeholders on failure
func (a *aggregator) resolveToken(ctx context.Context, record domain.TokenRecord) domain.GalleryItem {
	ctx, cancel := context.WithTimeout(ctx, a.config.FetchTimeout)
	defer cancel()

	item := domain.GalleryItem{TokenRecord: record}

	owner, err := a.reader.OwnerOf(ctx, record.TokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to resolve token owner", zap.Uint64("tokenID", record.TokenID), zap.Error(err))
		owner = ""
	}
	item.Owner = owner

	doc, err := a.fetchMetadata(ctx, record)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch token metadata",
			zap.Uint64("tokenID", record.TokenID),
			zap.String("uri", record.MetadataURI),
			zap.Error(err))
		doc = domain.PlaceholderMetadata(record.TokenID)
	}
	item.Metadata = doc
	item.ImageURL = a.resolver.Resolve(doc.Image)

	return item
}

func (a *aggregator) fetchMetadata(ctx context.Context, record domain.TokenRecord) (domain.MetadataDocument, error) {
	url := a.resolver.Resolve(record.MetadataURI)
	if url == "" {
		return domain.MetadataDocument{}, fmt.Errorf("token has no metadata uri")
	}

	var doc domain.MetadataDocument
	if err := a.httpClient.Get(ctx, url, &doc); err != nil {
		return domain.MetadataDocument{}, err
	}

	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = domain.PlaceholderName(record.TokenID)
	}

	return doc, nil
}
