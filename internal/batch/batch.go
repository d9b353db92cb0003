package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mint"
	"github.com/feral-file/ff-minter/internal/publish"
	"github.com/feral-file/ff-minter/internal/wallet"
)

// imageExtensions are the asset types picked up by UploadAssets
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Config holds the batch configuration
type Config struct {
	AssetsDir    string
	ManifestPath string
	NamePrefix   string        // Collection name used in generated metadata
	MintDelay    time.Duration // Pause between consecutive mints
}

// ManifestEntry is one published asset in the manifest file
type ManifestEntry struct {
	ID       int    `json:"id"`
	Image    string `json:"image"`
	Metadata string `json:"metadata"`
}

// MintOutcome is the result of minting one manifest entry
type MintOutcome struct {
	Entry   ManifestEntry
	Receipt *contract.MintReceipt
}

// Runner publishes a directory of assets and mints them in bulk
type Runner interface {
	// UploadAssets publishes every image in the assets directory with generated metadata
	// and writes the manifest. It stops at the first failure without writing the manifest.
	UploadAssets(ctx context.Context) ([]ManifestEntry, error)

	// MintAll mints every manifest entry to the session account, one at a time.
	// It stops at the first failure and returns the outcomes completed so far.
	MintAll(ctx context.Context, session *wallet.Session) ([]MintOutcome, error)
}

type runner struct {
	config    Config
	fs        adapter.FileSystem
	json      adapter.JSON
	clock     adapter.Clock
	publisher publish.Publisher
	minter    mint.Service
}

// NewRunner creates a batch runner
func NewRunner(config Config, fs adapter.FileSystem, json adapter.JSON, clock adapter.Clock, publisher publish.Publisher, minter mint.Service) Runner {
	if config.NamePrefix == "" {
		config.NamePrefix = "MagaNFT"
	}
	return &runner{
		config:    config,
		fs:        fs,
		json:      json,
		clock:     clock,
		publisher: publisher,
		minter:    minter,
	}
}

func (r *runner) UploadAssets(ctx context.Context) ([]ManifestEntry, error) {
	names, err := r.fs.ReadDir(r.config.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", r.config.AssetsDir, err)
	}

	var images []string
	for _, name := range names {
		if imageExtensions[strings.ToLower(filepath.Ext(name))] {
			images = append(images, name)
		}
	}

	if len(images) == 0 {
		logger.WarnCtx(ctx, "No image files found", zap.String("dir", r.config.AssetsDir))
		return []ManifestEntry{}, nil
	}

	logger.InfoCtx(ctx, "Starting bulk upload", zap.Int("files", len(images)))

	entries := make([]ManifestEntry, 0, len(images))
	for i, name := range images {
		id := i + 1
		logger.InfoCtx(ctx, "Uploading image", zap.Int("index", id), zap.Int("total", len(images)), zap.String("file", name))

		data, err := r.fs.ReadFile(filepath.Join(r.config.AssetsDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		image, err := r.publisher.PublishFile(ctx, data, name)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", name, err)
		}

		metadata, err := r.publisher.PublishMetadata(ctx,
			fmt.Sprintf("%s #%d", r.config.NamePrefix, id),
			fmt.Sprintf("Exclusive %s collection piece #%d", r.config.NamePrefix, id),
			image)
		if err != nil {
			return nil, fmt.Errorf("metadata for %s: %w", name, err)
		}

		entries = append(entries, ManifestEntry{ID: id, Image: image, Metadata: metadata})
	}

	data, err := r.json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := r.fs.WriteFile(r.config.ManifestPath, data); err != nil {
		return nil, fmt.Errorf("failed to write manifest %s: %w", r.config.ManifestPath, err)
	}

	logger.InfoCtx(ctx, "Bulk upload complete", zap.Int("entries", len(entries)), zap.String("manifest", r.config.ManifestPath))

	return entries, nil
}

func (r *runner) MintAll(ctx context.Context, session *wallet.Session) ([]MintOutcome, error) {
	data, err := r.fs.ReadFile(r.config.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", r.config.ManifestPath, err)
	}

	var entries []ManifestEntry
	if err := r.json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: malformed manifest: %w", domain.ErrInvalidInput, err)
	}

	outcomes := make([]MintOutcome, 0, len(entries))
	for i, entry := range entries {
		if i > 0 && r.config.MintDelay > 0 {
			select {
			case <-ctx.Done():
				return outcomes, ctx.Err()
			case <-r.clock.After(r.config.MintDelay):
			}
		}

		logger.InfoCtx(ctx, "Minting manifest entry", zap.Int("id", entry.ID), zap.String("metadata", entry.Metadata))

		receipt, err := r.minter.Mint(ctx, session, "", entry.Metadata)
		if err != nil {
			return outcomes, fmt.Errorf("entry %d: %w", entry.ID, err)
		}

		logger.InfoCtx(ctx, "Manifest entry minted",
			zap.Int("id", entry.ID),
			zap.Uint64("tokenID", receipt.TokenID),
			zap.Uint64("block", receipt.BlockNumber))

		outcomes = append(outcomes, MintOutcome{Entry: entry, Receipt: receipt})
	}

	return outcomes, nil
}
