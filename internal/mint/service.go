package mint

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/publish"
	"github.com/feral-file/ff-minter/internal/wallet"
)

// ArtworkRequest is a new artwork to publish and mint
type ArtworkRequest struct {
	File        []byte
	FileName    string
	Name        string
	Description string
	// Recipient defaults to the session account
	Recipient string
}

// ArtworkResult describes a minted artwork
type ArtworkResult struct {
	ImageLocator    string
	MetadataLocator string
	Receipt         *contract.MintReceipt
}

// Service mints tokens through a wallet session.
// Every call mints a new token; nothing is deduplicated or retried.
//
//go:generate mockgen -source=service.go -destination=../mocks/mint_service.go -package=mocks -mock_names=Service=MockMintService
type Service interface {
	// Mint mints a token pointing at metadataLocator to recipient and waits for it to be mined
	Mint(ctx context.Context, session *wallet.Session, recipient, metadataLocator string) (*contract.MintReceipt, error)

	// MintArtwork publishes the file, then its metadata, then mints a token for it
	MintArtwork(ctx context.Context, session *wallet.Session, req ArtworkRequest) (*ArtworkResult, error)
}

type service struct {
	publisher publish.Publisher

	minting    atomic.Bool
	publishing atomic.Bool
}

// NewService creates a mint service
func NewService(publisher publish.Publisher) Service {
	return &service{publisher: publisher}
}

func (s *service) Mint(ctx context.Context, session *wallet.Session, recipient, metadataLocator string) (*contract.MintReceipt, error) {
	signer, err := signerOf(session)
	if err != nil {
		return nil, err
	}

	to, err := recipientAddress(signer, recipient)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(metadataLocator) == "" {
		return nil, fmt.Errorf("%w: metadata locator is required", domain.ErrInvalidInput)
	}

	if !s.minting.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: minting", domain.ErrActionInProgress)
	}
	defer s.minting.Store(false)

	receipt, err := signer.MintNFT(ctx, to, strings.TrimSpace(metadataLocator))
	if err != nil {
		logger.WarnCtx(ctx, "Mint failed", zap.Error(err), zap.String("recipient", to.Hex()))
		return nil, err
	}

	logger.InfoCtx(ctx, "Token minted",
		zap.Uint64("tokenID", receipt.TokenID),
		zap.String("recipient", to.Hex()),
		zap.Uint64("block", receipt.BlockNumber))

	return receipt, nil
}

func (s *service) MintArtwork(ctx context.Context, session *wallet.Session, req ArtworkRequest) (*ArtworkResult, error) {
	if len(req.File) == 0 {
		return nil, fmt.Errorf("%w: a file is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: a title is required", domain.ErrInvalidInput)
	}

	signer, err := signerOf(session)
	if err != nil {
		return nil, err
	}
	if _, err := recipientAddress(signer, req.Recipient); err != nil {
		return nil, err
	}

	if !s.publishing.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: publishing", domain.ErrActionInProgress)
	}
	imageLocator, metadataLocator, err := s.publishArtwork(ctx, req)
	s.publishing.Store(false)
	if err != nil {
		return nil, err
	}

	receipt, err := s.Mint(ctx, session, req.Recipient, metadataLocator)
	if err != nil {
		return nil, err
	}

	return &ArtworkResult{
		ImageLocator:    imageLocator,
		MetadataLocator: metadataLocator,
		Receipt:         receipt,
	}, nil
}

// publishArtwork pins the file first so the metadata can reference it
func (s *service) publishArtwork(ctx context.Context, req ArtworkRequest) (string, string, error) {
	imageLocator, err := s.publisher.PublishFile(ctx, req.File, req.FileName)
	if err != nil {
		return "", "", err
	}

	metadataLocator, err := s.publisher.PublishMetadata(ctx, req.Name, req.Description, imageLocator)
	if err != nil {
		return "", "", err
	}

	return imageLocator, metadataLocator, nil
}

func signerOf(session *wallet.Session) (*wallet.SigningHandle, error) {
	signer := session.Signer()
	if signer != nil {
		return signer, nil
	}
	if session != nil && session.NetworkErr != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNotConnected, session.NetworkErr)
	}
	return nil, domain.ErrNotConnected
}

func recipientAddress(signer *wallet.SigningHandle, recipient string) (common.Address, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return signer.Account(), nil
	}
	if !common.IsHexAddress(recipient) {
		return common.Address{}, fmt.Errorf("%w: %q is not an address", domain.ErrInvalidInput, recipient)
	}
	if domain.SameAddress(domain.NormalizeAddress(recipient), domain.ETHEREUM_ZERO_ADDRESS) {
		return common.Address{}, fmt.Errorf("%w: cannot mint to the zero address", domain.ErrInvalidInput)
	}
	return common.HexToAddress(recipient), nil
}
