package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/batch"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/gallery"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mint"
	"github.com/feral-file/ff-minter/internal/publish"
	"github.com/feral-file/ff-minter/internal/uri"
	"github.com/feral-file/ff-minter/internal/wallet"
)

// app wires the minter's dependencies for one command
type app struct {
	clock     adapter.Clock
	fs        adapter.FileSystem
	json      adapter.JSON
	resolver  uri.Resolver
	manager   wallet.Manager
	publisher publish.Publisher
	minter    mint.Service
}

func newApp() *app {
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	resolver := uri.NewResolver(&uri.Config{IPFSGateway: cfg.URI.IPFSGateway})

	var factory wallet.ProviderFactory
	switch cfg.Wallet.Mode {
	case "key":
		if cfg.Wallet.PrivateKey != "" {
			factory = wallet.KeyedProviderFactory(cfg.Wallet.PrivateKey)
		}
	case "rpc":
		factory = wallet.RPCProviderFactory(adapter.NewRPCDialer(), cfg.Wallet.SignerURL)
	}

	manager := wallet.NewManager(
		wallet.Config{
			TargetChainID: cfg.Chain.ChainID,
			PollInterval:  cfg.Wallet.PollInterval,
		},
		adapter.NewEthClientDialer(),
		factory,
		clock,
	)

	publisher := publish.NewRelayPublisher(
		publish.Config{RelayURL: cfg.RelayURL},
		adapter.NewHTTPClient(cfg.HTTPTimeout, cfg.HTTPMaxResponseSize),
		jsonAdapter,
		resolver,
	)

	return &app{
		clock:     clock,
		fs:        adapter.NewFileSystem(),
		json:      jsonAdapter,
		resolver:  resolver,
		manager:   manager,
		publisher: publisher,
		minter:    mint.NewService(publisher),
	}
}

// session connects read-only, then restores or requests a wallet session
func (a *app) session(ctx context.Context, prompt bool) (*wallet.Session, error) {
	if _, err := a.manager.InitializeReadOnly(ctx, cfg.Chain.RPCURL, cfg.Chain.ContractAddress); err != nil {
		return nil, err
	}

	session, err := a.manager.DetectExistingSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.Connected() || session.NetworkErr != nil || !prompt {
		return session, nil
	}

	return a.manager.RequestConnection(ctx)
}

// watchWallet returns a context cancelled when the wallet changes account or network.
// Work bound to it stops instead of continuing with a discarded session.
func (a *app) watchWallet(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(ctx)

	go func() {
		err := a.manager.Watch(ctx, func(*wallet.Session) {
			cancel(domain.ErrSessionInvalidated)
		})
		if err != nil && !errors.Is(err, domain.ErrWalletNotFound) {
			logger.WarnCtx(ctx, "Wallet watcher stopped", zap.Error(err))
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}

// interrupted reports err as a session invalidation when the wallet changed under ctx
func interrupted(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if cause := context.Cause(ctx); errors.Is(cause, domain.ErrSessionInvalidated) && !errors.Is(err, cause) {
		return fmt.Errorf("%w: %w", cause, err)
	}
	return err
}

func (a *app) aggregator(session *wallet.Session) gallery.Aggregator {
	return gallery.NewAggregator(
		gallery.Config{
			WorkerPoolSize: cfg.Gallery.WorkerPoolSize,
			FetchTimeout:   cfg.Gallery.FetchTimeout,
		},
		session.Reader,
		adapter.NewHTTPClient(cfg.Gallery.FetchTimeout, cfg.Gallery.MaxMetadataSize),
		a.resolver,
	)
}

func (a *app) batch() batch.Runner {
	return batch.NewRunner(
		batch.Config{
			AssetsDir:    cfg.Batch.AssetsDir,
			ManifestPath: cfg.Batch.ManifestPath,
			NamePrefix:   cfg.Batch.NamePrefix,
			MintDelay:    cfg.Batch.MintDelay,
		},
		a.fs,
		a.json,
		a.clock,
		a.publisher,
		a.minter,
	)
}

func (a *app) close() {
	a.manager.Close()
}

// describe turns domain errors into the message shown to the operator
func describe(err error) string {
	var wrongNetwork *domain.WrongNetworkError
	switch {
	case errors.As(err, &wrongNetwork):
		return fmt.Sprintf("wrong network: switch the wallet to chain id %d", wrongNetwork.Expected)
	case errors.Is(err, domain.ErrConfig):
		return fmt.Sprintf("configuration error: %v", err)
	case errors.Is(err, domain.ErrWalletNotFound):
		return "no wallet available: set wallet.private_key or wallet.signer_url"
	case errors.Is(err, domain.ErrUserRejected):
		return "request rejected in the wallet"
	case errors.Is(err, domain.ErrAlreadyPending):
		return "a wallet request is already pending, respond to it first"
	case errors.Is(err, domain.ErrNotConnected):
		return fmt.Sprintf("wallet not connected: %v", err)
	case errors.Is(err, domain.ErrSessionInvalidated):
		return "the wallet changed account or network, run the command again"
	case errors.Is(err, domain.ErrUploadFailed),
		errors.Is(err, domain.ErrQueryFailed),
		errors.Is(err, domain.ErrTransactionFailed):
		return fmt.Sprintf("%v (you can retry)", err)
	default:
		return err.Error()
	}
}
