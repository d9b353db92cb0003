package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// Config holds the session manager configuration
type Config struct {
	// TargetChainID is the chain the contract is deployed on
	TargetChainID uint64
	// PollInterval is how often Watch checks the wallet for account or chain changes
	PollInterval time.Duration
	// Wait controls transaction confirmation polling for signing handles
	Wait contract.WaitOptions
}

// Manager owns the connection to the chain and to the wallet.
// Sessions it hands out are immutable; every change publishes a new one.
//
//go:generate mockgen -source=manager.go -destination=../mocks/wallet_manager.go -package=mocks -mock_names=Manager=MockWalletManager
type Manager interface {
	// InitializeReadOnly connects to rpcEndpoint and returns a read handle on the contract at contractAddress
	InitializeReadOnly(ctx context.Context, rpcEndpoint, contractAddress string) (contract.Reader, error)

	// DetectExistingSession restores a session the wallet already authorizes, without prompting
	DetectExistingSession(ctx context.Context) (*Session, error)

	// RequestConnection prompts the wallet for account access
	RequestConnection(ctx context.Context) (*Session, error)

	// Session returns the current session, nil before InitializeReadOnly
	Session() *Session

	// Watch polls the wallet for account and chain changes until ctx is done.
	// On a change the session is discarded, re-detected and passed to onChange.
	Watch(ctx context.Context, onChange func(*Session)) error

	// Close releases the chain and wallet connections
	Close()
}

type manager struct {
	config  Config
	dialer  adapter.EthClientDialer
	factory ProviderFactory
	clock   adapter.Clock

	mu       sync.Mutex
	backend  adapter.EthClient
	reader   contract.Reader
	address  common.Address
	provider Provider

	session    atomic.Pointer[Session]
	generation atomic.Uint64
	requesting atomic.Bool
}

// NewManager creates a session manager.
// factory may be nil when no wallet is available; the manager then stays read-only.
func NewManager(config Config, dialer adapter.EthClientDialer, factory ProviderFactory, clock adapter.Clock) Manager {
	if config.Wait == (contract.WaitOptions{}) {
		config.Wait = contract.DefaultWaitOptions
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Second
	}

	return &manager{
		config:  config,
		dialer:  dialer,
		factory: factory,
		clock:   clock,
	}
}

func (m *manager) InitializeReadOnly(ctx context.Context, rpcEndpoint, contractAddress string) (contract.Reader, error) {
	var missing []string
	if strings.TrimSpace(rpcEndpoint) == "" {
		missing = append(missing, "rpc endpoint")
	}
	if !common.IsHexAddress(contractAddress) || common.HexToAddress(contractAddress) == (common.Address{}) {
		missing = append(missing, "contract address")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfig, strings.Join(missing, ", "))
	}

	backend, err := m.dialer.Dial(ctx, rpcEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcEndpoint, err)
	}

	address := common.HexToAddress(contractAddress)
	reader := contract.NewReader(address, backend)

	m.mu.Lock()
	previous := m.backend
	m.backend = backend
	m.reader = reader
	m.address = address
	m.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	m.invalidate(reader)

	logger.InfoCtx(ctx, "Read-only connection established", zap.String("contract", address.Hex()))

	return reader, nil
}

func (m *manager) DetectExistingSession(ctx context.Context) (*Session, error) {
	reader := m.readHandle()
	if reader == nil {
		return nil, fmt.Errorf("%w: read-only connection not initialized", domain.ErrConfig)
	}

	generation := m.generation.Load()

	provider, err := m.walletProvider(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return m.publish(generation, &Session{Reader: reader})
		}
		return nil, err
	}

	// A wallet that cannot be reached leaves the read-only session usable
	accounts, err := provider.Accounts(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Wallet unavailable, continuing read-only",
			zap.Error(fmt.Errorf("%w: failed to list wallet accounts: %w", domain.ErrWalletNotFound, err)))
		return m.publish(generation, &Session{Reader: reader})
	}
	if len(accounts) == 0 {
		return m.publish(generation, &Session{Reader: reader})
	}

	session, err := m.buildSession(ctx, provider, reader, accounts[0], generation+1)
	if err != nil {
		logger.WarnCtx(ctx, "Wallet unavailable, continuing read-only",
			zap.Error(fmt.Errorf("%w: %w", domain.ErrWalletNotFound, err)))
		return m.publish(generation, &Session{Reader: reader})
	}

	return m.publish(generation, session)
}

func (m *manager) RequestConnection(ctx context.Context) (*Session, error) {
	if !m.requesting.CompareAndSwap(false, true) {
		return nil, domain.ErrAlreadyPending
	}
	defer m.requesting.Store(false)

	reader := m.readHandle()
	if reader == nil {
		return nil, fmt.Errorf("%w: read-only connection not initialized", domain.ErrConfig)
	}

	generation := m.generation.Load()

	provider, err := m.walletProvider(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: wallet returned no accounts", domain.ErrUserRejected)
	}

	session, err := m.buildSession(ctx, provider, reader, accounts[0], generation+1)
	if err != nil {
		return nil, err
	}

	return m.publish(generation, session)
}

func (m *manager) Session() *Session {
	return m.session.Load()
}

func (m *manager) Watch(ctx context.Context, onChange func(*Session)) error {
	provider, err := m.walletProvider(ctx)
	if err != nil {
		return err
	}

	lastAccounts, lastChain, err := walletState(ctx, provider)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read initial wallet state", zap.Error(err))
	}

	ticker := m.clock.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
		}

		accounts, chain, err := walletState(ctx, provider)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to poll wallet state", zap.Error(err))
			continue
		}

		if slices.Equal(accounts, lastAccounts) && chain == lastChain {
			continue
		}

		logger.InfoCtx(ctx, "Wallet changed, resetting session",
			zap.Bool("accountsChanged", !slices.Equal(accounts, lastAccounts)),
			zap.Uint64("chainID", chain))

		lastAccounts, lastChain = accounts, chain
		m.invalidate(m.readHandle())

		session, err := m.DetectExistingSession(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to restore session after wallet change", zap.Error(err))
			session = m.Session()
		}

		if onChange != nil {
			onChange(session)
		}
	}
}

func (m *manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation.Add(1)
	if m.provider != nil {
		m.provider.Close()
		m.provider = nil
	}
	if m.backend != nil {
		m.backend.Close()
		m.backend = nil
	}
}

func (m *manager) readHandle() contract.Reader {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reader
}

// walletProvider creates the provider on first use
func (m *manager) walletProvider(ctx context.Context) (Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.provider != nil {
		return m.provider, nil
	}
	if m.factory == nil {
		return nil, domain.ErrWalletNotFound
	}
	if m.backend == nil {
		return nil, fmt.Errorf("%w: read-only connection not initialized", domain.ErrConfig)
	}

	provider, err := m.factory(ctx, m.backend)
	if err != nil {
		return nil, err
	}
	m.provider = provider

	return provider, nil
}

// buildSession validates the wallet's chain and binds a signing handle to account
func (m *manager) buildSession(ctx context.Context, provider Provider, reader contract.Reader, account common.Address, generation uint64) (*Session, error) {
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet chain id: %w", err)
	}

	if chainID != m.config.TargetChainID {
		logger.WarnCtx(ctx, "Wallet is on the wrong network",
			zap.Uint64("expected", m.config.TargetChainID),
			zap.Uint64("actual", chainID))

		return &Session{
			ChainID:    chainID,
			NetworkErr: &domain.WrongNetworkError{Expected: m.config.TargetChainID, Actual: chainID},
			Reader:     reader,
		}, nil
	}

	bigChainID := new(big.Int).SetUint64(chainID)
	sign, err := provider.Signer(account, bigChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	m.mu.Lock()
	backend, address := m.backend, m.address
	m.mu.Unlock()

	return &Session{
		Account: domain.NormalizeAddress(account.Hex()),
		ChainID: chainID,
		Reader:  reader,
		signer: &SigningHandle{
			account:    account,
			sign:       sign,
			backend:    backend,
			writer:     contract.NewWriter(address, backend, m.config.Wait),
			generation: generation,
			current:    &m.generation,
		},
	}, nil
}

// publish stores session unless the state changed since generation was read
func (m *manager) publish(generation uint64, session *Session) (*Session, error) {
	if !m.generation.CompareAndSwap(generation, generation+1) {
		return nil, domain.ErrSessionInvalidated
	}
	m.session.Store(session)

	return session, nil
}

// invalidate discards the current session and every signing handle issued for it
func (m *manager) invalidate(reader contract.Reader) {
	m.generation.Add(1)
	m.session.Store(&Session{Reader: reader})
}

func walletState(ctx context.Context, provider Provider) ([]common.Address, uint64, error) {
	accounts, err := provider.Accounts(ctx)
	if err != nil {
		return nil, 0, err
	}
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return nil, 0, err
	}
	return accounts, chainID, nil
}
