package wallet

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
)

// Session is an immutable snapshot of the wallet connection.
// The manager replaces it wholesale on every connection, account or network change.
type Session struct {
	// Account is the lower-case connected address, empty when not connected
	Account string
	// ChainID is the chain the wallet reported, zero when unknown
	ChainID uint64
	// NetworkErr is a *domain.WrongNetworkError when the wallet is on another chain
	NetworkErr error
	// Reader queries the contract without a wallet
	Reader contract.Reader

	signer *SigningHandle
}

// Connected reports whether the session can sign
func (s *Session) Connected() bool {
	return s != nil && s.signer != nil
}

// Signer returns the signing handle, or nil when the session is read-only
func (s *Session) Signer() *SigningHandle {
	if s == nil {
		return nil
	}
	return s.signer
}

// SigningHandle is the capability to send transactions from one account.
// It stops working as soon as the session it belongs to is discarded.
type SigningHandle struct {
	account    common.Address
	sign       bind.SignerFn
	backend    adapter.EthClient
	writer     contract.Writer
	generation uint64
	current    *atomic.Uint64
}

// NewSession creates a session snapshot; signer may be nil for a read-only session
func NewSession(account string, chainID uint64, reader contract.Reader, signer *SigningHandle) *Session {
	return &Session{
		Account: domain.NormalizeAddress(account),
		ChainID: chainID,
		Reader:  reader,
		signer:  signer,
	}
}

// NewSigningHandle creates a handle that is not owned by a Manager and never expires
func NewSigningHandle(account common.Address, sign bind.SignerFn, backend adapter.EthClient, writer contract.Writer) *SigningHandle {
	return &SigningHandle{
		account: account,
		sign:    sign,
		backend: backend,
		writer:  writer,
		current: new(atomic.Uint64),
	}
}

// Account returns the signing account
func (h *SigningHandle) Account() common.Address {
	return h.account
}

// Backend returns the chain connection transactions are sent through
func (h *SigningHandle) Backend() adapter.EthClient {
	return h.backend
}

// Valid reports whether the handle still belongs to the current session
func (h *SigningHandle) Valid() bool {
	return h.current.Load() == h.generation
}

// TransactOpts returns transaction options signed by this handle's account.
// The signer re-checks validity so options captured before a change fail too.
func (h *SigningHandle) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if !h.Valid() {
		return nil, domain.ErrSessionInvalidated
	}

	return &bind.TransactOpts{
		From:    h.account,
		Context: ctx,
		Signer: func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if !h.Valid() {
				return nil, domain.ErrSessionInvalidated
			}
			return h.sign(from, tx)
		},
	}, nil
}

// MintNFT mints a token with tokenURI to recipient and waits for confirmation
func (h *SigningHandle) MintNFT(ctx context.Context, recipient common.Address, tokenURI string) (*contract.MintReceipt, error) {
	opts, err := h.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := h.writer.MintNFT(ctx, opts, recipient, tokenURI)
	if err != nil {
		return nil, fmt.Errorf("mint from %s: %w", h.account.Hex(), err)
	}

	return receipt, nil
}
