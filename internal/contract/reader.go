package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
)

// Reader is the read handle on the collection contract.
// It needs no wallet and every failure is reported as domain.ErrQueryFailed.
//
//go:generate mockgen -source=reader.go -destination=../mocks/contract_reader.go -package=mocks -mock_names=Reader=MockContractReader
type Reader interface {
	// Address returns the contract address
	Address() common.Address

	// GetAllTokens returns every minted token id with its metadata URI in one call
	GetAllTokens(ctx context.Context) ([]domain.TokenRecord, error)

	// OwnerOf returns the lower-case address currently holding the token
	OwnerOf(ctx context.Context, tokenID uint64) (string, error)

	// TokenURI returns the metadata URI of a token
	TokenURI(ctx context.Context, tokenID uint64) (string, error)

	// TotalMinted returns the number of tokens minted so far
	TotalMinted(ctx context.Context) (uint64, error)
}

type reader struct {
	address common.Address
	caller  ethereum.ContractCaller
}

// NewReader creates a read handle for the contract at address
func NewReader(address common.Address, caller ethereum.ContractCaller) Reader {
	return &reader{address: address, caller: caller}
}

func (r *reader) Address() common.Address {
	return r.address
}

// call packs the method call, executes it against the latest block and unpacks the outputs
func (r *reader) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsedABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to pack %s: %w", domain.ErrQueryFailed, method, err)
	}

	result, err := r.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &r.address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to call %s: %w", domain.ErrQueryFailed, method, err)
	}

	out, err := parsedABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s: %w", domain.ErrQueryFailed, method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s returned no values", domain.ErrQueryFailed, method)
	}

	return out, nil
}

func (r *reader) GetAllTokens(ctx context.Context) ([]domain.TokenRecord, error) {
	out, err := r.call(ctx, "getAllTokens")
	if err != nil {
		return nil, err
	}

	tokens := *abi.ConvertType(out[0], new([]tokenData)).(*[]tokenData)

	records := make([]domain.TokenRecord, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenId == nil || !t.TokenId.IsUint64() {
			return nil, fmt.Errorf("%w: token id %v out of range", domain.ErrQueryFailed, t.TokenId)
		}
		records = append(records, domain.TokenRecord{
			TokenID:     t.TokenId.Uint64(),
			MetadataURI: t.TokenURI,
		})
	}

	return records, nil
}

func (r *reader) OwnerOf(ctx context.Context, tokenID uint64) (string, error) {
	out, err := r.call(ctx, "ownerOf", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	owner, ok := out[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("%w: unexpected ownerOf result %T", domain.ErrQueryFailed, out[0])
	}

	return domain.NormalizeAddress(owner.Hex()), nil
}

func (r *reader) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	out, err := r.call(ctx, "tokenURI", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	uri, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: unexpected tokenURI result %T", domain.ErrQueryFailed, out[0])
	}

	return uri, nil
}

func (r *reader) TotalMinted(ctx context.Context) (uint64, error) {
	out, err := r.call(ctx, "totalMinted")
	if err != nil {
		return 0, err
	}

	total, ok := out[0].(*big.Int)
	if !ok || !total.IsUint64() {
		return 0, fmt.Errorf("%w: unexpected totalMinted result %v", domain.ErrQueryFailed, out[0])
	}

	return total.Uint64(), nil
}
