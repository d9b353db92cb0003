package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
)

// rpcProvider is an external wallet reached over JSON-RPC with the EIP-1193 method set
type rpcProvider struct {
	client adapter.RPCClient
}

// NewRPCProvider wraps a JSON-RPC connection to an external signer
func NewRPCProvider(client adapter.RPCClient) Provider {
	return &rpcProvider{client: client}
}

// RPCProviderFactory dials the signer at url when the session manager first needs it
func RPCProviderFactory(dialer adapter.RPCDialer, url string) ProviderFactory {
	return func(ctx context.Context, _ adapter.EthClient) (Provider, error) {
		if url == "" {
			return nil, domain.ErrWalletNotFound
		}
		client, err := dialer.Dial(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrWalletNotFound, err)
		}
		return NewRPCProvider(client), nil
	}
}

func (p *rpcProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, mapWalletError(err)
	}
	return accounts, nil
}

func (p *rpcProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, mapWalletError(err)
	}
	return accounts, nil
}

func (p *rpcProvider) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := p.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, mapWalletError(err)
	}
	return uint64(id), nil
}

func (p *rpcProvider) Signer(account common.Address, chainID *big.Int) (bind.SignerFn, error) {
	signer := types.LatestSignerForChainID(chainID)

	return func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if from != account {
			return nil, fmt.Errorf("%w: wallet is bound to %s", domain.ErrInvalidInput, account.Hex())
		}

		var result json.RawMessage
		// SignerFn carries no context
		if err := p.client.CallContext(context.Background(), &result, "eth_signTransaction", transactionArgs(from, chainID, tx)); err != nil {
			return nil, mapWalletError(err)
		}

		raw, err := decodeSignedTransaction(result)
		if err != nil {
			return nil, err
		}

		signed := new(types.Transaction)
		if err := signed.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("failed to decode signed transaction: %w", err)
		}

		sender, err := types.Sender(signer, signed)
		if err != nil {
			return nil, fmt.Errorf("failed to recover signer: %w", err)
		}
		if sender != account {
			return nil, fmt.Errorf("wallet signed with %s instead of %s", sender.Hex(), account.Hex())
		}

		return signed, nil
	}, nil
}

func (p *rpcProvider) Close() {
	p.client.Close()
}

// transactionArgs renders an unsigned transaction as eth_signTransaction parameters
func transactionArgs(from common.Address, chainID *big.Int, tx *types.Transaction) map[string]interface{} {
	args := map[string]interface{}{
		"from":    from,
		"nonce":   hexutil.Uint64(tx.Nonce()),
		"gas":     hexutil.Uint64(tx.Gas()),
		"value":   (*hexutil.Big)(tx.Value()),
		"input":   hexutil.Bytes(tx.Data()),
		"chainId": (*hexutil.Big)(chainID),
	}
	if tx.To() != nil {
		args["to"] = tx.To()
	}

	if tx.Type() == types.DynamicFeeTxType {
		args["maxFeePerGas"] = (*hexutil.Big)(tx.GasFeeCap())
		args["maxPriorityFeePerGas"] = (*hexutil.Big)(tx.GasTipCap())
	} else {
		args["gasPrice"] = (*hexutil.Big)(tx.GasPrice())
	}

	return args
}

// decodeSignedTransaction accepts either {"raw": "0x.."} or a bare hex string
func decodeSignedTransaction(result json.RawMessage) ([]byte, error) {
	var envelope struct {
		Raw hexutil.Bytes `json:"raw"`
	}
	if err := json.Unmarshal(result, &envelope); err == nil && len(envelope.Raw) > 0 {
		return envelope.Raw, nil
	}

	var raw hexutil.Bytes
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("unexpected eth_signTransaction result: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty eth_signTransaction result")
	}

	return raw, nil
}
