package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// Artifact is the subset of a compiled contract artifact needed to deploy it
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// ParseArtifact decodes a compiled contract artifact
func ParseArtifact(data []byte, j adapter.JSON) (*Artifact, abi.ABI, error) {
	var artifact Artifact
	if err := j.Unmarshal(data, &artifact); err != nil {
		return nil, abi.ABI{}, fmt.Errorf("%w: failed to decode artifact: %w", domain.ErrInvalidInput, err)
	}

	if len(artifact.ABI) == 0 {
		return nil, abi.ABI{}, fmt.Errorf("%w: artifact has no abi", domain.ErrInvalidInput)
	}
	code := strings.TrimPrefix(strings.TrimSpace(artifact.Bytecode), "0x")
	if code == "" {
		return nil, abi.ABI{}, fmt.Errorf("%w: artifact has no bytecode", domain.ErrInvalidInput)
	}

	parsed, err := abi.JSON(strings.NewReader(string(artifact.ABI)))
	if err != nil {
		return nil, abi.ABI{}, fmt.Errorf("%w: failed to parse artifact abi: %w", domain.ErrInvalidInput, err)
	}

	return &artifact, parsed, nil
}

// Deployment describes a confirmed contract deployment
type Deployment struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
}

// Deploy creates a new collection contract owned by initialOwner and waits for it to be mined
func Deploy(
	ctx context.Context,
	opts *bind.TransactOpts,
	backend adapter.EthClient,
	artifact *Artifact,
	parsed abi.ABI,
	initialOwner common.Address,
	wait WaitOptions,
) (*Deployment, error) {
	if opts == nil {
		return nil, domain.ErrNotConnected
	}

	txOpts := *opts
	txOpts.Context = ctx

	address, tx, _, err := bind.DeployContract(&txOpts, parsed, common.FromHex(artifact.Bytecode), backend, initialOwner)
	if err != nil {
		return nil, classifySubmitError(err)
	}

	logger.InfoCtx(ctx, "Deployment submitted",
		zap.String("txHash", tx.Hash().Hex()),
		zap.String("address", address.Hex()),
		zap.String("initialOwner", initialOwner.Hex()))

	receipt, err := WaitMined(ctx, backend, tx.Hash(), wait)
	if err != nil {
		return nil, err
	}

	return &Deployment{
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}
