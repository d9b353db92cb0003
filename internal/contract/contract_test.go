package contract_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mocks"
)

var (
	contractAddress = common.HexToAddress("0x09BbF5B25095B83FAa1E86C415b4CC8a7027aa8f")
	ownerAddress    = common.HexToAddress("0xAbC0000000000000000000000000000000000DeF")
	fastWait        = contract.WaitOptions{InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// rpcError is a JSON-RPC error as returned by a wallet
type rpcError struct {
	code int
	msg  string
}

func (e *rpcError) Error() string  { return e.msg }
func (e *rpcError) ErrorCode() int { return e.code }

func packOutputs(t *testing.T, method string, values ...interface{}) []byte {
	t.Helper()
	data, err := contract.ABI().Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return data
}

// expectCall expects a single call of method against the contract and answers with result
func expectCall(client *mocks.MockEthClient, method string, result []byte, err error) {
	selector := contract.ABI().Methods[method].ID
	client.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			if msg.To == nil || *msg.To != contractAddress {
				return nil, errors.New("wrong contract")
			}
			if len(msg.Data) < 4 || string(msg.Data[:4]) != string(selector) {
				return nil, errors.New("wrong method")
			}
			return result, err
		})
}

func TestReader_TotalMinted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, "totalMinted", packOutputs(t, "totalMinted", big.NewInt(5)), nil)

	reader := contract.NewReader(contractAddress, client)
	total, err := reader.TotalMinted(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	assert.Equal(t, contractAddress, reader.Address())
}

func TestReader_GetAllTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	type nftData struct {
		TokenId  *big.Int
		TokenURI string
	}

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, "getAllTokens", packOutputs(t, "getAllTokens", []nftData{
		{TokenId: big.NewInt(1), TokenURI: "ipfs://QmOne"},
		{TokenId: big.NewInt(2), TokenURI: "https://gateway.example.com/ipfs/QmTwo"},
	}), nil)

	tokens, err := contract.NewReader(contractAddress, client).GetAllTokens(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.TokenRecord{
		{TokenID: 1, MetadataURI: "ipfs://QmOne"},
		{TokenID: 2, MetadataURI: "https://gateway.example.com/ipfs/QmTwo"},
	}, tokens)
}

func TestReader_GetAllTokens_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	type nftData struct {
		TokenId  *big.Int
		TokenURI string
	}

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, "getAllTokens", packOutputs(t, "getAllTokens", []nftData{}), nil)

	tokens, err := contract.NewReader(contractAddress, client).GetAllTokens(context.Background())

	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestReader_OwnerOf_LowerCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, "ownerOf", packOutputs(t, "ownerOf", ownerAddress), nil)

	owner, err := contract.NewReader(contractAddress, client).OwnerOf(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(ownerAddress.Hex()), owner)
}

func TestReader_TokenURI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, "tokenURI", packOutputs(t, "tokenURI", "ipfs://QmMeta"), nil)

	uri, err := contract.NewReader(contractAddress, client).TokenURI(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmMeta", uri)
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name   string
		result []byte
		err    error
	}{
		{name: "node error", err: errors.New("connection refused")},
		{name: "execution reverted", err: errors.New("execution reverted: ERC721NonexistentToken")},
		{name: "empty result", result: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockEthClient(ctrl)
			expectCall(client, "ownerOf", tt.result, tt.err)

			owner, err := contract.NewReader(contractAddress, client).OwnerOf(context.Background(), 1)

			assert.ErrorIs(t, err, domain.ErrQueryFailed)
			assert.Empty(t, owner)
		})
	}
}

func mintedLog(address common.Address, to common.Address, tokenID int64) *types.Log {
	return &types.Log{
		Address: address,
		Topics: []common.Hash{
			contract.ABI().Events["Minted"].ID,
			common.BytesToHash(to.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
	}
}

func transferLog(address common.Address, from, to common.Address, tokenID int64) *types.Log {
	return &types.Log{
		Address: address,
		Topics: []common.Hash{
			contract.ABI().Events["Transfer"].ID,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
	}
}

func TestMintedTokenID(t *testing.T) {
	other := common.HexToAddress("0x1111111111111111111111111111111111111111")

	tests := []struct {
		name    string
		logs    []*types.Log
		want    uint64
		wantErr bool
	}{
		{
			name: "minted event",
			logs: []*types.Log{transferLog(contractAddress, common.Address{}, ownerAddress, 4), mintedLog(contractAddress, ownerAddress, 4)},
			want: 4,
		},
		{
			name: "transfer from zero address",
			logs: []*types.Log{transferLog(contractAddress, common.Address{}, ownerAddress, 12)},
			want: 12,
		},
		{
			name:    "transfer between holders is not a mint",
			logs:    []*types.Log{transferLog(contractAddress, other, ownerAddress, 12)},
			wantErr: true,
		},
		{
			name:    "event from another contract",
			logs:    []*types.Log{mintedLog(other, ownerAddress, 1)},
			wantErr: true,
		},
		{
			name:    "no logs",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := contract.MintedTokenID(contractAddress, tt.logs)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrTransactionFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestWaitMined(t *testing.T) {
	hash := common.HexToHash("0x01")

	t.Run("polls until mined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		gomock.InOrder(
			client.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound).Times(2),
			client.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(&types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				BlockNumber: big.NewInt(100),
			}, nil),
		)

		receipt, err := contract.WaitMined(context.Background(), client, hash, fastWait)

		require.NoError(t, err)
		assert.Equal(t, uint64(100), receipt.BlockNumber.Uint64())
	})

	t.Run("reverted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		client.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(&types.Receipt{
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(100),
		}, nil)

		_, err := contract.WaitMined(context.Background(), client, hash, fastWait)

		assert.ErrorIs(t, err, domain.ErrTransactionFailed)
		assert.Contains(t, err.Error(), "reverted")
	})

	t.Run("node error is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		client.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, errors.New("boom")).Times(1)

		_, err := contract.WaitMined(context.Background(), client, hash, fastWait)

		assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, cancel := context.WithCancel(context.Background())
		client := mocks.NewMockEthClient(ctrl)
		client.EXPECT().TransactionReceipt(gomock.Any(), hash).DoAndReturn(
			func(context.Context, common.Hash) (*types.Receipt, error) {
				cancel()
				return nil, ethereum.NotFound
			}).AnyTimes()

		_, err := contract.WaitMined(ctx, client, hash, fastWait)

		assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	})
}

// transactOpts returns signing options that need no gas or nonce queries
func transactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(31337))
	require.NoError(t, err)
	opts.GasPrice = big.NewInt(1)
	opts.GasLimit = 300000
	opts.Nonce = big.NewInt(0)
	return opts
}

func TestWriter_MintNFT(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opts := transactOpts(t)
	client := mocks.NewMockEthClient(ctrl)

	var sent *types.Transaction
	client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
			assert.Equal(t, sent.Hash(), hash)
			return &types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				BlockNumber: big.NewInt(42),
				Logs:        []*types.Log{mintedLog(contractAddress, ownerAddress, 7)},
			}, nil
		})

	writer := contract.NewWriter(contractAddress, client, fastWait)
	receipt, err := writer.MintNFT(context.Background(), opts, ownerAddress, "ipfs://QmMeta")

	require.NoError(t, err)
	assert.Equal(t, uint64(7), receipt.TokenID)
	assert.Equal(t, uint64(42), receipt.BlockNumber)
	assert.Equal(t, sent.Hash(), receipt.TxHash)

	require.NotNil(t, sent.To())
	assert.Equal(t, contractAddress, *sent.To())
	args, err := contract.ABI().Methods["mintNFT"].Inputs.Unpack(sent.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, ownerAddress, args[0])
	assert.Equal(t, "ipfs://QmMeta", args[1])
}

func TestWriter_MintNFT_Errors(t *testing.T) {
	tests := []struct {
		name      string
		signerErr error
		sendErr   error
		want      error
	}{
		{
			name:      "wallet rejects",
			signerErr: &rpcError{code: domain.WALLET_CODE_USER_REJECTED, msg: "User denied transaction signature"},
			want:      domain.ErrUserRejected,
		},
		{
			name:      "stale session",
			signerErr: domain.ErrSessionInvalidated,
			want:      domain.ErrSessionInvalidated,
		},
		{
			name:    "node rejects",
			sendErr: errors.New("insufficient funds for gas * price + value"),
			want:    domain.ErrTransactionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			opts := transactOpts(t)
			if tt.signerErr != nil {
				opts.Signer = func(common.Address, *types.Transaction) (*types.Transaction, error) {
					return nil, tt.signerErr
				}
			}

			client := mocks.NewMockEthClient(ctrl)
			if tt.sendErr != nil {
				client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(tt.sendErr)
			}

			_, err := contract.NewWriter(contractAddress, client, fastWait).
				MintNFT(context.Background(), opts, ownerAddress, "ipfs://QmMeta")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriter_MintNFT_NoSigner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	_, err := contract.NewWriter(contractAddress, client, fastWait).
		MintNFT(context.Background(), nil, ownerAddress, "ipfs://QmMeta")

	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestParseArtifact(t *testing.T) {
	j := adapter.NewJSON()

	artifact, parsed, err := contract.ParseArtifact([]byte(`{
		"contractName": "MagaNFT",
		"abi": `+contract.CollectionABI+`,
		"bytecode": "0x6080"
	}`), j)
	require.NoError(t, err)
	assert.Equal(t, "MagaNFT", artifact.ContractName)
	assert.Contains(t, parsed.Methods, "mintNFT")

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `nope`},
		{name: "no abi", data: `{"bytecode":"0x6080"}`},
		{name: "no bytecode", data: `{"abi":[],"bytecode":"0x"}`},
		{name: "bad abi", data: `{"abi":{"type":1},"bytecode":"0x6080"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := contract.ParseArtifact([]byte(tt.data), j)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestDeploy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opts := transactOpts(t)
	client := mocks.NewMockEthClient(ctrl)

	var sent *types.Transaction
	client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(9),
	}, nil)

	artifact := &contract.Artifact{ContractName: "MagaNFT", Bytecode: "0x6080"}
	deployment, err := contract.Deploy(context.Background(), opts, client, artifact, contract.ABI(), ownerAddress, fastWait)

	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(opts.From, 0), deployment.Address)
	assert.Equal(t, uint64(9), deployment.BlockNumber)
	assert.Nil(t, sent.To())
	assert.Equal(t, common.FromHex("0x6080"), sent.Data()[:2])
}
