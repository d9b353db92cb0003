package mint_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mint"
	"github.com/feral-file/ff-minter/internal/mocks"
	"github.com/feral-file/ff-minter/internal/wallet"
)

var (
	account   = common.HexToAddress("0xAAAA00000000000000000000000000000000aAaA")
	recipient = common.HexToAddress("0xbBbB00000000000000000000000000000000BbBb")

	noopSigner bind.SignerFn = func(_ common.Address, tx *types.Transaction) (*types.Transaction, error) {
		return tx, nil
	}
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

type testSetup struct {
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	writer    *mocks.MockContractWriter
	session   *wallet.Session
	service   mint.Service
}

func setupTest(t *testing.T) *testSetup {
	ctrl := gomock.NewController(t)

	ts := &testSetup{
		ctrl:      ctrl,
		publisher: mocks.NewMockPublisher(ctrl),
		writer:    mocks.NewMockContractWriter(ctrl),
	}

	handle := wallet.NewSigningHandle(account, noopSigner, mocks.NewMockEthClient(ctrl), ts.writer)
	ts.session = wallet.NewSession(account.Hex(), 11155111, mocks.NewMockContractReader(ctrl), handle)
	ts.service = mint.NewService(ts.publisher)

	return ts
}

func (ts *testSetup) teardown() {
	ts.ctrl.Finish()
}

func TestMint_DefaultsToSessionAccount(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	expected := &contract.MintReceipt{TokenID: 1, BlockNumber: 12}
	ts.writer.EXPECT().MintNFT(gomock.Any(), gomock.Any(), account, "ipfs://QmMeta").Return(expected, nil)

	receipt, err := ts.service.Mint(context.Background(), ts.session, "", " ipfs://QmMeta ")

	require.NoError(t, err)
	assert.Equal(t, expected, receipt)
}

func TestMint_ExplicitRecipient(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	ts.writer.EXPECT().MintNFT(gomock.Any(), gomock.Any(), recipient, "ipfs://QmMeta").
		Return(&contract.MintReceipt{TokenID: 2}, nil)

	receipt, err := ts.service.Mint(context.Background(), ts.session, recipient.Hex(), "ipfs://QmMeta")

	require.NoError(t, err)
	assert.Equal(t, uint64(2), receipt.TokenID)
}

func TestMint_NotConnected(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	wrongNetwork := &wallet.Session{
		ChainID:    1,
		NetworkErr: &domain.WrongNetworkError{Expected: 11155111, Actual: 1},
	}

	tests := []struct {
		name    string
		session *wallet.Session
	}{
		{name: "no session", session: nil},
		{name: "read-only", session: wallet.NewSession("", 0, nil, nil)},
		{name: "wrong network", session: wrongNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no writer call is expected
			_, err := ts.service.Mint(context.Background(), tt.session, "", "ipfs://QmMeta")
			assert.ErrorIs(t, err, domain.ErrNotConnected)
		})
	}

	_, err := ts.service.Mint(context.Background(), wrongNetwork, "", "ipfs://QmMeta")
	assert.ErrorIs(t, err, domain.ErrWrongNetwork)
}

func TestMint_InvalidInput(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	_, err := ts.service.Mint(context.Background(), ts.session, "0xnot-an-address", "ipfs://QmMeta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ts.service.Mint(context.Background(), ts.session, domain.ETHEREUM_ZERO_ADDRESS, "ipfs://QmMeta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ts.service.Mint(context.Background(), ts.session, "", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMint_Failure(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	ts.writer.EXPECT().MintNFT(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrUserRejected)

	_, err := ts.service.Mint(context.Background(), ts.session, "", "ipfs://QmMeta")

	assert.ErrorIs(t, err, domain.ErrUserRejected)
}

func TestMint_InProgress(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	entered := make(chan struct{})
	release := make(chan struct{})
	ts.writer.EXPECT().MintNFT(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *bind.TransactOpts, common.Address, string) (*contract.MintReceipt, error) {
			close(entered)
			<-release
			return &contract.MintReceipt{TokenID: 1}, nil
		}).Times(1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := ts.service.Mint(context.Background(), ts.session, "", "ipfs://QmOne")
		assert.NoError(t, err)
	}()

	<-entered
	_, err := ts.service.Mint(context.Background(), ts.session, "", "ipfs://QmTwo")
	assert.ErrorIs(t, err, domain.ErrActionInProgress)

	close(release)
	wg.Wait()
}

func TestMintArtwork(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	file := []byte("artwork")
	gomock.InOrder(
		ts.publisher.EXPECT().PublishFile(gomock.Any(), file, "art.png").
			Return("https://gateway.pinata.cloud/ipfs/QmImage", nil),
		ts.publisher.EXPECT().PublishMetadata(gomock.Any(), "Sunrise", "First light", "https://gateway.pinata.cloud/ipfs/QmImage").
			Return("https://gateway.pinata.cloud/ipfs/QmMeta", nil),
		ts.writer.EXPECT().MintNFT(gomock.Any(), gomock.Any(), recipient, "https://gateway.pinata.cloud/ipfs/QmMeta").
			Return(&contract.MintReceipt{TokenID: 5, BlockNumber: 99}, nil),
	)

	result, err := ts.service.MintArtwork(context.Background(), ts.session, mint.ArtworkRequest{
		File:        file,
		FileName:    "art.png",
		Name:        "Sunrise",
		Description: "First light",
		Recipient:   recipient.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmImage", result.ImageLocator)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmMeta", result.MetadataLocator)
	assert.Equal(t, uint64(5), result.Receipt.TokenID)
}

func TestMintArtwork_PublishFailureStopsMint(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	ts.publisher.EXPECT().PublishFile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("https://gateway.pinata.cloud/ipfs/QmImage", nil)
	ts.publisher.EXPECT().PublishMetadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", domain.ErrUploadFailed)

	_, err := ts.service.MintArtwork(context.Background(), ts.session, mint.ArtworkRequest{
		File: []byte("artwork"),
		Name: "Sunrise",
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestMintArtwork_Validation(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	tests := []struct {
		name    string
		session *wallet.Session
		req     mint.ArtworkRequest
		want    error
	}{
		{name: "no file", session: ts.session, req: mint.ArtworkRequest{Name: "Sunrise"}, want: domain.ErrInvalidInput},
		{name: "no title", session: ts.session, req: mint.ArtworkRequest{File: []byte("a"), Name: " "}, want: domain.ErrInvalidInput},
		{name: "bad recipient", session: ts.session, req: mint.ArtworkRequest{File: []byte("a"), Name: "Sunrise", Recipient: "bob"}, want: domain.ErrInvalidInput},
		{name: "not connected", session: wallet.NewSession("", 0, nil, nil), req: mint.ArtworkRequest{File: []byte("a"), Name: "Sunrise"}, want: domain.ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// nothing may be published
			_, err := ts.service.MintArtwork(context.Background(), tt.session, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMintArtwork_PublishInProgress(t *testing.T) {
	ts := setupTest(t)
	defer ts.teardown()

	entered := make(chan struct{})
	release := make(chan struct{})
	ts.publisher.EXPECT().PublishFile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []byte, string) (string, error) {
			close(entered)
			<-release
			return "", errors.New("relay unavailable")
		}).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := ts.service.MintArtwork(context.Background(), ts.session, mint.ArtworkRequest{File: []byte("a"), Name: "One"})
		done <- err
	}()

	<-entered
	_, err := ts.service.MintArtwork(context.Background(), ts.session, mint.ArtworkRequest{File: []byte("b"), Name: "Two"})
	assert.ErrorIs(t, err, domain.ErrActionInProgress)

	close(release)
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("publish did not finish")
	}
}
