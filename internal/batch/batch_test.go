package batch_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/batch"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/mocks"
	"github.com/feral-file/ff-minter/internal/wallet"
)

const (
	assetsDir    = "assets"
	manifestPath = "assets/manifest.json"
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
	fs        *mocks.MockFileSystem
	clock     *mocks.MockClock
	publisher *mocks.MockPublisher
	minter    *mocks.MockMintService
	runner    batch.Runner
}

func setupTest(t *testing.T, delay time.Duration) *testSetup {
	ctrl := gomock.NewController(t)

	ts := &testSetup{
		ctrl:      ctrl,
		fs:        mocks.NewMockFileSystem(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		minter:    mocks.NewMockMintService(ctrl),
	}
	ts.runner = batch.NewRunner(batch.Config{
		AssetsDir:    assetsDir,
		ManifestPath: manifestPath,
		MintDelay:    delay,
	}, ts.fs, adapter.NewJSON(), ts.clock, ts.publisher, ts.minter)

	return ts
}

func (ts *testSetup) teardown() {
	ts.ctrl.Finish()
}

func testSession() *wallet.Session {
	return wallet.NewSession("0xaaaa00000000000000000000000000000000aaaa", 11155111, nil, nil)
}

func TestUploadAssets(t *testing.T) {
	ts := setupTest(t, 0)
	defer ts.teardown()

	ts.fs.EXPECT().ReadDir(assetsDir).Return([]string{"a.png", "notes.txt", "b.JPG", "manifest.json"}, nil)

	gomock.InOrder(
		ts.fs.EXPECT().ReadFile("assets/a.png").Return([]byte("a"), nil),
		ts.publisher.EXPECT().PublishFile(gomock.Any(), []byte("a"), "a.png").Return("https://gw/ipfs/QmA", nil),
		ts.publisher.EXPECT().PublishMetadata(gomock.Any(), "MagaNFT #1", "Exclusive MagaNFT collection piece #1", "https://gw/ipfs/QmA").
			Return("ipfs://QmMetaA", nil),
		ts.fs.EXPECT().ReadFile("assets/b.JPG").Return([]byte("b"), nil),
		ts.publisher.EXPECT().PublishFile(gomock.Any(), []byte("b"), "b.JPG").Return("https://gw/ipfs/QmB", nil),
		ts.publisher.EXPECT().PublishMetadata(gomock.Any(), "MagaNFT #2", "Exclusive MagaNFT collection piece #2", "https://gw/ipfs/QmB").
			Return("ipfs://QmMetaB", nil),
		ts.fs.EXPECT().WriteFile(manifestPath, gomock.Any()).DoAndReturn(func(_ string, data []byte) error {
			assert.JSONEq(t, `[
				{"id":1,"image":"https://gw/ipfs/QmA","metadata":"ipfs://QmMetaA"},
				{"id":2,"image":"https://gw/ipfs/QmB","metadata":"ipfs://QmMetaB"}
			]`, string(data))
			return nil
		}),
	)

	entries, err := ts.runner.UploadAssets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []batch.ManifestEntry{
		{ID: 1, Image: "https://gw/ipfs/QmA", Metadata: "ipfs://QmMetaA"},
		{ID: 2, Image: "https://gw/ipfs/QmB", Metadata: "ipfs://QmMetaB"},
	}, entries)
}

func TestUploadAssets_NoImages(t *testing.T) {
	ts := setupTest(t, 0)
	defer ts.teardown()

	ts.fs.EXPECT().ReadDir(assetsDir).Return([]string{"notes.txt"}, nil)

	entries, err := ts.runner.UploadAssets(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadAssets_StopsOnFailure(t *testing.T) {
	ts := setupTest(t, 0)
	defer ts.teardown()

	ts.fs.EXPECT().ReadDir(assetsDir).Return([]string{"a.png", "b.png"}, nil)
	ts.fs.EXPECT().ReadFile("assets/a.png").Return([]byte("a"), nil)
	ts.publisher.EXPECT().PublishFile(gomock.Any(), []byte("a"), "a.png").Return("", domain.ErrUploadFailed)

	_, err := ts.runner.UploadAssets(context.Background())

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Contains(t, err.Error(), "a.png")
}

func TestUploadAssets_ListFailure(t *testing.T) {
	ts := setupTest(t, 0)
	defer ts.teardown()

	cause := errors.New("no such directory")
	ts.fs.EXPECT().ReadDir(assetsDir).Return(nil, cause)

	_, err := ts.runner.UploadAssets(context.Background())

	assert.ErrorIs(t, err, cause)
}

func receipt(tokenID uint64) *contract.MintReceipt {
	return &contract.MintReceipt{
		TokenID:     tokenID,
		TxHash:      common.BigToHash(common.Big1),
		BlockNumber: 100 + tokenID,
	}
}

const manifest = `[
	{"id":1,"image":"https://gw/ipfs/QmA","metadata":"ipfs://QmMetaA"},
	{"id":2,"image":"https://gw/ipfs/QmB","metadata":"ipfs://QmMetaB"}
]`

func TestMintAll(t *testing.T) {
	ts := setupTest(t, time.Second)
	defer ts.teardown()

	session := testSession()
	fired := make(chan time.Time, 1)
	fired <- time.Now()

	ts.fs.EXPECT().ReadFile(manifestPath).Return([]byte(manifest), nil)
	gomock.InOrder(
		ts.minter.EXPECT().Mint(gomock.Any(), session, "", "ipfs://QmMetaA").Return(receipt(0), nil),
		ts.clock.EXPECT().After(time.Second).Return(fired),
		ts.minter.EXPECT().Mint(gomock.Any(), session, "", "ipfs://QmMetaB").Return(receipt(1), nil),
	)

	outcomes, err := ts.runner.MintAll(context.Background(), session)

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 1, outcomes[0].Entry.ID)
	assert.Equal(t, uint64(0), outcomes[0].Receipt.TokenID)
	assert.Equal(t, 2, outcomes[1].Entry.ID)
	assert.Equal(t, uint64(1), outcomes[1].Receipt.TokenID)
}

func TestMintAll_PartialFailure(t *testing.T) {
	ts := setupTest(t, 0)
	defer ts.teardown()

	session := testSession()
	ts.fs.EXPECT().ReadFile(manifestPath).Return([]byte(manifest), nil)
	ts.minter.EXPECT().Mint(gomock.Any(), session, "", "ipfs://QmMetaA").Return(receipt(0), nil)
	ts.minter.EXPECT().Mint(gomock.Any(), session, "", "ipfs://QmMetaB").Return(nil, domain.ErrUserRejected)

	outcomes, err := ts.runner.MintAll(context.Background(), session)

	assert.ErrorIs(t, err, domain.ErrUserRejected)
	assert.Contains(t, err.Error(), "entry 2")
	require.Len(t, outcomes, 1)
	assert.Equal(t, 1, outcomes[0].Entry.ID)
}

func TestMintAll_CancelledDuringDelay(t *testing.T) {
	ts := setupTest(t, time.Minute)
	defer ts.teardown()

	ctx, cancel := context.WithCancel(context.Background())
	session := testSession()

	ts.fs.EXPECT().ReadFile(manifestPath).Return([]byte(manifest), nil)
	ts.minter.EXPECT().Mint(gomock.Any(), session, "", "ipfs://QmMetaA").
		DoAndReturn(func(context.Context, *wallet.Session, string, string) (*contract.MintReceipt, error) {
			cancel()
			return receipt(0), nil
		})
	ts.clock.EXPECT().After(time.Minute).Return(make(chan time.Time))

	outcomes, err := ts.runner.MintAll(ctx, session)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, outcomes, 1)
}

func TestMintAll_BadManifest(t *testing.T) {
	ts := setupTest(t, 0)
	defer ts.teardown()

	ts.fs.EXPECT().ReadFile(manifestPath).Return([]byte("{not a list"), nil)

	_, err := ts.runner.MintAll(context.Background(), testSession())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
