package uri_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-minter/internal/uri"
)

const cid = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		gateway  string
		locator  string
		expected string
	}{
		{
			name:     "ipfs scheme",
			gateway:  "https://gateway.pinata.cloud",
			locator:  "ipfs://" + cid,
			expected: "https://gateway.pinata.cloud/ipfs/" + cid,
		},
		{
			name:     "ipfs scheme with path",
			gateway:  "https://gateway.pinata.cloud",
			locator:  "ipfs://" + cid + "/1.json",
			expected: "https://gateway.pinata.cloud/ipfs/" + cid + "/1.json",
		},
		{
			name:     "bare identifier",
			gateway:  "https://gateway.pinata.cloud",
			locator:  cid,
			expected: "https://gateway.pinata.cloud/ipfs/" + cid,
		},
		{
			name:     "https passes through",
			gateway:  "https://gateway.pinata.cloud",
			locator:  "https://example.com/metadata.json",
			expected: "https://example.com/metadata.json",
		},
		{
			name:     "http passes through",
			gateway:  "https://gateway.pinata.cloud",
			locator:  "http://example.com/metadata.json",
			expected: "http://example.com/metadata.json",
		},
		{
			name:     "empty stays empty",
			gateway:  "https://gateway.pinata.cloud",
			locator:  "",
			expected: "",
		},
		{
			name:     "gateway host without scheme",
			gateway:  "ipfs.io",
			locator:  "ipfs://" + cid,
			expected: "https://ipfs.io/ipfs/" + cid,
		},
		{
			name:     "gateway with trailing ipfs path",
			gateway:  "https://ipfs.io/ipfs/",
			locator:  "ipfs://" + cid,
			expected: "https://ipfs.io/ipfs/" + cid,
		},
		{
			name:     "default gateway",
			gateway:  "",
			locator:  "ipfs://" + cid,
			expected: "https://gateway.pinata.cloud/ipfs/" + cid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := uri.NewResolver(&uri.Config{IPFSGateway: tt.gateway})
			assert.Equal(t, tt.expected, r.Resolve(tt.locator))
		})
	}
}

func TestResolver_ResolveIsIdempotent(t *testing.T) {
	r := uri.NewResolver(&uri.Config{IPFSGateway: "gateway.pinata.cloud"})

	locators := []string{
		"ipfs://" + cid,
		cid,
		"https://example.com/a.png",
		"ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi/image.png",
		"",
	}

	for _, l := range locators {
		once := r.Resolve(l)
		assert.Equal(t, once, r.Resolve(once), "locator %q", l)

		if id, ok := strings.CutPrefix(l, "ipfs://"); ok {
			assert.True(t, strings.HasPrefix(once, r.Gateway()))
			assert.True(t, strings.HasSuffix(once, "/ipfs/"+id))
		}
	}
}

func TestIsResolvable(t *testing.T) {
	assert.True(t, uri.IsResolvable("ipfs://"+cid))
	assert.True(t, uri.IsResolvable("https://gateway.pinata.cloud/ipfs/"+cid))
	assert.True(t, uri.IsResolvable(cid))
	assert.False(t, uri.IsResolvable(""))
	assert.False(t, uri.IsResolvable("blob:http://localhost:5173/2f1c"))
	assert.False(t, uri.IsResolvable("file:///tmp/a.png"))
	assert.False(t, uri.IsResolvable("data:image/png;base64,AAAA"))
}

func TestIPFSURI(t *testing.T) {
	assert.Equal(t, "ipfs://"+cid, uri.IPFSURI(cid))
}
