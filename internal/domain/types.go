package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// ChainFromID returns the CAIP-2 identifier of an EVM chain id
func ChainFromID(id uint64) Chain {
	return Chain(fmt.Sprintf("eip155:%d", id))
}

// TokenRecord is the contract's record of a minted token.
// TokenID and MetadataURI never change once minted; Owner is a point-in-time
// snapshot and is empty when ownership could not be resolved.
type TokenRecord struct {
	TokenID     uint64 `json:"token_id"`
	MetadataURI string `json:"token_uri"`
	Owner       string `json:"owner"`
}

// MetadataDocument is the JSON document a token URI points to
type MetadataDocument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// PlaceholderMetadata is substituted when a token's metadata cannot be fetched
func PlaceholderMetadata(tokenID uint64) MetadataDocument {
	return MetadataDocument{
		Name:        PlaceholderName(tokenID),
		Description: PLACEHOLDER_DESCRIPTION,
		Image:       "",
	}
}

// PlaceholderName is the display name of a token without a usable name
func PlaceholderName(tokenID uint64) string {
	return fmt.Sprintf("NFT #%d", tokenID)
}

// GalleryItem is a token record joined with its resolved metadata
type GalleryItem struct {
	TokenRecord
	Metadata MetadataDocument `json:"metadata"`
	// ImageURL is the gateway URL of Metadata.Image, empty when there is no image
	ImageURL string `json:"image_url"`
}

// NormalizeAddress returns the lower-case hex form of an address, or "" if it is not one
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return ""
	}
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// SameAddress compares two addresses ignoring case
func SameAddress(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// PinReceipt is the relay's answer to a successful pin
type PinReceipt struct {
	Success  bool   `json:"success"`
	IpfsHash string `json:"IpfsHash"`
	// Link is the gateway URL of the pinned content
	Link string `json:"link"`
	// URI is the ipfs:// locator, set for metadata pins
	URI string `json:"uri,omitempty"`
}
