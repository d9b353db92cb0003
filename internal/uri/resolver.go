package uri

import (
	"strings"

	"github.com/feral-file/ff-minter/internal/domain"
)

const ipfsScheme = "ipfs://"

// Config holds configuration for the URI resolver
type Config struct {
	// IPFSGateway is the gateway host (with or without scheme) used to serve ipfs:// locators
	IPFSGateway string
}

// Resolver rewrites content locators into URLs a plain HTTP client can fetch
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Resolve maps ipfs://<cid> and bare identifiers to <gateway>/ipfs/<cid>.
	// HTTP(S) URLs are returned unchanged; the empty string stays empty.
	Resolve(locator string) string

	// Gateway returns the normalized gateway base URL
	Gateway() string
}

type resolver struct {
	gateway string
}

func NewResolver(config *Config) Resolver {
	gateway := domain.DEFAULT_IPFS_GATEWAY
	if config != nil && strings.TrimSpace(config.IPFSGateway) != "" {
		gateway = strings.TrimSpace(config.IPFSGateway)
	}
	if !isHTTP(gateway) {
		gateway = "https://" + gateway
	}
	gateway = strings.TrimSuffix(gateway, "/")
	gateway = strings.TrimSuffix(gateway, "/ipfs")

	return &resolver{gateway: gateway}
}

func (r *resolver) Gateway() string {
	return r.gateway
}

func (r *resolver) Resolve(locator string) string {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return ""
	}

	if cid, ok := strings.CutPrefix(locator, ipfsScheme); ok {
		return r.gatewayURL(cid)
	}

	if isHTTP(locator) {
		return locator
	}

	return r.gatewayURL(locator)
}

func (r *resolver) gatewayURL(cid string) string {
	return r.gateway + "/ipfs/" + cid
}

// IPFSURI returns the ipfs:// locator of a CID
func IPFSURI(cid string) string {
	return ipfsScheme + cid
}

// IsResolvable reports whether a locator points at the content network or the web
// rather than at a local or temporary resource
func IsResolvable(locator string) bool {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return false
	}
	if strings.HasPrefix(locator, ipfsScheme) || isHTTP(locator) {
		return true
	}
	// Any other scheme (blob:, file:, data:, ...) is local to the client
	return !strings.Contains(locator, ":")
}

func isHTTP(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
