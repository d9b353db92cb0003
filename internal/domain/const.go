package domain

const (
	// DEFAULT_IPFS_GATEWAY is the gateway used when none is configured
	DEFAULT_IPFS_GATEWAY = "https://gateway.pinata.cloud"

	// ETHEREUM_ZERO_ADDRESS is the sender of mint transfers
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// PLACEHOLDER_DESCRIPTION is shown for tokens whose metadata could not be fetched
	PLACEHOLDER_DESCRIPTION = "No metadata found."

	// Wallet (EIP-1193) error codes
	WALLET_CODE_USER_REJECTED   = 4001
	WALLET_CODE_REQUEST_PENDING = -32002
)
