package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-minter/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// URIConfig holds content network configuration
type URIConfig struct {
	IPFSGateway string `mapstructure:"ipfs_gateway"`
}

// ChainConfig holds the collection contract and the chain it lives on
type ChainConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	ChainID         uint64 `mapstructure:"chain_id"`
	ContractAddress string `mapstructure:"contract_address"`
}

// PinataConfig holds pinning service credentials.
// Either JWT or APIKey + APISecret must be set.
type PinataConfig struct {
	APIURL          string        `mapstructure:"api_url"`
	APIKey          string        `mapstructure:"api_key"`
	APISecret       string        `mapstructure:"api_secret"`
	JWT             string        `mapstructure:"jwt"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxResponseSize int64         `mapstructure:"max_response_size"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	ReadTimeout   int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout  int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout   int    `mapstructure:"idle_timeout"`  // in seconds
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

// AuthConfig holds authentication configuration for the relay write routes
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RateLimitConfig holds per-client limits for the pinning routes.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
}

// GalleryConfig holds token aggregation configuration
type GalleryConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	WorkerPoolSize  int           `mapstructure:"worker_pool_size"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	MaxMetadataSize int64         `mapstructure:"max_metadata_size"`
}

// WalletConfig selects and configures the wallet provider
type WalletConfig struct {
	// Mode is "key" (local private key) or "rpc" (external signer)
	Mode         string        `mapstructure:"mode"`
	PrivateKey   string        `mapstructure:"private_key"`
	SignerURL    string        `mapstructure:"signer_url"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// BatchConfig holds configuration for bulk upload and mint
type BatchConfig struct {
	AssetsDir    string        `mapstructure:"assets_dir"`
	ManifestPath string        `mapstructure:"manifest_path"`
	NamePrefix   string        `mapstructure:"name_prefix"`
	MintDelay    time.Duration `mapstructure:"mint_delay"`
}

// RelayConfig holds configuration for the pinning relay
type RelayConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Auth       AuthConfig      `mapstructure:"auth"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Pinata     PinataConfig    `mapstructure:"pinata"`
	URI        URIConfig       `mapstructure:"uri"`
	Chain      ChainConfig     `mapstructure:"chain"`
	Gallery    GalleryConfig   `mapstructure:"gallery"`
}

// MinterConfig holds configuration for the minter CLI
type MinterConfig struct {
	BaseConfig          `mapstructure:",squash"`
	RelayURL            string        `mapstructure:"relay_url"`
	ArtifactPath        string        `mapstructure:"artifact_path"`
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`
	HTTPMaxResponseSize int64         `mapstructure:"http_max_response_size"`
	Chain               ChainConfig   `mapstructure:"chain"`
	Wallet              WalletConfig  `mapstructure:"wallet"`
	URI                 URIConfig     `mapstructure:"uri"`
	Gallery             GalleryConfig `mapstructure:"gallery"`
	Batch               BatchConfig   `mapstructure:"batch"`
}

// LoadRelayConfig loads configuration for the pinning relay
func LoadRelayConfig(configFile string, envPath string) (*RelayConfig, error) {
	v := configureViper("relay", configFile, envPath)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.max_upload_size", 32<<20)
	v.SetDefault("rate_limit.requests_per_second", 2)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.idle_ttl", "10m")
	v.SetDefault("pinata.api_url", "https://api.pinata.cloud")
	v.SetDefault("pinata.timeout", "2m")
	v.SetDefault("pinata.max_response_size", 1<<20)
	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RelayConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadMinterConfig loads configuration for the minter CLI
func LoadMinterConfig(configFile string, envPath string) (*MinterConfig, error) {
	v := configureViper("minter", configFile, envPath)

	v.SetDefault("relay_url", "http://localhost:4000")
	v.SetDefault("http_timeout", "2m")
	v.SetDefault("http_max_response_size", 1<<20)
	v.SetDefault("wallet.mode", "key")
	v.SetDefault("wallet.poll_interval", "2s")
	v.SetDefault("batch.assets_dir", "assets")
	v.SetDefault("batch.manifest_path", "metadataList.json")
	v.SetDefault("batch.name_prefix", "MagaNFT")
	v.SetDefault("batch.mint_delay", "2s")
	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config MinterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("uri.ipfs_gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("gallery.refresh_interval", "30s")
	v.SetDefault("gallery.worker_pool_size", 8)
	v.SetDefault("gallery.fetch_timeout", "15s")
	v.SetDefault("gallery.max_metadata_size", 1<<20)
}

// readConfig reads the config file; a missing default config file is not an error
// because every key can come from the environment
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Validate checks the chain settings needed for read-only access
func (c *ChainConfig) Validate() error {
	var missing []string
	if c.RPCURL == "" {
		missing = append(missing, "chain.rpc_url")
	}
	if c.ChainID == 0 {
		missing = append(missing, "chain.chain_id")
	}
	if c.ContractAddress == "" {
		missing = append(missing, "chain.contract_address")
	} else if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("%w: chain.contract_address %q is not an address", domain.ErrConfig, c.ContractAddress)
	}
	return missingErr(missing)
}

// Configured reports whether any chain setting was provided
func (c *ChainConfig) Configured() bool {
	return c.RPCURL != "" || c.ContractAddress != "" || c.ChainID != 0
}

// Validate checks the pinning credentials
func (c *PinataConfig) Validate() error {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, "pinata.api_url")
	}
	if c.JWT == "" && (c.APIKey == "" || c.APISecret == "") {
		missing = append(missing, "pinata.jwt or pinata.api_key+pinata.api_secret")
	}
	return missingErr(missing)
}

// Validate checks the wallet settings
func (c *WalletConfig) Validate() error {
	switch c.Mode {
	case "key":
		if c.PrivateKey == "" {
			return missingErr([]string{"wallet.private_key"})
		}
	case "rpc":
		if c.SignerURL == "" {
			return missingErr([]string{"wallet.signer_url"})
		}
	default:
		return fmt.Errorf("%w: unsupported wallet.mode %q", domain.ErrConfig, c.Mode)
	}
	return nil
}

// Validate checks everything the relay needs to start
func (c *RelayConfig) Validate() error {
	if err := c.Pinata.Validate(); err != nil {
		return err
	}
	if c.Chain.Configured() {
		return c.Chain.Validate()
	}
	return nil
}

// Validate checks everything the minter needs to reach the relay and the chain.
// The contract address may be empty until the collection is deployed.
func (c *MinterConfig) Validate() error {
	var missing []string
	if c.RelayURL == "" {
		missing = append(missing, "relay_url")
	}
	if c.Chain.RPCURL == "" {
		missing = append(missing, "chain.rpc_url")
	}
	if c.Chain.ChainID == 0 {
		missing = append(missing, "chain.chain_id")
	}
	if err := missingErr(missing); err != nil {
		return err
	}
	if c.Chain.ContractAddress != "" && !common.IsHexAddress(c.Chain.ContractAddress) {
		return fmt.Errorf("%w: chain.contract_address %q is not an address", domain.ErrConfig, c.Chain.ContractAddress)
	}
	if c.Wallet.Mode != "key" && c.Wallet.Mode != "rpc" {
		return fmt.Errorf("%w: unsupported wallet.mode %q", domain.ErrConfig, c.Wallet.Mode)
	}
	return nil
}

func missingErr(keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrConfig, strings.Join(keys, ", "))
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_MINTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.max_upload_size",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Pinata
		"pinata.api_url",
		"pinata.api_key",
		"pinata.api_secret",
		"pinata.jwt",
		"pinata.timeout",
		"pinata.max_response_size",
		// URI
		"uri.ipfs_gateway",
		// Chain
		"chain.rpc_url",
		"chain.chain_id",
		"chain.contract_address",
		// Gallery
		"gallery.refresh_interval",
		"gallery.worker_pool_size",
		"gallery.fetch_timeout",
		"gallery.max_metadata_size",
		// Minter
		"relay_url",
		"artifact_path",
		"http_timeout",
		"http_max_response_size",
		"wallet.mode",
		"wallet.private_key",
		"wallet.signer_url",
		"wallet.poll_interval",
		"batch.assets_dir",
		"batch.manifest_path",
		"batch.name_prefix",
		"batch.mint_delay",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then the per-service local file
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
