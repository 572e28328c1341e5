package repo

import "time"

const (
	AppName = "AxiomStaking"

	// CfgFileName is the default config name
	CfgFileName = "config.toml"

	genesisCfgFileName = "genesis.toml"

	// defaultRepoRoot is the path to the default config dir location.
	defaultRepoRoot = "~/.axiom-staking"

	// rootPathEnvVar is the environment variable used to change the path root.
	rootPathEnvVar = "AXIOM_STAKING_PATH"

	pidFileName = "running.pid"

	LogsDirName = "logs"
)

const (
	KVStorageTypeLeveldb = "leveldb"
	KVStorageTypePebble  = "pebble"
	KVStorageTypeMemory  = "memory"
	KVStorageCacheSize   = 16
	KVStorageSync        = true
)

const (
	// DefaultLockDuration is 90 days
	DefaultLockDuration = 7776000 * time.Second

	DefaultAssetName        = "Axiomesh Staking Token"
	DefaultAssetSymbol      = "AST"
	DefaultAssetDecimals    = 18
	DefaultAssetTotalSupply = "1000000000000000000000000000"
	DefaultAccountBalance   = "10000000000000000000000000"
)

var DefaultAccountAddrs = []string{
	"0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013",
	"0x79a1215469FaB6f9c63c1816b45183AD3624bE34",
	"0x97c8B516D19edBf575D72a172Af7F418BE498C37",
	"0xc0Ff2e0b3189132D815b8eb325bE17285AC898f8",
}

var (
	BuildDate    = ""
	BuildVersion = "dev"
	BuildCommit  = ""
	BuildBranch  = ""
	GoVersion    = ""
	Platform     = ""
)
