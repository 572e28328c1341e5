package repo

import (
	"math/big"
	"os"
	"path"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type GenesisConfig struct {
	Asset    GenesisAsset   `mapstructure:"asset" toml:"asset"`
	Staking  GenesisStaking `mapstructure:"staking" toml:"staking"`
	Accounts []*Account     `mapstructure:"accounts" toml:"accounts"`
}

type GenesisAsset struct {
	Name     string `mapstructure:"name" toml:"name"`
	Symbol   string `mapstructure:"symbol" toml:"symbol"`
	Decimals uint8  `mapstructure:"decimals" toml:"decimals"`

	// decimal string, the part not assigned to accounts stays in the asset contract
	TotalSupply string `mapstructure:"total_supply" toml:"total_supply"`
}

type GenesisStaking struct {
	LockDuration Duration `mapstructure:"lock_duration" toml:"lock_duration"`
	EnableBadge  bool     `mapstructure:"enable_badge" toml:"enable_badge"`
}

type Account struct {
	Address string `mapstructure:"address" toml:"address"`
	Balance string `mapstructure:"balance" toml:"balance"`
}

func DefaultGenesisConfig() *GenesisConfig {
	return &GenesisConfig{
		Asset: GenesisAsset{
			Name:        DefaultAssetName,
			Symbol:      DefaultAssetSymbol,
			Decimals:    DefaultAssetDecimals,
			TotalSupply: DefaultAssetTotalSupply,
		},
		Staking: GenesisStaking{
			LockDuration: Duration(DefaultLockDuration),
			EnableBadge:  true,
		},
		Accounts: lo.Map(DefaultAccountAddrs, func(item string, _ int) *Account {
			return &Account{
				Address: item,
				Balance: DefaultAccountBalance,
			}
		}),
	}
}

// Validate checks that the genesis can be applied as is.
func (g *GenesisConfig) Validate() error {
	totalSupply, ok := new(big.Int).SetString(g.Asset.TotalSupply, 10)
	if !ok || totalSupply.Sign() < 0 {
		return errors.Errorf("invalid asset total supply: %s", g.Asset.TotalSupply)
	}
	if g.Staking.LockDuration.ToDuration() < 0 {
		return errors.Errorf("invalid lock duration: %s", g.Staking.LockDuration.String())
	}

	assigned := big.NewInt(0)
	for _, account := range g.Accounts {
		if !ethcommon.IsHexAddress(account.Address) {
			return errors.Errorf("invalid account address: %s", account.Address)
		}
		balance, ok := new(big.Int).SetString(account.Balance, 10)
		if !ok || balance.Sign() < 0 {
			return errors.Errorf("invalid balance %s for account %s", account.Balance, account.Address)
		}
		assigned.Add(assigned, balance)
	}
	if assigned.Cmp(totalSupply) > 0 {
		return errors.Errorf("account balances %s exceed total supply %s", assigned.String(), totalSupply.String())
	}
	return nil
}

func LoadGenesisConfig(repoRoot string) (*GenesisConfig, error) {
	genesis, err := func() (*GenesisConfig, error) {
		genesis := DefaultGenesisConfig()
		cfgPath := path.Join(repoRoot, genesisCfgFileName)
		if !fileExist(cfgPath) {
			if err := os.MkdirAll(repoRoot, 0755); err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}

			if err := writeConfigWithEnv(cfgPath, genesis); err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}
		} else {
			if err := readConfigFromFile(cfgPath, genesis); err != nil {
				return nil, err
			}
		}
		if err := genesis.Validate(); err != nil {
			return nil, err
		}
		return genesis, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load genesis config")
	}
	return genesis, nil
}
