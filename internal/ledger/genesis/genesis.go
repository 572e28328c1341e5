package genesis

import (
	"encoding/json"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-staking/internal/executor/system"
	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var genesisConfigKey = []byte("genesis_cfg")

func initializeGenesisConfig(genesis *repo.GenesisConfig, lg ledger.StateLedger) error {
	account := lg.GetOrCreateAccount(ethcommon.HexToAddress(common.ZeroAddress))

	genesisCfg, err := json.Marshal(genesis)
	if err != nil {
		return err
	}
	account.SetState(genesisConfigKey, genesisCfg)
	return nil
}

// Initialize writes the genesis state and commits it as the first version.
func Initialize(genesis *repo.GenesisConfig, lg *ledger.Ledger) error {
	if err := genesis.Validate(); err != nil {
		return err
	}
	if err := initializeGenesisConfig(genesis, lg.StateLedger); err != nil {
		return err
	}

	if err := system.New(genesis).InitGenesisData(genesis, lg.StateLedger, 0); err != nil {
		return err
	}
	lg.StateLedger.Finalise()

	if _, _, err := lg.StateLedger.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis state")
	}
	return nil
}

// GetGenesisConfig retrieves the genesis configuration from the given ledger, nil if the ledger is not initialized.
func GetGenesisConfig(lg *ledger.Ledger) (*repo.GenesisConfig, error) {
	account := lg.StateLedger.GetAccount(ethcommon.HexToAddress(common.ZeroAddress))
	if account == nil {
		return nil, nil
	}

	exist, data := account.GetState(genesisConfigKey)
	if !exist {
		return nil, nil
	}

	genesis := &repo.GenesisConfig{}
	if err := json.Unmarshal(data, genesis); err != nil {
		return nil, err
	}
	return genesis, nil
}
