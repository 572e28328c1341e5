package jsonrpc

import (
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/api/jsonrpc/namespaces/staking"
	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

const StakingNamespace = "staking"

// GetAPIs returns every service mounted on the rpc server
func GetAPIs(rep *repo.Repo, exec executor.Executor, logger logrus.FieldLogger) []rpc.API {
	return []rpc.API{
		{
			Namespace: StakingNamespace,
			Service:   staking.NewStakingAPI(rep, exec, logger),
		},
	}
}
