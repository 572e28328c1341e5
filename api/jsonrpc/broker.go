package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

type StakingBrokerService struct {
	config    *repo.Config
	exec      executor.Executor
	rpcServer *rpc.Server
	server    *http.Server
	listener  net.Listener
	logger    logrus.FieldLogger
}

func NewStakingBrokerService(exec executor.Executor, rep *repo.Repo) (*StakingBrokerService, error) {
	logger := loggers.Logger(loggers.API)
	cbs := &StakingBrokerService{
		config:    rep.Config,
		exec:      exec,
		rpcServer: rpc.NewServer(),
		logger:    logger,
	}

	for _, api := range GetAPIs(rep, exec, logger) {
		if err := cbs.rpcServer.RegisterName(api.Namespace, api.Service); err != nil {
			return nil, errors.Wrapf(err, "register %s api", api.Namespace)
		}
	}
	return cbs, nil
}

func (cbs *StakingBrokerService) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", cbs.health).Methods(http.MethodGet)
	if cbs.config.Monitor.Enable {
		router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
	router.Handle("/", cbs.rpcServer).Methods(http.MethodPost, http.MethodGet, http.MethodOptions)

	allowedOrigins := cbs.config.JsonRPC.CorsAllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	}).Handler(router)
}

func (cbs *StakingBrokerService) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cbs.config.Port.JsonRpc))
	if err != nil {
		return errors.Wrap(err, "listen jsonrpc port")
	}
	cbs.listener = listener
	cbs.server = &http.Server{
		Handler:      cbs.Handler(),
		ReadTimeout:  cbs.config.JsonRPC.ReadTimeout.ToDuration(),
		WriteTimeout: cbs.config.JsonRPC.WriteTimeout.ToDuration(),
	}

	go func() {
		if err := cbs.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cbs.logger.WithField("err", err).Error("JSON-RPC service exited")
		}
	}()

	cbs.logger.WithFields(logrus.Fields{
		"addr":    listener.Addr().String(),
		"monitor": cbs.config.Monitor.Enable,
	}).Info("JSON-RPC service started")
	return nil
}

// Addr returns the bound address, only valid after Start.
func (cbs *StakingBrokerService) Addr() string {
	if cbs.listener == nil {
		return ""
	}
	return cbs.listener.Addr().String()
}

func (cbs *StakingBrokerService) Stop() error {
	cbs.rpcServer.Stop()
	if cbs.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cbs.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown jsonrpc server")
	}
	cbs.logger.Info("JSON-RPC service stopped")
	return nil
}

func (cbs *StakingBrokerService) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "normal",
		"version":   cbs.exec.Version(),
		"stateRoot": cbs.exec.StateRoot().Hex(),
	})
}
