package loggers

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	kitlog "github.com/axiomesh/axiom-kit/log"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

const (
	App            = "app"
	API            = "api"
	Executor       = "executor"
	Storage        = "storage"
	Ledger         = "ledger"
	SystemContract = "system_contract"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		App:            kitlog.NewWithModule(App),
		API:            kitlog.NewWithModule(API),
		Executor:       kitlog.NewWithModule(Executor),
		Storage:        kitlog.NewWithModule(Storage),
		Ledger:         kitlog.NewWithModule(Ledger),
		SystemContract: kitlog.NewWithModule(SystemContract),
	},
}

type LoggerWrapper struct {
	lock    sync.RWMutex
	loggers map[string]*logrus.Entry
}

func Initialize(ctx context.Context, rep *repo.Repo, persist bool) error {
	config := rep.Config
	err := kitlog.Initialize(
		kitlog.WithCtx(ctx),
		kitlog.WithEnableCompress(config.Log.EnableCompress),
		kitlog.WithReportCaller(config.Log.ReportCaller),
		kitlog.WithEnableColor(config.Log.EnableColor),
		kitlog.WithDisableTimestamp(config.Log.DisableTimestamp),
		kitlog.WithPersist(persist),
		kitlog.WithFilePath(filepath.Join(rep.RepoRoot, repo.LogsDirName)),
		kitlog.WithFileName(config.Log.Filename),
		kitlog.WithMaxAge(int(config.Log.MaxAge)),
		kitlog.WithMaxSize(int(config.Log.MaxSize)),
		kitlog.WithRotationTime(config.Log.RotationTime.ToDuration()),
	)
	if err != nil {
		return fmt.Errorf("log initialize: %w", err)
	}

	m := make(map[string]*logrus.Entry)
	m[App] = kitlog.NewWithModule(App)
	m[App].Logger.SetLevel(kitlog.ParseLevel(config.Log.Level))
	m[API] = kitlog.NewWithModule(API)
	m[API].Logger.SetLevel(kitlog.ParseLevel(config.Log.Module.API))
	m[Executor] = kitlog.NewWithModule(Executor)
	m[Executor].Logger.SetLevel(kitlog.ParseLevel(config.Log.Module.Executor))
	m[Storage] = kitlog.NewWithModule(Storage)
	m[Storage].Logger.SetLevel(kitlog.ParseLevel(config.Log.Module.Storage))
	m[Ledger] = kitlog.NewWithModule(Ledger)
	m[Ledger].Logger.SetLevel(kitlog.ParseLevel(config.Log.Module.Ledger))
	m[SystemContract] = kitlog.NewWithModule(SystemContract)
	m[SystemContract].Logger.SetLevel(kitlog.ParseLevel(config.Log.Module.SystemContract))

	w.lock.Lock()
	w.loggers = m
	w.lock.Unlock()
	InitializeEthLog(m[API])
	return nil
}

func Logger(name string) logrus.FieldLogger {
	w.lock.RLock()
	defer w.lock.RUnlock()
	if l, ok := w.loggers[name]; ok {
		return l
	}
	return kitlog.NewWithModule(name)
}
