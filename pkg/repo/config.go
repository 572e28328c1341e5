package repo

import (
	"encoding/json"
	"os"
	"path"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

type Duration time.Duration

func (d *Duration) MarshalText() (text []byte, err error) {
	return []byte(time.Duration(*d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	x, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(x)
	return nil
}

func StringToTimeDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Duration(5)) {
			return data, nil
		}

		d, err := time.ParseDuration(data.(string))
		if err != nil {
			return nil, err
		}
		return Duration(d), nil
	}
}

func (d *Duration) ToDuration() time.Duration {
	return time.Duration(*d)
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

type Config struct {
	Port    Port    `mapstructure:"port" toml:"port"`
	JsonRPC JsonRPC `mapstructure:"jsonrpc" toml:"jsonrpc"`
	Storage Storage `mapstructure:"storage" toml:"storage"`
	Monitor Monitor `mapstructure:"monitor" toml:"monitor"`
	Log     Log     `mapstructure:"log" toml:"log"`
}

type Port struct {
	JsonRpc int64 `mapstructure:"jsonrpc" toml:"jsonrpc"`
}

type JsonRPC struct {
	// empty means allow all origins
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins" toml:"cors_allowed_origins"`
	ReadTimeout        Duration `mapstructure:"read_timeout" toml:"read_timeout"`
	WriteTimeout       Duration `mapstructure:"write_timeout" toml:"write_timeout"`
}

type Monitor struct {
	Enable bool `mapstructure:"enable" toml:"enable"`
}

type Storage struct {
	KvType      string `mapstructure:"kv_type" toml:"kv_type"`
	KvCacheSize int    `mapstructure:"kv_cache_size" toml:"kv_cache_size"`
	Sync        bool   `mapstructure:"sync" toml:"sync"`
}

type Log struct {
	Level            string `mapstructure:"level" toml:"level"`
	Filename         string `mapstructure:"filename" toml:"filename"`
	ReportCaller     bool   `mapstructure:"report_caller" toml:"report_caller"`
	EnableColor      bool   `mapstructure:"enable_color" toml:"enable_color"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp" toml:"disable_timestamp"`
	EnableCompress   bool   `mapstructure:"enable_compress" toml:"enable_compress"`

	// unit: day
	MaxAge uint `mapstructure:"max_age" toml:"max_age"`

	// unit: MB
	MaxSize uint `mapstructure:"max_size" toml:"max_size"`

	RotationTime Duration  `mapstructure:"rotation_time" toml:"rotation_time"`
	Module       LogModule `mapstructure:"module" toml:"module"`
}

type LogModule struct {
	API            string `mapstructure:"api" toml:"api"`
	Executor       string `mapstructure:"executor" toml:"executor"`
	Storage        string `mapstructure:"storage" toml:"storage"`
	Ledger         string `mapstructure:"ledger" toml:"ledger"`
	SystemContract string `mapstructure:"system_contract" toml:"system_contract"`
}

func (c *Config) Bytes() ([]byte, error) {
	ret, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	return ret, nil
}

func DefaultConfig() *Config {
	return &Config{
		Port: Port{
			JsonRpc: 8881,
		},
		JsonRPC: JsonRPC{
			CorsAllowedOrigins: []string{},
			ReadTimeout:        Duration(10 * time.Second),
			WriteTimeout:       Duration(10 * time.Second),
		},
		Storage: Storage{
			KvType:      KVStorageTypeLeveldb,
			KvCacheSize: KVStorageCacheSize,
			Sync:        KVStorageSync,
		},
		Monitor: Monitor{
			Enable: true,
		},
		Log: Log{
			Level:            "info",
			Filename:         "axiom-staking",
			ReportCaller:     false,
			EnableColor:      true,
			DisableTimestamp: false,
			EnableCompress:   false,
			MaxAge:           30,
			MaxSize:          128,
			RotationTime:     Duration(24 * time.Hour),
			Module: LogModule{
				API:            "info",
				Executor:       "info",
				Storage:        "info",
				Ledger:         "info",
				SystemContract: "info",
			},
		},
	}
}

func LoadConfig(repoRoot string) (*Config, error) {
	cfg, err := func() (*Config, error) {
		cfg := DefaultConfig()
		cfgPath := path.Join(repoRoot, CfgFileName)
		if !fileExist(cfgPath) {
			err := os.MkdirAll(repoRoot, 0755)
			if err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}

			if err := writeConfigWithEnv(cfgPath, cfg); err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}
		} else {
			if err := CheckWritable(repoRoot); err != nil {
				return nil, err
			}
			if err := readConfigFromFile(cfgPath, cfg); err != nil {
				return nil, err
			}
		}

		return cfg, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}
