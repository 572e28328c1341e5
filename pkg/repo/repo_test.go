package repo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	repoRoot := t.TempDir()
	rep, err := Load(repoRoot)
	require.Nil(t, err)
	assert.Equal(t, repoRoot, rep.RepoRoot)
	assert.FileExists(t, filepath.Join(repoRoot, CfgFileName))
	assert.FileExists(t, filepath.Join(repoRoot, genesisCfgFileName))

	rep.Config.Port.JsonRpc = 7777
	rep.GenesisConfig.Staking.EnableBadge = false
	require.Nil(t, rep.Flush())

	rep2, err := Load(repoRoot)
	require.Nil(t, err)
	assert.EqualValues(t, 7777, rep2.Config.Port.JsonRpc)
	assert.False(t, rep2.GenesisConfig.Staking.EnableBadge)

	var lines []string
	rep2.PrintNodeInfo(func(c string) {
		lines = append(lines, c)
	})
	assert.Contains(t, lines, "jsonrpc-port: 7777")
}

func TestLoadRepoRootFromEnv(t *testing.T) {
	root, err := LoadRepoRootFromEnv("/tmp/explicit")
	require.Nil(t, err)
	assert.Equal(t, "/tmp/explicit", root)

	t.Setenv(rootPathEnvVar, "/tmp/from-env")
	root, err = LoadRepoRootFromEnv("")
	require.Nil(t, err)
	assert.Equal(t, "/tmp/from-env", root)
}

func TestPid(t *testing.T) {
	repoRoot := t.TempDir()
	require.Nil(t, WritePid(repoRoot))
	assert.FileExists(t, filepath.Join(repoRoot, pidFileName))
	require.Nil(t, RemovePID(repoRoot))
	assert.NoFileExists(t, filepath.Join(repoRoot, pidFileName))
}

func TestGetStoragePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", "storage", "ledger"), GetStoragePath("/repo", "ledger"))
}

func TestMarshalConfig(t *testing.T) {
	raw, err := MarshalConfig(MockRepo(t).Config)
	require.Nil(t, err)
	assert.Contains(t, raw, "kv_type = 'memory'")
}
