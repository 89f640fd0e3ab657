package node

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adil14788/Epic-game/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "epicgame.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, params.SolidityVersion, cfg.Solidity)
	assert.Equal(t, params.DefaultNetwork, cfg.DefaultNetwork)
	assert.Equal(t, filepath.Join("artifacts", "contracts"), cfg.ArtifactsDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"Tony", "Spidy", "Hulk"}, cfg.Game.Names)
	assert.Equal(t, int64(10000), cfg.Game.BossHP)
	assert.Equal(t, 2, cfg.Script.Attacks)
	assert.Equal(t, uint64(0), cfg.Script.MintIndex)
	assert.Equal(t, params.ReceiptTimeout, cfg.Tx.ReceiptTimeout)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
solidity: "0.8.1"
default_network: sepolia
log_level: debug
networks:
  sepolia:
    url: https://rpc.sepolia.example
    chain_id: 11155111
    private_key_env: SEPOLIA_KEY
game:
  boss_name: Galactus
  boss_hp: 20000
script:
  mint_index: 1
  attacks: 3
tx:
  receipt_timeout: 1m
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Galactus", cfg.Game.BossName)
	assert.Equal(t, int64(20000), cfg.Game.BossHP)
	assert.Equal(t, []string{"Tony", "Spidy", "Hulk"}, cfg.Game.Names)
	assert.Equal(t, uint64(1), cfg.Script.MintIndex)
	assert.Equal(t, 3, cfg.Script.Attacks)
	assert.Equal(t, time.Minute, cfg.Tx.ReceiptTimeout)

	nc, err := cfg.Network("")
	require.NoError(t, err)
	assert.Equal(t, "sepolia", nc.Name)
	assert.Equal(t, "https://rpc.sepolia.example", nc.URL)
	assert.Equal(t, uint64(11155111), nc.ChainID)
	assert.Equal(t, "SEPOLIA_KEY", nc.PrivateKeyEnv)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("EPICGAME_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(writeConfig(t, "log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNetwork_Presets(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	nc, err := cfg.Network("localhost")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8545", nc.URL)
	assert.Equal(t, params.LocalChainID, nc.ChainID)
	assert.Equal(t, DefaultPrivateKeyEnv, nc.PrivateKeyEnv)
}

func TestNetwork_FileOverridesPreset(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
networks:
  localhost:
    url: http://127.0.0.1:9545
    keystore: /tmp/deployer.json
`))
	require.NoError(t, err)

	nc, err := cfg.Network("localhost")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9545", nc.URL)
	assert.Equal(t, params.LocalChainID, nc.ChainID)
	assert.Equal(t, "/tmp/deployer.json", nc.Keystore)
	assert.Empty(t, nc.PrivateKeyEnv)
}

func TestNetwork_Unknown(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	_, err = cfg.Network("mainnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	assert.ErrorContains(t, err, "hardhat, localhost")
}

func TestNetwork_Invalid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
networks:
  broken:
    url: http://example
`))
	require.NoError(t, err)

	_, err = cfg.Network("broken")
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}
