package node

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adil14788/Epic-game/game"
	"github.com/adil14788/Epic-game/params"
	"github.com/spf13/viper"
)

var (
	ErrUnknownNetwork = errors.New("unknown network")
	ErrInvalidNetwork = errors.New("invalid network config")
)

const (
	envPrefix = "EPICGAME"

	// DefaultPrivateKeyEnv holds the deployer key when a network names none.
	DefaultPrivateKeyEnv = "EPICGAME_PRIVATE_KEY"

	// WalletPasswordEnv unlocks keystore files.
	WalletPasswordEnv = "EPICGAME_WALLET_PASSWORD"
)

type Config struct {
	Solidity       string                   `mapstructure:"solidity" yaml:"solidity"`
	DefaultNetwork string                   `mapstructure:"default_network" yaml:"default_network"`
	ArtifactsDir   string                   `mapstructure:"artifacts_dir" yaml:"artifacts_dir"`
	DataDir        string                   `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel       string                   `mapstructure:"log_level" yaml:"log_level"`
	ProgressAddr   string                   `mapstructure:"progress_addr" yaml:"progress_addr"`
	Networks       map[string]NetworkConfig `mapstructure:"networks" yaml:"networks"`
	Game           game.Roster              `mapstructure:"game" yaml:"game"`
	Script         ScriptConfig             `mapstructure:"script" yaml:"script"`
	Tx             TxConfig                 `mapstructure:"tx" yaml:"tx"`
}

// NetworkConfig is one RPC endpoint plus where its signing key comes from.
// Keys themselves never live in the config file.
type NetworkConfig struct {
	Name          string `mapstructure:"-" yaml:"-"`
	URL           string `mapstructure:"url" yaml:"url"`
	ChainID       uint64 `mapstructure:"chain_id" yaml:"chain_id"`
	PrivateKeyEnv string `mapstructure:"private_key_env" yaml:"private_key_env,omitempty"`
	Keystore      string `mapstructure:"keystore" yaml:"keystore,omitempty"`
}

type ScriptConfig struct {
	MintIndex uint64 `mapstructure:"mint_index" yaml:"mint_index"`
	Attacks   int    `mapstructure:"attacks" yaml:"attacks"`
}

type TxConfig struct {
	ReceiptTimeout      time.Duration `mapstructure:"receipt_timeout" yaml:"receipt_timeout"`
	GasPriceBumpPercent int64         `mapstructure:"gas_price_bump_percent" yaml:"gas_price_bump_percent"`
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".epicgame"
	}
	return filepath.Join(home, ".epicgame")
}

// LoadConfig reads path, or searches epicgame.yaml in the usual places when
// path is empty. A missing file in search mode is fine; defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("epicgame")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath(DefaultDataDir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solidity", params.SolidityVersion)
	v.SetDefault("default_network", params.DefaultNetwork)
	v.SetDefault("artifacts_dir", filepath.Join("artifacts", "contracts"))
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("progress_addr", "")

	roster := game.DefaultRoster()
	v.SetDefault("game.names", roster.Names)
	v.SetDefault("game.image_uris", roster.ImageURIs)
	v.SetDefault("game.hp", roster.HP)
	v.SetDefault("game.attack_damage", roster.AttackDamage)
	v.SetDefault("game.boss_name", roster.BossName)
	v.SetDefault("game.boss_image_uri", roster.BossImageURI)
	v.SetDefault("game.boss_hp", roster.BossHP)
	v.SetDefault("game.boss_attack_damage", roster.BossAttackDamage)

	v.SetDefault("script.mint_index", params.DefaultMintIndex)
	v.SetDefault("script.attacks", params.DefaultAttacks)

	v.SetDefault("tx.receipt_timeout", params.ReceiptTimeout)
	v.SetDefault("tx.gas_price_bump_percent", params.GasPriceBumpPercent)
}

// Network resolves name against the built-in presets and the configured
// networks. Configured fields override preset fields. An empty name means
// the default network.
func (c *Config) Network(name string) (NetworkConfig, error) {
	if name == "" {
		name = c.DefaultNetwork
	}

	var nc NetworkConfig
	found := false

	if p, ok := params.Presets()[name]; ok {
		nc = NetworkConfig{URL: p.URL, ChainID: p.ChainID}
		found = true
	}
	if fc, ok := c.lookupNetwork(name); ok {
		if fc.URL != "" {
			nc.URL = fc.URL
		}
		if fc.ChainID != 0 {
			nc.ChainID = fc.ChainID
		}
		nc.PrivateKeyEnv = fc.PrivateKeyEnv
		nc.Keystore = fc.Keystore
		found = true
	}
	if !found {
		return NetworkConfig{}, fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownNetwork, name, strings.Join(c.NetworkNames(), ", "))
	}

	nc.Name = name
	if nc.PrivateKeyEnv == "" && nc.Keystore == "" {
		nc.PrivateKeyEnv = DefaultPrivateKeyEnv
	}
	if err := nc.Validate(); err != nil {
		return NetworkConfig{}, err
	}
	return nc, nil
}

// viper lowercases map keys
func (c *Config) lookupNetwork(name string) (NetworkConfig, bool) {
	if nc, ok := c.Networks[name]; ok {
		return nc, true
	}
	nc, ok := c.Networks[strings.ToLower(name)]
	return nc, ok
}

func (nc NetworkConfig) Validate() error {
	if nc.URL == "" {
		return fmt.Errorf("%w: %s: url is required", ErrInvalidNetwork, nc.Name)
	}
	if nc.ChainID == 0 {
		return fmt.Errorf("%w: %s: chain_id is required", ErrInvalidNetwork, nc.Name)
	}
	return nil
}

// NetworkNames lists presets and configured networks, sorted.
func (c *Config) NetworkNames() []string {
	seen := map[string]bool{}
	for name := range params.Presets() {
		seen[name] = true
	}
	for name := range c.Networks {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
