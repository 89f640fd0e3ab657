package node

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"

	"github.com/adil14788/Epic-game/wallet"
)

// LoadKey returns the deployer key of nc: the keystore file when one is
// configured, otherwise the hex key in the named environment variable.
func LoadKey(nc NetworkConfig) (*ecdsa.PrivateKey, error) {
	if nc.Keystore != "" {
		key, err := wallet.LoadWallet(nc.Keystore, os.Getenv(WalletPasswordEnv))
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", nc.Name, err)
		}
		return key, nil
	}

	env := nc.PrivateKeyEnv
	if env == "" {
		env = DefaultPrivateKeyEnv
	}
	key, err := wallet.ParsePrivateKey(os.Getenv(env))
	if err != nil {
		return nil, fmt.Errorf("network %s: %s: %w", nc.Name, env, err)
	}
	return key, nil
}

func LoadSigner(nc NetworkConfig, chainID *big.Int) (*wallet.LocalSigner, error) {
	key, err := LoadKey(nc)
	if err != nil {
		return nil, err
	}
	return wallet.NewLocalSigner(key, chainID), nil
}
