package params

import "time"

// NetworkPreset describes a built-in network. Presets never carry keys.
type NetworkPreset struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	ChainID uint64 `json:"chainId"`
}

const (
	// SolidityVersion is the compiler the MyEpicGame artifacts are built with.
	SolidityVersion = "0.8.1"

	// ContractName is the artifact the deploy script builds its factory from.
	ContractName = "MyEpicGame"

	// DefaultNetwork is used when neither flag nor config names one.
	DefaultNetwork = "localhost"

	// LocalChainID is the chain id of a local hardhat/anvil node.
	LocalChainID uint64 = 31337
)

// ------------------------------------------------------------
// TX DEFAULTS
// ------------------------------------------------------------

const (
	GasPriceBumpPercent   = 10
	GasLimitBufferPercent = 20
	FallbackDeployGas     = uint64(6_000_000)
	FallbackCallGas       = uint64(500_000)

	ReceiptTimeout = 5 * time.Minute
)

// Presets returns the networks that work without any configuration file.
func Presets() map[string]NetworkPreset {
	return map[string]NetworkPreset{
		"localhost": {
			Name:    "localhost",
			URL:     "http://127.0.0.1:8545",
			ChainID: LocalChainID,
		},
		"hardhat": {
			Name:    "hardhat",
			URL:     "http://127.0.0.1:8545",
			ChainID: LocalChainID,
		},
	}
}
