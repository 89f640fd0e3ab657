package state

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment records one run of the deploy script.
type Deployment struct {
	Network  string         `json:"network"`
	ChainID  uint64         `json:"chainId"`
	Contract common.Address `json:"contract"`
	Deployer common.Address `json:"deployer"`
	// Steps are in run order.
	Steps     []StepRecord `json:"steps"`
	GasUsed   uint64       `json:"gasUsed"`
	Complete  bool         `json:"complete"`
	CreatedAt time.Time    `json:"createdAt"`
}

type StepRecord struct {
	Name    string      `json:"name"`
	TxHash  common.Hash `json:"txHash"`
	GasUsed uint64      `json:"gasUsed"`
}
