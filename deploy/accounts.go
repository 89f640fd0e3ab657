package deploy

import (
	"context"
	"math/big"

	"github.com/adil14788/Epic-game/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

type Account struct {
	Address common.Address
	Balance *big.Int
}

// Accounts lists the accounts the tool can sign with and their balances.
func Accounts(ctx context.Context, tx *chain.Transactor) ([]Account, error) {
	bal, err := tx.Balance(ctx)
	if err != nil {
		return nil, err
	}
	return []Account{{Address: tx.From(), Balance: bal}}, nil
}

// EtherString formats wei as ether with up to 6 decimals.
func EtherString(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, new(big.Float).SetInt64(params.Ether))
	return f.Text('f', 6)
}
