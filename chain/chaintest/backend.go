// Package chaintest provides an in-memory chain.Backend for tests.
package chaintest

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend mines every sent transaction immediately (or after PendingPolls
// receipt lookups) and records everything it sees.
type Backend struct {
	mu sync.Mutex

	ChainIDValue *big.Int
	GasPrice     *big.Int
	GasEstimate  uint64
	Balance      *big.Int

	// PendingPolls is how many receipt lookups return NotFound before a
	// transaction counts as mined.
	PendingPolls int

	// RevertSelectors marks calls whose first four data bytes match as reverted.
	RevertSelectors map[[4]byte]bool

	EstimateErr error
	SendErr     error
	CallResult  []byte
	CallErr     error

	// NeverMine keeps every transaction pending forever.
	NeverMine bool

	Sent     []*types.Transaction
	Calls    []ethereum.CallMsg
	nonces   map[common.Address]uint64
	polls    map[common.Hash]int
	receipts map[common.Hash]*types.Receipt
}

func NewBackend(chainID int64) *Backend {
	return &Backend{
		ChainIDValue:    big.NewInt(chainID),
		GasPrice:        big.NewInt(1_000_000_000),
		GasEstimate:     100_000,
		Balance:         new(big.Int).Mul(big.NewInt(10_000), big.NewInt(1e18)),
		RevertSelectors: make(map[[4]byte]bool),
		nonces:          make(map[common.Address]uint64),
		polls:           make(map[common.Hash]int),
		receipts:        make(map[common.Hash]*types.Receipt),
	}
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.ChainIDValue), nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[account], nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.GasPrice), nil
}

func (b *Backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if b.EstimateErr != nil {
		return 0, b.EstimateErr
	}
	return b.GasEstimate, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.SendErr != nil {
		return b.SendErr
	}

	from, err := types.Sender(types.LatestSignerForChainID(b.ChainIDValue), tx)
	if err != nil {
		return err
	}
	if tx.Nonce() != b.nonces[from] {
		return errors.New("nonce too low")
	}
	b.nonces[from]++
	b.Sent = append(b.Sent, tx)

	status := types.ReceiptStatusSuccessful
	if data := tx.Data(); tx.To() != nil && len(data) >= 4 {
		var sel [4]byte
		copy(sel[:], data[:4])
		if b.RevertSelectors[sel] {
			status = types.ReceiptStatusFailed
		}
	}

	receipt := &types.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		GasUsed:     tx.Gas() / 2,
		BlockNumber: big.NewInt(int64(len(b.Sent))),
	}
	if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
	}
	b.receipts[tx.Hash()] = receipt
	return nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.receipts[txHash]
	if !ok || b.NeverMine {
		return nil, ethereum.NotFound
	}
	if b.polls[txHash] < b.PendingPolls {
		b.polls[txHash]++
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (b *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Calls = append(b.Calls, msg)
	if b.CallErr != nil {
		return nil, b.CallErr
	}
	return b.CallResult, nil
}

func (b *Backend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return new(big.Int).Set(b.Balance), nil
}

func (b *Backend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.receipts {
		if r.ContractAddress == account {
			return []byte{0x60, 0x80}, nil
		}
	}
	return nil, nil
}

// SentTxs returns a snapshot of the submitted transactions.
func (b *Backend) SentTxs() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*types.Transaction(nil), b.Sent...)
}
