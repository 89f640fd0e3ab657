package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/adil14788/Epic-game/log"
	"github.com/adil14788/Epic-game/params"
	"github.com/adil14788/Epic-game/wallet"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type Options struct {
	ReceiptTimeout      time.Duration
	GasPriceBumpPercent int64
}

func DefaultOptions() Options {
	return Options{
		ReceiptTimeout:      params.ReceiptTimeout,
		GasPriceBumpPercent: params.GasPriceBumpPercent,
	}
}

// Transactor builds, signs, submits and confirms transactions for one account.
type Transactor struct {
	backend Backend
	signer  wallet.Signer
	opts    Options
	logger  *log.Logger

	mu    sync.Mutex
	nonce *uint64
}

// NewTransactor returns a transactor for signer. A nil signer gives a
// read-only transactor that can Call but not submit.
func NewTransactor(backend Backend, signer wallet.Signer, opts Options, logger *log.Logger) *Transactor {
	if opts.ReceiptTimeout <= 0 {
		opts.ReceiptTimeout = params.ReceiptTimeout
	}
	if logger == nil {
		logger = log.NewLogger("info")
	}
	return &Transactor{
		backend: backend,
		signer:  signer,
		opts:    opts,
		logger:  logger,
	}
}

func (t *Transactor) From() common.Address {
	if t.signer == nil {
		return common.Address{}
	}
	return t.signer.Address()
}

func (t *Transactor) Backend() Backend {
	return t.backend
}

// ------------------------------------------------------------
// Submission
// ------------------------------------------------------------

// Deploy submits a contract creation carrying data (bytecode + constructor
// args) and returns the address the contract will live at.
func (t *Transactor) Deploy(ctx context.Context, data []byte) (*types.Transaction, common.Address, error) {
	tx, err := t.submit(ctx, nil, data, params.FallbackDeployGas)
	if err != nil {
		return nil, common.Address{}, err
	}
	return tx, crypto.CreateAddress(t.From(), tx.Nonce()), nil
}

// Transact submits a state-changing call to a deployed contract.
func (t *Transactor) Transact(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	return t.submit(ctx, &to, data, params.FallbackCallGas)
}

// Call executes a read-only call against the latest block.
func (t *Transactor) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	out, err := t.backend.CallContract(ctx, ethereum.CallMsg{
		From: t.From(),
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", to.Hex(), err)
	}
	return out, nil
}

func (t *Transactor) submit(ctx context.Context, to *common.Address, data []byte, fallbackGas uint64) (*types.Transaction, error) {
	if t.signer == nil {
		return nil, ErrReadOnly
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	nonce, err := t.nextNonce(ctx)
	if err != nil {
		return nil, err
	}

	gasPrice, err := t.gasPrice(ctx)
	if err != nil {
		return nil, err
	}

	gasLimit, err := t.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:     t.From(),
		To:       to,
		GasPrice: gasPrice,
		Value:    big.NewInt(0),
		Data:     data,
	})
	if err != nil {
		if to != nil {
			// calls that fail estimation would revert on chain too
			return nil, fmt.Errorf("estimate gas: %w", err)
		}
		t.logger.With(log.Fields{"gas_limit": fallbackGas, "error": err.Error()}).
			Warn("gas estimation failed, using default")
		gasLimit = fallbackGas
	} else {
		gasLimit = gasLimit * (100 + params.GasLimitBufferPercent) / 100
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       to,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := t.signer.SignTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := t.backend.SendTransaction(ctx, signed); err != nil {
		// the node may have seen a different nonce; refetch next time
		t.nonce = nil
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	next := nonce + 1
	t.nonce = &next

	t.logger.With(log.Fields{
		"hash":  signed.Hash().Hex(),
		"nonce": nonce,
		"gas":   gasLimit,
	}).Debug("transaction sent")

	return signed, nil
}

func (t *Transactor) nextNonce(ctx context.Context) (uint64, error) {
	if t.nonce != nil {
		return *t.nonce, nil
	}
	n, err := t.backend.PendingNonceAt(ctx, t.From())
	if err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	return n, nil
}

func (t *Transactor) gasPrice(ctx context.Context) (*big.Int, error) {
	price, err := t.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("get gas price: %w", err)
	}
	price = new(big.Int).Mul(price, big.NewInt(100+t.opts.GasPriceBumpPercent))
	return price.Div(price, big.NewInt(100)), nil
}

// ------------------------------------------------------------
// Confirmation
// ------------------------------------------------------------

// WaitMined blocks until tx is included in a block. A reverted transaction
// returns its receipt together with ErrReverted.
func (t *Transactor) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, t.opts.ReceiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, t.backend, tx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, tx.Hash().Hex())
		}
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", ErrReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

// Balance returns the native balance of the sending account.
func (t *Transactor) Balance(ctx context.Context) (*big.Int, error) {
	bal, err := t.backend.BalanceAt(ctx, t.From(), nil)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return bal, nil
}
