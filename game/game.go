// Package game binds the MyEpicGame contract: deployment, minting a
// character NFT, attacking the boss and reading token metadata.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/adil14788/Epic-game/artifact"
	"github.com/adil14788/Epic-game/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	MethodMint     = "mintCharacterNFT"
	MethodAttack   = "attackBoss"
	MethodTokenURI = "tokenURI"
)

var ErrMissingMethod = errors.New("artifact is missing a required method")

// Game is a handle on a MyEpicGame contract.
type Game struct {
	Address  common.Address
	artifact *artifact.Artifact
	tx       *chain.Transactor
}

// Bind attaches to an already deployed game.
func Bind(address common.Address, a *artifact.Artifact, tx *chain.Transactor) (*Game, error) {
	if err := checkABI(a); err != nil {
		return nil, err
	}
	return &Game{Address: address, artifact: a, tx: tx}, nil
}

// Deploy submits the contract creation. The game is usable for calls once
// the returned transaction is mined.
func Deploy(ctx context.Context, tx *chain.Transactor, a *artifact.Artifact, roster Roster) (*Game, *types.Transaction, error) {
	if err := roster.Validate(); err != nil {
		return nil, nil, err
	}
	if err := checkABI(a); err != nil {
		return nil, nil, err
	}

	data, err := a.DeployData(roster.ConstructorArgs()...)
	if err != nil {
		return nil, nil, err
	}

	deployTx, addr, err := tx.Deploy(ctx, data)
	if err != nil {
		return nil, nil, fmt.Errorf("deploy %s: %w", a.ContractName, err)
	}
	return &Game{Address: addr, artifact: a, tx: tx}, deployTx, nil
}

func checkABI(a *artifact.Artifact) error {
	for _, m := range []string{MethodMint, MethodAttack} {
		if _, ok := a.ABI().Methods[m]; !ok {
			return fmt.Errorf("%w: %s.%s", ErrMissingMethod, a.ContractName, m)
		}
	}
	return nil
}

func (g *Game) MintCharacterNFT(ctx context.Context, characterIndex uint64) (*types.Transaction, error) {
	data, err := g.artifact.Pack(MethodMint, new(big.Int).SetUint64(characterIndex))
	if err != nil {
		return nil, err
	}
	return g.tx.Transact(ctx, g.Address, data)
}

func (g *Game) AttackBoss(ctx context.Context) (*types.Transaction, error) {
	data, err := g.artifact.Pack(MethodAttack)
	if err != nil {
		return nil, err
	}
	return g.tx.Transact(ctx, g.Address, data)
}

func (g *Game) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	data, err := g.artifact.Pack(MethodTokenURI, tokenID)
	if err != nil {
		return "", err
	}

	ret, err := g.tx.Call(ctx, g.Address, data)
	if err != nil {
		return "", err
	}

	out, err := g.artifact.Unpack(MethodTokenURI, ret)
	if err != nil {
		return "", err
	}
	uri, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("tokenURI returned %T", out[0])
	}
	return uri, nil
}

// Wait blocks until tx is mined.
func (g *Game) Wait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return g.tx.WaitMined(ctx, tx)
}
