// Package deploy runs the MyEpicGame deployment script: deploy the
// contract, mint a character and attack the boss, waiting for every
// transaction to be mined.
package deploy

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adil14788/Epic-game/artifact"
	"github.com/adil14788/Epic-game/chain"
	"github.com/adil14788/Epic-game/events"
	"github.com/adil14788/Epic-game/game"
	"github.com/adil14788/Epic-game/log"
	"github.com/adil14788/Epic-game/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	StepDeploy = "deploy"
	StepMint   = "mintCharacterNFT"
	StepAttack = "attackBoss"
)

// Recorder persists deployment records. *state.StateDB implements it.
type Recorder interface {
	SaveDeployment(d *state.Deployment) error
}

type Script struct {
	Network   string
	ChainID   uint64
	Artifact  *artifact.Artifact
	Roster    game.Roster
	MintIndex uint64
	Attacks   int

	Tx     *chain.Transactor
	Events *events.EventBus
	Store  Recorder
	Logger *log.Logger
	// Out receives the human readable summary lines; stdout when nil.
	Out io.Writer
}

type Result struct {
	Contract common.Address
	Steps    []state.StepRecord
	GasUsed  uint64
}

// Run executes the script. The first failing step aborts the run; steps
// already mined are not undone. Whatever got deployed is still recorded.
func (s *Script) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	started := time.Now()

	g, err := s.deploy(ctx, res)
	if err == nil {
		err = s.play(ctx, g, res)
	}

	if res.Contract != (common.Address{}) {
		if serr := s.record(res, started, err == nil); serr != nil {
			if err == nil {
				err = fmt.Errorf("record deployment: %w", serr)
			} else {
				s.Logger.Warn("could not record deployment: " + serr.Error())
			}
		}
	}

	if err != nil {
		s.Events.Publish(events.Event{Kind: events.ScriptAborted, Contract: hexOrEmpty(res.Contract), Error: err.Error()})
		return res, err
	}

	s.Events.Publish(events.Event{Kind: events.ScriptDone, Contract: res.Contract.Hex(), GasUsed: res.GasUsed})
	return res, nil
}

func (s *Script) deploy(ctx context.Context, res *Result) (*game.Game, error) {
	var g *game.Game
	err := s.step(ctx, StepDeploy, res, func() (*types.Transaction, error) {
		deployed, tx, err := game.Deploy(ctx, s.Tx, s.Artifact, s.Roster)
		if err != nil {
			return nil, err
		}
		g = deployed
		return tx, nil
	})
	if err != nil {
		return nil, err
	}

	res.Contract = g.Address
	fmt.Fprintln(s.out(), "Contract deployed to:", g.Address.Hex())
	return g, nil
}

func (s *Script) play(ctx context.Context, g *game.Game, res *Result) error {
	err := s.step(ctx, StepMint, res, func() (*types.Transaction, error) {
		return g.MintCharacterNFT(ctx, s.MintIndex)
	})
	if err != nil {
		return err
	}

	for i := 1; i <= s.Attacks; i++ {
		name := fmt.Sprintf("%s#%d", StepAttack, i)
		err := s.step(ctx, name, res, func() (*types.Transaction, error) {
			return g.AttackBoss(ctx)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// step submits one transaction and waits for it to be mined.
func (s *Script) step(ctx context.Context, name string, res *Result, submit func() (*types.Transaction, error)) error {
	logger := s.Logger.With(log.Fields{"step": name})
	s.Events.Publish(events.Event{Kind: events.StepStarted, Step: name})
	logger.Debug("step started")

	fail := func(err error) error {
		err = fmt.Errorf("%s: %w", name, err)
		s.Events.Publish(events.Event{Kind: events.StepFailed, Step: name, Error: err.Error()})
		return err
	}

	tx, err := submit()
	if err != nil {
		return fail(err)
	}
	s.Events.Publish(events.Event{Kind: events.TxSent, Step: name, TxHash: tx.Hash().Hex()})
	logger.With(log.Fields{"tx": tx.Hash().Hex()}).Info("transaction sent")

	receipt, err := s.Tx.WaitMined(ctx, tx)
	if err != nil {
		return fail(err)
	}

	res.Steps = append(res.Steps, state.StepRecord{Name: name, TxHash: tx.Hash(), GasUsed: receipt.GasUsed})
	res.GasUsed += receipt.GasUsed

	s.Events.Publish(events.Event{
		Kind:     events.TxConfirmed,
		Step:     name,
		TxHash:   tx.Hash().Hex(),
		Contract: hexOrEmpty(receipt.ContractAddress),
		GasUsed:  receipt.GasUsed,
	})
	logger.With(log.Fields{"block": receipt.BlockNumber, "gas_used": receipt.GasUsed}).Info("transaction mined")
	return nil
}

func (s *Script) record(res *Result, started time.Time, complete bool) error {
	if s.Store == nil {
		return nil
	}
	return s.Store.SaveDeployment(&state.Deployment{
		Network:   s.Network,
		ChainID:   s.ChainID,
		Contract:  res.Contract,
		Deployer:  s.Tx.From(),
		Steps:     res.Steps,
		GasUsed:   res.GasUsed,
		Complete:  complete,
		CreatedAt: started,
	})
}

func (s *Script) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func hexOrEmpty(a common.Address) string {
	if a == (common.Address{}) {
		return ""
	}
	return a.Hex()
}
