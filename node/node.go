package node

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"
	"time"

	"github.com/adil14788/Epic-game/artifact"
	"github.com/adil14788/Epic-game/chain"
	"github.com/adil14788/Epic-game/deploy"
	"github.com/adil14788/Epic-game/events"
	"github.com/adil14788/Epic-game/log"
	"github.com/adil14788/Epic-game/params"
	"github.com/adil14788/Epic-game/rpc"
	"github.com/adil14788/Epic-game/state"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Node holds everything a command needs to talk to one network.
type Node struct {
	Config     *Config
	Network    NetworkConfig
	Logger     *log.Logger
	Client     *ethclient.Client
	ChainID    *big.Int
	Transactor *chain.Transactor
	Store      *state.StateDB
	Events     *events.EventBus
	Progress   *rpc.ProgressServer
}

func NewNode(cfg *Config, network string, logger *log.Logger) (*Node, error) {
	nc, err := cfg.Network(network)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewLogger(cfg.LogLevel)
	}

	return &Node{
		Config:  cfg,
		Network: nc,
		Logger:  logger.With(log.Fields{"network": nc.Name}),
		Events:  events.NewEventBus(),
	}, nil
}

// OpenStore opens the deployment history without touching the network.
func (n *Node) OpenStore() error {
	if n.Store != nil {
		return nil
	}
	store, err := state.NewStateDB(filepath.Join(n.Config.DataDir, "deployments"))
	if err != nil {
		return err
	}
	n.Store = store
	return nil
}

// Connect dials the network and opens the store. The transactor it sets
// up is read-only: no key is needed for view calls.
func (n *Node) Connect(ctx context.Context) error {
	n.Logger.Debug(fmt.Sprintf("Connecting to %s (chain id %d)", n.Network.URL, n.Network.ChainID))

	client, chainID, err := chain.Dial(ctx, n.Network.URL, n.Network.ChainID)
	if err != nil {
		return err
	}
	n.Client = client
	n.ChainID = chainID
	n.Transactor = chain.NewTransactor(client, nil, n.txOptions(), n.Logger)

	return n.OpenStore()
}

// Start connects, loads the signer and, when an address is configured,
// starts the progress feed.
func (n *Node) Start(ctx context.Context) error {
	if err := n.Connect(ctx); err != nil {
		return err
	}

	signer, err := LoadSigner(n.Network, n.ChainID)
	if err != nil {
		return err
	}
	n.Transactor = chain.NewTransactor(n.Client, signer, n.txOptions(), n.Logger)

	if n.Config.ProgressAddr != "" {
		n.Progress = rpc.NewProgressServer(n.Config.ProgressAddr, n.Events, n.Logger).
			WithDeployments(n.Store)
		if err := n.Progress.Start(); err != nil {
			return err
		}
	}

	n.Logger.Debug("Signer " + signer.Address().Hex())
	return nil
}

func (n *Node) txOptions() chain.Options {
	return chain.Options{
		ReceiptTimeout:      n.Config.Tx.ReceiptTimeout,
		GasPriceBumpPercent: n.Config.Tx.GasPriceBumpPercent,
	}
}

// Script builds the deploy script for this network.
func (n *Node) Script() (*deploy.Script, error) {
	a, err := artifact.Load(n.Config.ArtifactsDir, params.ContractName)
	if err != nil {
		return nil, err
	}

	return &deploy.Script{
		Network:   n.Network.Name,
		ChainID:   n.ChainID.Uint64(),
		Artifact:  a,
		Roster:    n.Config.Game,
		MintIndex: n.Config.Script.MintIndex,
		Attacks:   n.Config.Script.Attacks,
		Tx:        n.Transactor,
		Events:    n.Events,
		Store:     n.Store,
		Logger:    n.Logger,
	}, nil
}

func (n *Node) Stop() {
	if n.Progress != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		n.Progress.Stop(ctx)
		cancel()
	}
	if n.Store != nil {
		n.Store.Close()
	}
	if n.Client != nil {
		n.Client.Close()
	}
}
