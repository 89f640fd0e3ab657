package main

import (
	"fmt"
	"math/big"

	"github.com/adil14788/Epic-game/artifact"
	"github.com/adil14788/Epic-game/game"
	"github.com/adil14788/Epic-game/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var tokenURIContract string

var tokenURICmd = &cobra.Command{
	Use:   "token-uri <token-id>",
	Short: "Print the tokenURI of a minted character NFT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := new(big.Int).SetString(args[0], 10)
		if !ok || id.Sign() < 0 {
			return fmt.Errorf("invalid token id %q", args[0])
		}

		n, err := connectNode(cmd)
		if err != nil {
			return err
		}
		defer n.Stop()

		addr := common.HexToAddress(tokenURIContract)
		if tokenURIContract == "" {
			d, err := n.Store.GetDeployment(n.Network.Name)
			if err != nil {
				return err
			}
			addr = d.Contract
		} else if !common.IsHexAddress(tokenURIContract) {
			return fmt.Errorf("invalid contract address %q", tokenURIContract)
		}

		a, err := artifact.Load(n.Config.ArtifactsDir, params.ContractName)
		if err != nil {
			return err
		}
		g, err := game.Bind(addr, a, n.Transactor)
		if err != nil {
			return err
		}

		uri, err := g.TokenURI(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	},
}

func init() {
	tokenURICmd.Flags().StringVar(&tokenURIContract, "contract", "", "game address (default: latest deployment on the network)")
}
