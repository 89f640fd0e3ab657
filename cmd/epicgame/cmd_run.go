package main

import (
	"fmt"

	"github.com/adil14788/Epic-game/deploy"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"deploy"},
	Short:   "Deploy MyEpicGame, mint a character and attack the boss",
	Long: `Run the deployment script against the selected network:

1. deploy MyEpicGame with the configured roster
2. mintCharacterNFT(script.mint_index)
3. attackBoss(), script.attacks times

Every transaction is waited for. The first failure aborts the run and the
command exits with status 1.`,
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, args []string) error {
	n, err := startNode(cmd)
	if err != nil {
		return err
	}
	defer n.Stop()

	script, err := n.Script()
	if err != nil {
		return err
	}
	script.Out = cmd.OutOrStdout()

	res, err := script.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, st := range res.Steps {
		fmt.Fprintf(out, "  %-20s %s  gas=%d\n", st.Name, st.TxHash.Hex(), st.GasUsed)
	}
	fmt.Fprintf(out, "Total gas used: %d\n", res.GasUsed)
	return nil
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Print the list of accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := startNode(cmd)
		if err != nil {
			return err
		}
		defer n.Stop()

		accs, err := deploy.Accounts(cmd.Context(), n.Transactor)
		if err != nil {
			return err
		}
		for _, a := range accs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s ETH\n", a.Address.Hex(), deploy.EtherString(a.Balance))
		}
		return nil
	},
}
