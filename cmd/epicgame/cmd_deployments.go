package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/adil14788/Epic-game/node"
	"github.com/spf13/cobra"
)

var allNetworks bool

var deploymentsCmd = &cobra.Command{
	Use:   "deployments",
	Short: "List recorded deployments",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		n, err := node.NewNode(cfg, networkName, logger)
		if err != nil {
			return err
		}
		if err := n.OpenStore(); err != nil {
			return err
		}
		defer n.Stop()

		filter := n.Network.Name
		if allNetworks {
			filter = ""
		}
		list, err := n.Store.ListDeployments(filter)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no deployments recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NETWORK\tCONTRACT\tDEPLOYER\tSTEPS\tCOMPLETE\tWHEN")
		for _, d := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\t%s\n",
				d.Network, d.Contract.Hex(), d.Deployer.Hex(), len(d.Steps), d.Complete,
				d.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	deploymentsCmd.Flags().BoolVarP(&allNetworks, "all", "a", false, "list deployments on every network")
}
