package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/adil14788/Epic-game/node"
	"github.com/adil14788/Epic-game/wallet"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage encrypted deployer wallets",
}

var walletNewCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Create an encrypted wallet file",
	Long: `Generate a new key and write it to <path>, encrypted with the password in
` + node.WalletPasswordEnv + `. Point a network's keystore setting at the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pass := os.Getenv(node.WalletPasswordEnv)
		if pass == "" {
			return errors.New(node.WalletPasswordEnv + " is not set")
		}

		w, err := wallet.CreateWallet(args[0], pass)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wallet %s written to %s\n", w.Address, args[0])
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletNewCmd)
}
