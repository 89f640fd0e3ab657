package main

import (
	"context"

	"github.com/adil14788/Epic-game/log"
	"github.com/adil14788/Epic-game/node"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	networkName string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "epicgame",
	Short: "Deploy and drive the MyEpicGame contract",
	Long: `epicgame deploys the MyEpicGame NFT contract to an EVM network, mints a
character and attacks the boss.

Networks and the compiled artifact location come from epicgame.yaml. The
deployer key is read from the environment (EPICGAME_PRIVATE_KEY by default)
or from an encrypted wallet file; it is never stored in the config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search epicgame.yaml)")
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "", "network to use (default: default_network from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd, accountsCmd, tokenURICmd, deploymentsCmd, walletCmd, configCmd)
}

func loadConfig() (*node.Config, *log.Logger, error) {
	cfg, err := node.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, log.NewLogger(cfg.LogLevel), nil
}

// startNode loads config, connects to the selected network and loads the
// deployer key.
func startNode(cmd *cobra.Command) (*node.Node, error) {
	return openNode(cmd, (*node.Node).Start)
}

// connectNode is startNode without the key, for view calls.
func connectNode(cmd *cobra.Command) (*node.Node, error) {
	return openNode(cmd, (*node.Node).Connect)
}

func openNode(cmd *cobra.Command, start func(*node.Node, context.Context) error) (*node.Node, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	n, err := node.NewNode(cfg, networkName, logger)
	if err != nil {
		return nil, err
	}
	if err := start(n, cmd.Context()); err != nil {
		n.Stop()
		return nil, err
	}
	return n, nil
}
