package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/rpc"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/spf13/cobra"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage RPC endpoints",
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom RPC URL for a network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return err
		}
		if err := cfg.AddRPC(n.Name, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(n.DisplayName), args[1])))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		network, url := args[0], args[1]
		if err := cfg.RemoveRPC(network, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed RPC for %s: %s", network, url)))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list [network]",
	Short: "List the RPCs for a network (default: the configured one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := networkArg(args)
		if err != nil {
			return err
		}

		fmt.Println(ui.StyleTitle.Render("RPCs for " + n.DisplayName))
		for _, r := range n.RPCs {
			fmt.Printf("  %s %s\n", ui.Meta("(built-in)"), r)
		}
		for _, r := range cfg.GetRPCs(n.Name) {
			fmt.Printf("  %s   %s\n", ui.Meta("(custom)"), r)
		}
		fmt.Println(ui.Meta("Selection: " + cfg.RPCAlgorithm))
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark [network]",
	Short: "Ping every RPC for a network and show which one would be picked",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := networkArg(args)
		if err != nil {
			return err
		}
		urls := rpcURLs(n)
		if len(urls) == 0 {
			return fmt.Errorf("no RPCs configured for %s", n.Name)
		}

		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Benchmarking "+n.DisplayName+" RPCs..."))

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()
		results := rpc.Benchmark(ctx, urls, rpc.PingEVM)

		var picked string
		if best, err := rpc.NewPicker(rpc.Algorithm(cfg.RPCAlgorithm)).Pick(results); err == nil {
			picked = best.URL
		}

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL", Width: 40},
			{Title: "Latency", Width: 10},
			{Title: "Block #", Width: 12},
			{Title: "Status", Width: 12},
		})
		for _, r := range results {
			status := ui.Success("healthy")
			latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
			block := fmt.Sprint(r.BlockNumber)
			if !r.Healthy {
				status = ui.Err("down")
				latency = "—"
				block = "—"
			}
			if r.URL == picked {
				status += ui.Meta(" ←")
			}
			t.AddRow(ui.Row{r.URL, latency, block, status})
		}
		fmt.Println(t.Render())
		if picked == "" {
			return rpc.ErrNoHealthyRPC
		}
		fmt.Println(ui.Meta(fmt.Sprintf("%s picks %s", cfg.RPCAlgorithm, picked)))
		return nil
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:   "algorithm",
	Short: "Show or set the RPC selection algorithm",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.Val(cfg.RPCAlgorithm))
		return nil
	},
}

var rpcAlgorithmSetCmd = &cobra.Command{
	Use:   "set <fastest|round-robin|failover>",
	Short: "Set the RPC selection algorithm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := parseAlgorithm(args[0])
		if err != nil {
			return err
		}
		cfg.RPCAlgorithm = string(algo)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("RPC algorithm set to %q.", algo)))
		return nil
	},
}

func init() {
	rpcAlgorithmCmd.AddCommand(rpcAlgorithmSetCmd)
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchmarkCmd, rpcAlgorithmCmd)
}

// networkArg returns the network named in args, or the configured one.
func networkArg(args []string) (*chain.Network, error) {
	if len(args) == 0 {
		return currentNetwork()
	}
	return chain.NewRegistry().GetByName(args[0])
}

func parseAlgorithm(s string) (rpc.Algorithm, error) {
	switch a := rpc.Algorithm(s); a {
	case rpc.AlgorithmFastest, rpc.AlgorithmRoundRobin, rpc.AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (use fastest, round-robin or failover)", s)
	}
}
