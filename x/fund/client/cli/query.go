package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the fund module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "fund",
		Short:                      "Querying commands for the fund module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryFund(),
		CmdQueryPayouts(),
		CmdQueryAvailableFunds(),
	)

	return cmd
}

// CmdQueryFund returns the command to query a fund
func CmdQueryFund() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [fund-id]",
		Short: "Query a fund's phase, balances and fee configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Fund query for %s requires a running node connection; use the REST API /api/v1/funds/%s\n", args[0], args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPayouts returns the command to query a fund's payout history
func CmdQueryPayouts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payouts [fund-id]",
		Short: "Query a fund's payout history, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Payout query for %s requires a running node connection; use the REST API /api/v1/funds/%s/payouts\n", args[0], args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryAvailableFunds returns the command to query an account's entitlement
func CmdQueryAvailableFunds() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "available [fund-id] [account]",
		Short: "Query an account's currently withdrawable entitlement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Entitlement query for %s requires a running node connection; use the REST API /api/v1/funds/%s/available/%s\n", args[1], args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
