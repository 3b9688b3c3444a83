package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the stakeboost module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "stakeboost",
		Short:                      "Querying commands for the stakeboost module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryStake(),
		CmdQueryDiscount(),
	)

	return cmd
}

// CmdQueryStake returns the command to query an account's stake
func CmdQueryStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake [fund-id] [address]",
		Short: "Query an account's stake for a fund",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Stake query for %s requires a running node connection; use the REST API /api/v1/funds/%s/stakes/%s\n", args[1], args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryDiscount returns the command to query an account's discount
func CmdQueryDiscount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discount [fund-id] [address]",
		Short: "Query an account's current carry fee discount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Discount query for %s requires a running node connection; use the REST API /api/v1/funds/%s/discount/%s\n", args[1], args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
