package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the position module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "position",
		Short:                      "Querying commands for the position module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPosition(),
		CmdQueryOwnerPositions(),
	)

	return cmd
}

// CmdQueryPosition returns the command to query a position
func CmdQueryPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [position-id]",
		Short: "Query a position by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Position query for id %s requires a running node connection; use the REST API /api/v1/positions/%s\n", args[0], args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryOwnerPositions returns the command to query an owner's positions
func CmdQueryOwnerPositions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner [address]",
		Short: "Query live positions owned by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Owner position query for %s requires a running node connection; use the REST API /api/v1/accounts/%s/positions\n", args[0], args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
