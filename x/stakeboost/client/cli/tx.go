package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/venture-fund/x/stakeboost/types"
)

// GetTxCmd returns the transaction commands for the stakeboost module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "stakeboost",
		Short:                      "Stakeboost module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdStake(),
		CmdUnstake(),
	)

	return cmd
}

// CmdStake returns the command to stake boost tokens
func CmdStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake [fund-id] [amount]",
		Short: "Stake boost tokens toward a carry fee discount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgStake{
				Staker: clientCtx.GetFromAddress().String(),
				FundID: args[0],
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUnstake returns the command to release staked boost tokens
func CmdUnstake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unstake [fund-id] [amount]",
		Short: "Release staked boost tokens; a full unstake restarts the ramp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgUnstake{
				Staker: clientCtx.GetFromAddress().String(),
				FundID: args[0],
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
