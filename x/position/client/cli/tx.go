package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/venture-fund/x/position/types"
)

// GetTxCmd returns the transaction commands for the position module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "position",
		Short:                      "Position module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdTransferPosition(),
		CmdSplitPosition(),
	)

	return cmd
}

// CmdTransferPosition returns the command to transfer a position
func CmdTransferPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer [position-id] [recipient]",
		Short: "Transfer ownership of a position",
		Long: `Transfer a position to another account. Payouts recorded before the
transfer stay with the previous owner.

Examples:
  venturefundd tx position transfer 7 cosmos1recipient... --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			positionID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferPosition{
				Owner:      clientCtx.GetFromAddress().String(),
				Recipient:  args[1],
				PositionID: positionID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSplitPosition returns the command to split a position
func CmdSplitPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [position-id] [values]",
		Short: "Split a position into children whose values sum to the parent",
		Long: `Split a position. Values are comma separated and must sum to the
parent position's value.

Examples:
  venturefundd tx position split 7 600,400 --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			positionID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}

			msg := &types.MsgSplitPosition{
				Owner:      clientCtx.GetFromAddress().String(),
				PositionID: positionID,
				Values:     strings.Split(args[1], ","),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
