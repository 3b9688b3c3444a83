package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// GetTxCmd returns the transaction commands for the fund module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "fund",
		Short:                      "Fund module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateFund(),
		CmdContribute(),
		CmdCloseFunding(),
		CmdDeployCapital(),
		CmdReturnCapital(),
		CmdCloseFund(),
		CmdInjectProfit(),
		CmdWithdraw(),
		CmdSetFeeConfig(),
	)

	return cmd
}

// CmdCreateFund returns the command to create a fund
func CmdCreateFund() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [fund-id] [denom] [treasury] [entry-fee-rate] [carry-fee-rate] [investment-cap]",
		Short: "Create a new fund in the funding phase",
		Long: `Create a new fund. The signer becomes the operator.

Examples:
  venturefundd tx fund create alpha usdc cosmos1treasury... 0.05 0.5 1000000 --from operator`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreateFund{
				Operator:      clientCtx.GetFromAddress().String(),
				FundID:        args[0],
				Denom:         args[1],
				Treasury:      args[2],
				EntryFeeRate:  args[3],
				CarryFeeRate:  args[4],
				InvestmentCap: args[5],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdContribute returns the command to contribute capital
func CmdContribute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contribute [fund-id] [amount]",
		Short: "Contribute capital to a fund during its funding phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgContribute{
				Contributor: clientCtx.GetFromAddress().String(),
				FundID:      args[0],
				Amount:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCloseFunding returns the command to close the funding phase
func CmdCloseFunding() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close-funding [fund-id]",
		Short: "Close the funding phase and begin capital deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCloseFunding{
				Operator: clientCtx.GetFromAddress().String(),
				FundID:   args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeployCapital returns the command to deploy pooled capital
func CmdDeployCapital() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [fund-id] [destination] [amount]",
		Short: "Deploy pooled capital to an investment destination",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDeployCapital{
				Operator:    clientCtx.GetFromAddress().String(),
				FundID:      args[0],
				Destination: args[1],
				Amount:      args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdReturnCapital returns the command to return deployed capital
func CmdReturnCapital() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "return-capital [fund-id] [amount]",
		Short: "Return previously deployed capital to the fund",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgReturnCapital{
				From:   clientCtx.GetFromAddress().String(),
				FundID: args[0],
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCloseFund returns the command to close a fund
func CmdCloseFund() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close [fund-id]",
		Short: "Close a fund; contributions and injections stop, withdrawals continue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCloseFund{
				Operator: clientCtx.GetFromAddress().String(),
				FundID:   args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdInjectProfit returns the command to inject investment proceeds
func CmdInjectProfit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject-profit [fund-id] [amount]",
		Short: "Inject investment proceeds; carry fee applies above breakeven",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgInjectProfit{
				Operator: clientCtx.GetFromAddress().String(),
				FundID:   args[0],
				Amount:   args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns the command to withdraw available funds
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [fund-id] [amount]",
		Short: "Withdraw from your available payout entitlement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdraw{
				Account: clientCtx.GetFromAddress().String(),
				FundID:  args[0],
				Amount:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetFeeConfig returns the command to update a fund's fee configuration
func CmdSetFeeConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-fee-config [fund-id] [entry-fee-rate] [carry-fee-rate] [investment-cap]",
		Short: "Update a fund's fee configuration (operator only)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSetFeeConfig{
				Operator:      clientCtx.GetFromAddress().String(),
				FundID:        args[0],
				EntryFeeRate:  args[1],
				CarryFeeRate:  args[2],
				InvestmentCap: args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
