// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"

	"github.com/blinklabs-io/gammquery"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// queryFlags are shared by all query commands
type queryFlags struct {
	channel      string
	clientID     string
	clientIDAuto bool
	timeout      uint64
}

func (f *queryFlags) register(cmd *cobra.Command, withTimeout bool) {
	cmd.Flags().StringVar(&f.channel, "channel", "", "local channel to send the query on")
	cmd.Flags().StringVar(&f.clientID, "client-id", "", "client id echoed back in the acknowledgement")
	cmd.Flags().BoolVar(&f.clientIDAuto, "client-id-auto", false, "generate a random client id")
	if withTimeout {
		cmd.Flags().Uint64Var(
			&f.timeout,
			"timeout",
			0,
			"packet lifetime in seconds (default is packet.default_timeout)",
		)
	}
	_ = cmd.MarkFlagRequired("channel")
	cmd.MarkFlagsMutuallyExclusive("client-id", "client-id-auto")
}

func (f *queryFlags) resolveClientID() string {
	if f.clientIDAuto {
		return uuid.NewString()
	}
	return f.clientID
}

// timeoutOverride returns the --timeout value if it was given
func (f *queryFlags) timeoutOverride(cmd *cobra.Command) (*uint64, error) {
	if !cmd.Flags().Changed("timeout") {
		return nil, nil
	}
	if f.timeout == 0 {
		return nil, errors.New("--timeout must be positive")
	}
	timeout := f.timeout
	return &timeout, nil
}

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Send a query packet to the counterparty",
	}

	cmd.AddCommand(
		newQuerySpotPriceCmd(a),
		newQueryEstimateSwapCmd(a),
		newQueryProbeCmd(a),
	)

	return cmd
}

func newQuerySpotPriceCmd(a *app) *cobra.Command {
	var (
		flags    queryFlags
		poolID   uint64
		tokenIn  string
		tokenOut string
	)
	cmd := &cobra.Command{
		Use:   "spot-price",
		Short: "Query the spot price of a pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeout, err := flags.timeoutOverride(cmd)
			if err != nil {
				return err
			}
			return a.handle(cmd, gammquery.SpotPriceRequest{
				Channel:  flags.channel,
				ClientID: flags.resolveClientID(),
				PoolID:   poolID,
				TokenIn:  tokenIn,
				TokenOut: tokenOut,
				Timeout:  timeout,
			})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().Uint64Var(&poolID, "pool-id", 0, "pool id")
	cmd.Flags().StringVar(&tokenIn, "token-in", "", "denom of the input token")
	cmd.Flags().StringVar(&tokenOut, "token-out", "", "denom of the output token")
	return cmd
}

func newQueryEstimateSwapCmd(a *app) *cobra.Command {
	var (
		flags    queryFlags
		sender   string
		poolID   uint64
		tokenIn  string
		tokenOut string
	)
	cmd := &cobra.Command{
		Use:   "estimate-swap",
		Short: "Estimate the output of an exact-amount-in swap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeout, err := flags.timeoutOverride(cmd)
			if err != nil {
				return err
			}
			return a.handle(cmd, gammquery.EstimateSwapRequest{
				Channel:  flags.channel,
				ClientID: flags.resolveClientID(),
				Sender:   sender,
				PoolID:   poolID,
				TokenIn:  tokenIn,
				TokenOut: tokenOut,
				Timeout:  timeout,
			})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&sender, "sender", "", "bech32 address of the swap sender")
	cmd.Flags().Uint64Var(&poolID, "pool-id", 0, "pool id")
	cmd.Flags().StringVar(&tokenIn, "token-in", "", "input coin, e.g. 1000uosmo")
	cmd.Flags().StringVar(&tokenOut, "token-out", "", "denom of the output token")
	return cmd
}

func newQueryProbeCmd(a *app) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Query the counterparty's node info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.handle(cmd, gammquery.ProbeRequest{
				Channel:  flags.channel,
				ClientID: flags.resolveClientID(),
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}
