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
	"github.com/blinklabs-io/gammquery"
	"github.com/blinklabs-io/gammquery/channel"
	"github.com/spf13/cobra"
)

func newChannelCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Channel handshake and lifecycle",
	}

	cmd.AddCommand(
		newChannelOpenCmd(a),
		newChannelConnectCmd(a),
		newChannelCloseCmd(a),
	)

	return cmd
}

func newChannelOpenCmd(a *app) *cobra.Command {
	var (
		order               string
		version             string
		counterpartyVersion string
	)
	cmd := &cobra.Command{
		Use:   "open CHANNEL_ID",
		Short: "Check a proposed channel against the configured version and ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedOrder, err := channel.ParseOrder(order)
			if err != nil {
				return err
			}
			return a.handle(cmd, gammquery.ChannelOpenEvent{
				ChannelID:           args[0],
				Order:               parsedOrder,
				Version:             version,
				CounterpartyVersion: counterpartyVersion,
			})
		},
	}
	cmd.Flags().StringVar(&order, "order", channel.DefaultOrder.String(), "proposed channel ordering")
	cmd.Flags().StringVar(&version, "version", channel.DefaultVersion, "proposed channel version")
	cmd.Flags().StringVar(
		&counterpartyVersion,
		"counterparty-version",
		"",
		"version proposed by the counterparty, if known",
	)
	return cmd
}

func newChannelConnectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect CHANNEL_ID",
		Short: "Record a completed handshake and reset the channel's account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handle(cmd, gammquery.ChannelConnectEvent{ChannelID: args[0]})
		},
	}
}

func newChannelCloseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "close CHANNEL_ID",
		Short: "Record a closed channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handle(cmd, gammquery.ChannelCloseEvent{ChannelID: args[0]})
		},
	}
}
