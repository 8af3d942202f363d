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
	"github.com/blinklabs-io/gammquery/packet"
	"github.com/spf13/cobra"
)

func newAckCmd(a *app) *cobra.Command {
	var (
		channelID string
		original  string
		raw       string
		result    string
		errorMsg  string
	)
	cmd := &cobra.Command{
		Use:   "ack",
		Short: "Apply the counterparty's acknowledgement of a sent packet",
		Long: "Apply the counterparty's acknowledgement of a sent packet.\n\n" +
			"The acknowledgement is given either verbatim with --ack, or built\n" +
			"from a result body with --result or an error message with --error.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := buildAck(raw, result, errorMsg, cmd.Flags().Changed("result"))
			if err != nil {
				return err
			}
			return a.handle(cmd, gammquery.AcknowledgementEvent{
				SourceChannel:   channelID,
				OriginalPacket:  []byte(original),
				Acknowledgement: data,
			})
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "local channel the packet was sent on")
	cmd.Flags().StringVar(&original, "packet", "", "data of the original packet")
	cmd.Flags().StringVar(&raw, "ack", "", "acknowledgement as received")
	cmd.Flags().StringVar(&result, "result", "", "result body, e.g. {\"price\":\"1.5\"}")
	cmd.Flags().StringVar(&errorMsg, "error", "", "error message of a failed query")
	_ = cmd.MarkFlagRequired("channel")
	_ = cmd.MarkFlagRequired("packet")
	cmd.MarkFlagsMutuallyExclusive("ack", "result", "error")
	cmd.MarkFlagsOneRequired("ack", "result", "error")
	return cmd
}

func buildAck(raw string, result string, errorMsg string, hasResult bool) ([]byte, error) {
	switch {
	case raw != "":
		return []byte(raw), nil
	case hasResult:
		return packet.NewResultAck([]byte(result)).Encode()
	case errorMsg != "":
		return packet.NewErrorAck(errorMsg).Encode()
	default:
		return nil, errors.New("one of --ack, --result or --error must be set")
	}
}

func newTimeoutCmd(a *app) *cobra.Command {
	var (
		channelID string
		original  string
	)
	cmd := &cobra.Command{
		Use:   "timeout",
		Short: "Record that a sent packet expired unanswered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.handle(cmd, gammquery.TimeoutEvent{
				SourceChannel:  channelID,
				OriginalPacket: []byte(original),
			})
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "local channel the packet was sent on")
	cmd.Flags().StringVar(&original, "packet", "", "data of the original packet")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}

func newReceiveCmd(a *app) *cobra.Command {
	var (
		channelID string
		data      string
	)
	cmd := &cobra.Command{
		Use:    "receive",
		Short:  "Deliver a packet sent by the counterparty",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.handle(cmd, gammquery.ReceiveEvent{
				DestinationChannel: channelID,
				Data:               []byte(data),
			})
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "local channel the packet arrived on")
	cmd.Flags().StringVar(&data, "data", "", "packet data")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}
