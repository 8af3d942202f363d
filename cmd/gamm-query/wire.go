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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/gammquery"
	"github.com/blinklabs-io/gammquery/internal/config"
	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

// sentPacket is the printed form of an outbound packet
type sentPacket struct {
	ChannelID string             `json:"channel_id"`
	Data      string             `json:"data"`
	Timeout   protocol.Timestamp `json:"timeout"`
}

func (a *app) wire(cmd *cobra.Command) error {
	v := viper.New()
	if err := v.BindPFlag("store.path", cmd.Flags().Lookup("store")); err != nil {
		return err
	}
	if err := v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	cfg, err := config.Load(v, a.configFile)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(
		slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}),
	)
	return nil
}

// openModule builds a module on top of the configured store file. Outbound
// packets are printed to out as JSON lines.
func (a *app) openModule(out io.Writer) (*gammquery.Module, error) {
	kv, err := store.OpenFileStore(a.cfg.StorePath)
	if err != nil {
		return nil, err
	}
	order, err := a.cfg.Order()
	if err != nil {
		return nil, err
	}
	format, err := a.cfg.Format()
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(out)
	transport := gammquery.TransportFunc(
		func(channelID string, data []byte, timeout protocol.Timestamp) error {
			return enc.Encode(sentPacket{
				ChannelID: channelID,
				Data:      string(data),
				Timeout:   timeout,
			})
		},
	)
	return gammquery.New(
		gammquery.WithStore(kv),
		gammquery.WithTransport(transport),
		gammquery.WithLogger(a.logger),
		gammquery.WithChannelVersion(a.cfg.ChannelVersion),
		gammquery.WithChannelOrder(order),
		gammquery.WithPacketFormat(format),
		gammquery.WithDefaultTimeout(a.cfg.DefaultTimeout),
	)
}

// handle runs a single event against the store and prints its attributes
func (a *app) handle(cmd *cobra.Command, ev gammquery.Event) error {
	m, err := a.openModule(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	// A failed event leaves the store file untouched
	resp, err := m.HandleEvent(ev)
	if err != nil {
		return err
	}
	if err := m.Close(); err != nil {
		return err
	}
	attrs := resp.Attributes
	if attrs == nil {
		attrs = []protocol.Attribute{}
	}
	return printJSON(cmd.OutOrStdout(), attrs)
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
