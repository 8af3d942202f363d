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
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "gamm-query",
		Short:        "Query a remote GAMM module over query channels",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.wire(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(
		&a.configFile,
		"config",
		"",
		"config file (default is ./gammquery.toml if present)",
	)
	cmd.PersistentFlags().String(
		"store",
		"",
		"account store file (overrides store.path)",
	)
	cmd.PersistentFlags().String(
		"log-level",
		"",
		"log level: debug, info, warn or error (overrides log.level)",
	)

	cmd.AddCommand(
		newChannelCmd(a),
		newQueryCmd(a),
		newAckCmd(a),
		newTimeoutCmd(a),
		newReceiveCmd(a),
		newAccountCmd(a),
		newAccountsCmd(a),
		newWatchCmd(a),
	)

	return cmd
}
