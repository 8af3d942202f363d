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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultWatchDebounce = 100 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print all accounts every time the store file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultWatchDebounce, "delay before printing after a change")
	return cmd
}

func (a *app) printAccounts(cmd *cobra.Command) error {
	m, err := a.openModule(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	accounts, err := m.ListAccounts()
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), accounts)
}

// watch prints the accounts once, then again after every change to the store
// file. The directory is watched since the store is replaced by rename.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, debounce time.Duration) error {
	storePath, err := filepath.Abs(a.cfg.StorePath)
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}
	storeDir := filepath.Dir(storePath)
	if err := os.MkdirAll(storeDir, 0o700); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(storeDir); err != nil {
		return fmt.Errorf("failed to watch store directory: %w", err)
	}

	if err := a.printAccounts(cmd); err != nil {
		return err
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()
	for {
		var debounceC <-chan time.Time
		if debounceTimer != nil {
			debounceC = debounceTimer.C
		}

		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(event.Name) != storePath {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(debounce)
				continue
			}
			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			a.logger.Warn(
				"watcher error",
				"component", "gammquery",
				"error", err,
			)

		case <-debounceC:
			debounceTimer = nil
			if err := a.printAccounts(cmd); err != nil {
				a.logger.Warn(
					"failed to read store",
					"component", "gammquery",
					"error", err,
				)
			}
		}
	}
}
