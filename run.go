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

package gammquery

import "context"

// Run handles events from the channel one at a time until the channel is
// closed or the context is cancelled. Errors from individual events are sent
// on ErrorChan and do not stop the loop.
func (m *Module) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := m.HandleEvent(ev); err != nil {
				select {
				case m.errorChan <- err:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
