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

import "errors"

var (
	// ErrNoTransport is returned when an event produces outbound packets and
	// no transport was configured
	ErrNoTransport = errors.New("no transport configured")
	// ErrUnknownEvent is returned for event types the module does not handle
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrModuleClosed is returned for events handled after Close
	ErrModuleClosed = errors.New("module is closed")
)
