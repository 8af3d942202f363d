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

package channel

import "errors"

var (
	// ErrVersionMismatch is returned when a proposed version differs from the configured one
	ErrVersionMismatch = errors.New("channel version mismatch")
	// ErrOrderMismatch is returned when a proposed ordering differs from the configured one
	ErrOrderMismatch = errors.New("channel order mismatch")
	// ErrChannelConnected is returned when a handshake is proposed for a connected channel
	ErrChannelConnected = errors.New("channel already connected")
)
