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

package dispatch

import "errors"

var (
	// ErrChannelNotFound is returned when dispatching on a channel without an account
	ErrChannelNotFound = errors.New("channel not found")
	// ErrInvalidRequest is returned for malformed query parameters
	ErrInvalidRequest = errors.New("invalid request")
	// ErrFormatUnsupported is returned when the configured envelope format
	// cannot express the requested operation
	ErrFormatUnsupported = errors.New("envelope format does not support operation")
)
