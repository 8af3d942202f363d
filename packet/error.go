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

package packet

import "errors"

// ErrDecode is returned for any envelope, acknowledgement or result payload
// that cannot be decoded
var ErrDecode = errors.New("packet decode error")

// ErrInvalidValue is returned when a decimal, integer amount, coin or address
// string is malformed
var ErrInvalidValue = errors.New("invalid value")
