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

package protocol

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Timestamp is a point in time expressed as nanoseconds since the unix epoch,
// which is the unit the transport uses for packet deadlines. The zero value
// means "never".
type Timestamp uint64

// NewTimestamp converts a time.Time into a Timestamp. Times before the epoch
// map to zero
func NewTimestamp(t time.Time) Timestamp {
	nanos := t.UnixNano()
	if nanos < 0 {
		return 0
	}
	return Timestamp(nanos)
}

// PlusSeconds returns the timestamp advanced by the given number of seconds,
// saturating at the maximum representable value
func (t Timestamp) PlusSeconds(seconds uint64) Timestamp {
	if seconds > math.MaxUint64/uint64(time.Second) {
		return Timestamp(math.MaxUint64)
	}
	delta := seconds * uint64(time.Second)
	if uint64(t) > math.MaxUint64-delta {
		return Timestamp(math.MaxUint64)
	}
	return t + Timestamp(delta)
}

// Nanos returns the timestamp as nanoseconds since the unix epoch
func (t Timestamp) Nanos() uint64 {
	return uint64(t)
}

// Time returns the timestamp as a UTC time.Time
func (t Timestamp) Time() time.Time {
	if t > math.MaxInt64 {
		return time.Unix(0, math.MaxInt64).UTC()
	}
	return time.Unix(0, int64(t)).UTC()
}

// IsZero reports whether the timestamp is unset
func (t Timestamp) IsZero() bool {
	return t == 0
}

func (t Timestamp) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// MarshalJSON encodes the timestamp as a decimal string, which survives JSON
// consumers that parse numbers as float64
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("timestamp must be a decimal string: %w", err)
	}
	val, err := strconv.ParseUint(tmp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", tmp, err)
	}
	*t = Timestamp(val)
	return nil
}
