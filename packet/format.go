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

import (
	"fmt"
	"strings"
)

// Discriminator identifies the query operation carried by an envelope
type Discriminator uint8

const (
	DiscriminatorSpotPrice    Discriminator = 1
	DiscriminatorEstimateSwap Discriminator = 2
	DiscriminatorProbe        Discriminator = 3
)

func (d Discriminator) String() string {
	switch d {
	case DiscriminatorSpotPrice:
		return "spot_price"
	case DiscriminatorEstimateSwap:
		return "estimate_swap"
	case DiscriminatorProbe:
		return "probe"
	default:
		return fmt.Sprintf("Discriminator(%d)", uint8(d))
	}
}

// Path returns the remote query path used for the discriminator in the path
// envelope form
func (d Discriminator) Path() string {
	switch d {
	case DiscriminatorSpotPrice:
		return PathSpotPrice
	case DiscriminatorEstimateSwap:
		return PathEstimateSwap
	case DiscriminatorProbe:
		return PathNodeInfo
	default:
		return ""
	}
}

// Format selects the JSON shape used for outbound envelopes
type Format uint8

const (
	// FormatPath is {client_id?, path, data} with protobuf encoded data
	FormatPath Format = iota
	// FormatQuery is {client_id?, query: {spot_price | estimate_swap: {...}}}
	FormatQuery
	// FormatFlat is {client_id?, pool_id, token_in, token_out}
	FormatFlat
)

func (f Format) String() string {
	switch f {
	case FormatPath:
		return "path"
	case FormatQuery:
		return "query"
	case FormatFlat:
		return "flat"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Supports reports whether the format can express the operation
func (f Format) Supports(d Discriminator) bool {
	switch f {
	case FormatPath:
		return d == DiscriminatorSpotPrice ||
			d == DiscriminatorEstimateSwap ||
			d == DiscriminatorProbe
	case FormatQuery:
		return d == DiscriminatorSpotPrice || d == DiscriminatorEstimateSwap
	case FormatFlat:
		return d == DiscriminatorSpotPrice
	default:
		return false
	}
}

// ParseFormat converts a format name as used in configuration
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "path":
		return FormatPath, nil
	case "query", "tagged":
		return FormatQuery, nil
	case "flat":
		return FormatFlat, nil
	default:
		return 0, fmt.Errorf("unknown envelope format %q", name)
	}
}
