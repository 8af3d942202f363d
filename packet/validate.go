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
	"regexp"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Cosmos SDK denom rules
var denomRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`)

var coinRegexp = regexp.MustCompile(`^([0-9]+)([a-zA-Z][a-zA-Z0-9/:._-]{2,127})$`)

// ValidateDecimal checks that s is a non-negative decimal number
func ValidateDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: decimal %q: %w", ErrInvalidValue, s, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: decimal %q is negative", ErrInvalidValue, s)
	}
	return nil
}

// ValidateAmount checks that s is an unsigned integer that fits in 256 bits
func ValidateAmount(s string) error {
	if _, err := uint256.FromDecimal(s); err != nil {
		return fmt.Errorf("%w: amount %q: %w", ErrInvalidValue, s, err)
	}
	return nil
}

// ValidateDenom checks that s is a valid token denomination
func ValidateDenom(s string) error {
	if !denomRegexp.MatchString(s) {
		return fmt.Errorf("%w: denom %q", ErrInvalidValue, s)
	}
	return nil
}

// ParseCoin splits a coin string like "1000uosmo" into its amount and denom
func ParseCoin(s string) (*uint256.Int, string, error) {
	matches := coinRegexp.FindStringSubmatch(s)
	if matches == nil {
		return nil, "", fmt.Errorf("%w: coin %q", ErrInvalidValue, s)
	}
	amount, err := uint256.FromDecimal(matches[1])
	if err != nil {
		return nil, "", fmt.Errorf("%w: coin %q: %w", ErrInvalidValue, s, err)
	}
	return amount, matches[2], nil
}

// ValidateAddress checks that s is a bech32 address and returns its
// human-readable prefix
func ValidateAddress(s string) (string, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return "", fmt.Errorf("%w: address %q: %w", ErrInvalidValue, s, err)
	}
	if _, err := bech32.ConvertBits(data, 5, 8, false); err != nil {
		return "", fmt.Errorf("%w: address %q: %w", ErrInvalidValue, s, err)
	}
	return hrp, nil
}
