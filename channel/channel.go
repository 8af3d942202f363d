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

// Package channel implements the channel lifecycle: handshake validation on
// open, and creation and removal of the per-channel account on connect and
// close.
package channel

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	// DefaultVersion is the only channel version this module speaks
	DefaultVersion = "cw-query-1"
	// DefaultOrder is the only channel ordering this module accepts
	DefaultOrder = OrderUnordered
)

// Order is the delivery ordering of a channel
type Order uint8

const (
	OrderNone      Order = 0
	OrderUnordered Order = 1
	OrderOrdered   Order = 2
)

func (o Order) String() string {
	switch o {
	case OrderUnordered:
		return "unordered"
	case OrderOrdered:
		return "ordered"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ParseOrder converts an ordering name such as "unordered" or
// "ORDER_UNORDERED"
func ParseOrder(name string) (Order, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "order_") {
	case "unordered":
		return OrderUnordered, nil
	case "ordered":
		return OrderOrdered, nil
	default:
		return OrderNone, fmt.Errorf("unknown channel ordering %q", name)
	}
}

// OpenRequest carries the parameters proposed for a new channel. An empty
// CounterpartyVersion means the counterparty has not proposed one yet.
type OpenRequest struct {
	ChannelID           string
	Order               Order
	Version             string
	CounterpartyVersion string
}

// Config holds the statically configured handshake parameters
type Config struct {
	Version string
	Order   Order
	Logger  *slog.Logger
}

// ChannelOptionFunc is a function that modifies a Config
type ChannelOptionFunc func(*Config)

// NewConfig returns a Config with the default version and ordering, with any
// option functions applied
func NewConfig(options ...ChannelOptionFunc) Config {
	c := Config{
		Version: DefaultVersion,
		Order:   DefaultOrder,
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithVersion sets the required channel version
func WithVersion(version string) ChannelOptionFunc {
	return func(c *Config) {
		c.Version = version
	}
}

// WithOrder sets the required channel ordering
func WithOrder(order Order) ChannelOptionFunc {
	return func(c *Config) {
		c.Order = order
	}
}

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) ChannelOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}
