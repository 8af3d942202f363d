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

package test

import (
	"sync"

	"github.com/blinklabs-io/gammquery/protocol"
)

// SentPacket is a packet captured by CaptureTransport
type SentPacket struct {
	ChannelID string
	Data      []byte
	Timeout   protocol.Timestamp
}

// CaptureTransport records every packet sent through it. When Err is set,
// sends fail with it and nothing is recorded.
type CaptureTransport struct {
	mutex   sync.Mutex
	packets []SentPacket
	Err     error
}

func (c *CaptureTransport) SendPacket(
	channelID string,
	data []byte,
	timeout protocol.Timestamp,
) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.packets = append(
		c.packets,
		SentPacket{
			ChannelID: channelID,
			Data:      append([]byte(nil), data...),
			Timeout:   timeout,
		},
	)
	return nil
}

// Packets returns the captured packets in send order
func (c *CaptureTransport) Packets() []SentPacket {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	ret := make([]SentPacket, len(c.packets))
	copy(ret, c.packets)
	return ret
}

// Last returns the most recently captured packet
func (c *CaptureTransport) Last() (SentPacket, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.packets) == 0 {
		return SentPacket{}, false
	}
	return c.packets[len(c.packets)-1], true
}

// Reset drops all captured packets
func (c *CaptureTransport) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.packets = nil
}
