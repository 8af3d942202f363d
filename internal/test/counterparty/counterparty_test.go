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

package counterparty_test

import (
	"testing"

	"github.com/blinklabs-io/gammquery/internal/test/counterparty"
	"github.com/blinklabs-io/gammquery/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer(t *testing.T) {
	c := counterparty.New(counterparty.WithSpotPrice("2.5"))
	data, err := packet.NewSpotPriceEnvelope(
		packet.FormatPath,
		"",
		packet.SpotPriceQuery{PoolID: 1, TokenIn: "uosmo", TokenOut: "uion"},
	).Encode()
	require.NoError(t, err)

	ackData, err := c.Answer(data)
	require.NoError(t, err)
	a, err := packet.DecodeAcknowledgement(ackData)
	require.NoError(t, err)
	var price string
	err = a.Match(
		func(res []byte) error {
			decoded, err := packet.DecodeSpotPriceResult(res)
			price = decoded.Price
			return err
		},
		func(msg string) error {
			t.Fatalf("unexpected error acknowledgement: %s", msg)
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "2.5", price)
	assert.Len(t, c.Received(), 1)
}

func TestAnswerFailure(t *testing.T) {
	c := counterparty.New(counterparty.WithFailure("pool not found"))
	data, err := packet.NewProbeEnvelope(packet.FormatPath, "").Encode()
	require.NoError(t, err)
	ackData, err := c.Answer(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"pool not found"}`, string(ackData))

	_, err = c.Answer([]byte("junk"))
	assert.ErrorIs(t, err, packet.ErrDecode)
}
