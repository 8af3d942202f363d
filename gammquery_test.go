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

package gammquery_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/blinklabs-io/gammquery"
	"github.com/blinklabs-io/gammquery/ack"
	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/dispatch"
	"github.com/blinklabs-io/gammquery/internal/test"
	"github.com/blinklabs-io/gammquery/internal/test/counterparty"
	"github.com/blinklabs-io/gammquery/packet"
	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Unix(1_700_000_000, 0)

type testModule struct {
	module    *gammquery.Module
	clock     *test.MockClock
	transport *test.CaptureTransport
}

func newTestModule(t *testing.T, options ...gammquery.ModuleOptionFunc) *testModule {
	t.Helper()
	tm := &testModule{
		clock:     test.NewMockClock(testStart),
		transport: &test.CaptureTransport{},
	}
	options = append(
		[]gammquery.ModuleOptionFunc{
			gammquery.WithClock(tm.clock),
			gammquery.WithTransport(tm.transport),
		},
		options...,
	)
	m, err := gammquery.New(options...)
	if err != nil {
		t.Fatalf("unexpected error when creating module: %s", err)
	}
	tm.module = m
	return tm
}

func (tm *testModule) handle(t *testing.T, ev gammquery.Event) *protocol.Response {
	t.Helper()
	resp, err := tm.module.HandleEvent(ev)
	if err != nil {
		t.Fatalf("unexpected error handling %T: %s", ev, err)
	}
	return resp
}

func (tm *testModule) connect(t *testing.T, channelID string) {
	t.Helper()
	tm.handle(t, gammquery.ChannelOpenEvent{
		ChannelID: channelID,
		Order:     channel.OrderUnordered,
		Version:   channel.DefaultVersion,
	})
	tm.handle(t, gammquery.ChannelConnectEvent{ChannelID: channelID})
}

func TestProperHandshakeFlow(t *testing.T) {
	tm := newTestModule(t)
	tm.connect(t, "channel-1234")

	acct, err := tm.module.Account("channel-1234")
	require.NoError(t, err)
	assert.Empty(t, acct.RemoteSpotPrice)
	assert.Equal(t, uint64(0), acct.LastUpdateTime.Nanos())
}

func TestEnforceVersionInHandshake(t *testing.T) {
	tm := newTestModule(t)
	_, err := tm.module.HandleEvent(gammquery.ChannelOpenEvent{
		ChannelID: "channel-12",
		Order:     channel.OrderOrdered,
		Version:   channel.DefaultVersion,
	})
	assert.ErrorIs(t, err, channel.ErrOrderMismatch)
	_, err = tm.module.HandleEvent(gammquery.ChannelOpenEvent{
		ChannelID: "channel-12",
		Order:     channel.OrderUnordered,
		Version:   "reflect",
	})
	assert.ErrorIs(t, err, channel.ErrVersionMismatch)
	_, err = tm.module.HandleEvent(gammquery.ChannelOpenEvent{
		ChannelID:           "channel-12",
		Order:               channel.OrderUnordered,
		Version:             channel.DefaultVersion,
		CounterpartyVersion: "reflect",
	})
	assert.ErrorIs(t, err, channel.ErrVersionMismatch)

	// A rejected handshake leaves no account behind
	_, err = tm.module.Account("channel-12")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestQueryScenario(t *testing.T) {
	tm := newTestModule(t)
	remote := counterparty.New(counterparty.WithSpotPrice("1.50"))

	// Connect and check the empty account
	tm.connect(t, "channel-1234")
	acct, err := tm.module.Account("channel-1234")
	require.NoError(t, err)
	assert.Equal(t, gammquery.AccountResponse{}, *acct)

	// Query on an unregistered channel
	_, err = tm.module.HandleEvent(gammquery.SpotPriceRequest{
		Channel:  "channel-xyz",
		PoolID:   1,
		TokenIn:  "uosmo",
		TokenOut: "uion",
	})
	if !errors.Is(err, dispatch.ErrChannelNotFound) {
		t.Fatalf("did not get expected error: got %v, wanted %v", err, dispatch.ErrChannelNotFound)
	}
	assert.Empty(t, tm.transport.Packets())

	// Query on the connected channel
	resp := tm.handle(t, gammquery.SpotPriceRequest{
		Channel:  "channel-1234",
		PoolID:   1,
		TokenIn:  "uosmo",
		TokenOut: "uion",
	})
	action, _ := resp.Attribute("action")
	assert.Equal(t, "spot_price", action)
	sent, ok := tm.transport.Last()
	require.True(t, ok)
	assert.Equal(t, "channel-1234", sent.ChannelID)
	assert.Equal(
		t,
		protocol.NewTimestamp(testStart).PlusSeconds(dispatch.DefaultPacketLifetime),
		sent.Timeout,
	)
	acct, err = tm.module.Account("channel-1234")
	require.NoError(t, err)
	assert.Equal(t, gammquery.AccountResponse{}, *acct, "dispatch must not touch the account")

	// Result acknowledgement at time T
	tm.clock.Advance(42 * time.Second)
	ackData, err := remote.Answer(sent.Data)
	require.NoError(t, err)
	tm.handle(t, gammquery.AcknowledgementEvent{
		SourceChannel:   "channel-1234",
		OriginalPacket:  sent.Data,
		Acknowledgement: ackData,
	})
	expected := gammquery.AccountResponse{
		LastUpdateTime:  protocol.NewTimestamp(testStart.Add(42 * time.Second)),
		RemoteSpotPrice: "1.50",
	}
	acct, err = tm.module.Account("channel-1234")
	require.NoError(t, err)
	assert.Equal(t, expected, *acct)

	// Error acknowledgement leaves the account alone
	tm.clock.Advance(time.Minute)
	errAck, err := packet.NewErrorAck("timeout").Encode()
	require.NoError(t, err)
	resp = tm.handle(t, gammquery.AcknowledgementEvent{
		SourceChannel:   "channel-1234",
		OriginalPacket:  sent.Data,
		Acknowledgement: errAck,
	})
	msg, _ := resp.Attribute("error")
	assert.Equal(t, "timeout", msg)
	acct, err = tm.module.Account("channel-1234")
	require.NoError(t, err)
	assert.Equal(t, expected, *acct)

	// Close removes the account
	tm.handle(t, gammquery.ChannelCloseEvent{ChannelID: "channel-1234"})
	_, err = tm.module.Account("channel-1234")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("did not get expected error: got %v, wanted %v", err, store.ErrNotFound)
	}
}

func TestResultAfterCloseIsFatal(t *testing.T) {
	tm := newTestModule(t)
	tm.connect(t, "channel-1")
	tm.handle(t, gammquery.ProbeRequest{Channel: "channel-1"})
	sent, _ := tm.transport.Last()
	tm.handle(t, gammquery.ChannelCloseEvent{ChannelID: "channel-1"})

	remote := counterparty.New(counterparty.WithBalance("10", ""))
	ackData, err := remote.Answer(sent.Data)
	require.NoError(t, err)
	_, err = tm.module.HandleEvent(gammquery.AcknowledgementEvent{
		SourceChannel:   "channel-1",
		OriginalPacket:  sent.Data,
		Acknowledgement: ackData,
	})
	assert.ErrorIs(t, err, ack.ErrNoAccountToUpdate)
	_, err = tm.module.Account("channel-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Timeouts are still accepted after close
	resp := tm.handle(t, gammquery.TimeoutEvent{SourceChannel: "channel-1", OriginalPacket: sent.Data})
	action, _ := resp.Attribute("action")
	assert.Equal(t, "ibc_packet_timeout", action)
}

func TestFailedEventDoesNotCommit(t *testing.T) {
	kv := store.NewMemStore()
	tm := newTestModule(t, gammquery.WithStore(kv))
	tm.connect(t, "channel-1")
	tm.handle(t, gammquery.SpotPriceRequest{Channel: "channel-1", PoolID: 1, TokenIn: "uosmo", TokenOut: "uion"})
	sent, _ := tm.transport.Last()
	before, _, err := kv.Get("accounts/channel-1")
	require.NoError(t, err)

	badResult, err := packet.NewResultAck([]byte(`{"price":"not-a-number"}`)).Encode()
	require.NoError(t, err)
	_, err = tm.module.HandleEvent(gammquery.AcknowledgementEvent{
		SourceChannel:   "channel-1",
		OriginalPacket:  sent.Data,
		Acknowledgement: badResult,
	})
	assert.ErrorIs(t, err, packet.ErrDecode)
	after, _, err := kv.Get("accounts/channel-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTransportErrors(t *testing.T) {
	m, err := gammquery.New(gammquery.WithClock(test.NewMockClock(testStart)))
	require.NoError(t, err)
	_, err = m.HandleEvent(gammquery.ChannelConnectEvent{ChannelID: "channel-1"})
	require.NoError(t, err)
	_, err = m.HandleEvent(gammquery.ProbeRequest{Channel: "channel-1"})
	assert.ErrorIs(t, err, gammquery.ErrNoTransport)

	tm := newTestModule(t)
	tm.connect(t, "channel-1")
	boom := errors.New("link down")
	tm.transport.Err = boom
	_, err = tm.module.HandleEvent(gammquery.ProbeRequest{Channel: "channel-1"})
	assert.ErrorIs(t, err, boom)
}

func TestInboundPacketRejected(t *testing.T) {
	tm := newTestModule(t)
	tm.connect(t, "channel-1")
	_, err := tm.module.HandleEvent(gammquery.ReceiveEvent{DestinationChannel: "channel-1", Data: []byte("{}")})
	assert.ErrorIs(t, err, ack.ErrUnsupportedInboundPacket)
}

func TestListAccounts(t *testing.T) {
	tm := newTestModule(t)
	list, err := tm.module.ListAccounts()
	require.NoError(t, err)
	assert.Empty(t, list.Accounts)
	assert.NotNil(t, list.Accounts)

	for _, id := range []string{"channel-2", "channel-1", "channel-3"} {
		tm.connect(t, id)
	}
	tm.handle(t, gammquery.ChannelCloseEvent{ChannelID: "channel-3"})

	remote := counterparty.New(counterparty.WithSwapAmount("500"))
	tm.handle(t, gammquery.EstimateSwapRequest{
		Channel:  "channel-2",
		Sender:   "osmo1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5helwsw",
		PoolID:   1,
		TokenIn:  "1000uosmo",
		TokenOut: "uion",
	})
	sent, _ := tm.transport.Last()
	ackData, err := remote.Answer(sent.Data)
	require.NoError(t, err)
	tm.handle(t, gammquery.AcknowledgementEvent{
		SourceChannel:   "channel-2",
		OriginalPacket:  sent.Data,
		Acknowledgement: ackData,
	})

	list, err = tm.module.ListAccounts()
	require.NoError(t, err)
	require.Len(t, list.Accounts, 2)
	assert.Equal(t, "channel-1", list.Accounts[0].ChannelID)
	assert.Equal(t, "channel-2", list.Accounts[1].ChannelID)
	assert.Equal(t, "500", list.Accounts[1].RemoteSwapAmount)
	assert.Equal(t, protocol.NewTimestamp(testStart), list.Accounts[1].LastUpdateTime)
}

func TestFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	fs, err := store.OpenFileStore(path)
	require.NoError(t, err)
	tm := newTestModule(t, gammquery.WithStore(fs))
	tm.connect(t, "channel-7")
	require.NoError(t, tm.module.Close())

	_, err = tm.module.HandleEvent(gammquery.ChannelConnectEvent{ChannelID: "channel-8"})
	assert.ErrorIs(t, err, gammquery.ErrModuleClosed)

	reopened, err := store.OpenFileStore(path)
	require.NoError(t, err)
	m, err := gammquery.New(gammquery.WithStore(reopened))
	require.NoError(t, err)
	acct, err := m.Account("channel-7")
	require.NoError(t, err)
	assert.True(t, acct.LastUpdateTime.IsZero())
}

func TestResponseFunc(t *testing.T) {
	var actions []string
	tm := newTestModule(t, gammquery.WithResponseFunc(func(_ gammquery.Event, resp *protocol.Response) {
		action, _ := resp.Attribute("action")
		actions = append(actions, action)
	}))
	tm.connect(t, "channel-1")
	tm.handle(t, gammquery.ChannelCloseEvent{ChannelID: "channel-1"})
	assert.Equal(t, []string{"", "ibc_connect", "ibc_close"}, actions)
}

func TestNewValidation(t *testing.T) {
	_, err := gammquery.New(gammquery.WithChannelVersion(""))
	assert.Error(t, err)
	_, err = gammquery.New(gammquery.WithChannelOrder(channel.OrderNone))
	assert.Error(t, err)
	_, err = gammquery.New(gammquery.WithPacketFormat(packet.Format(9)))
	assert.Error(t, err)

	m, err := gammquery.New(
		gammquery.WithChannelVersion("cw-query-2"),
		gammquery.WithChannelOrder(channel.OrderOrdered),
		gammquery.WithPacketFormat(packet.FormatQuery),
		gammquery.WithDefaultTimeout(60),
	)
	require.NoError(t, err)
	assert.Equal(t, "cw-query-2", m.ChannelConfig().Version)
	assert.Equal(t, channel.OrderOrdered, m.ChannelConfig().Order)
	assert.Equal(t, packet.FormatQuery, m.DispatchConfig().Format)
	assert.Equal(t, uint64(60), m.DispatchConfig().DefaultTimeout)
}

type failingFlushStore struct {
	*store.MemStore
	err error
}

func (s *failingFlushStore) Flush() error {
	return s.err
}

func TestFlushFailureRollsBack(t *testing.T) {
	kv := &failingFlushStore{MemStore: store.NewMemStore(), err: errors.New("disk full")}
	tm := newTestModule(t, gammquery.WithStore(kv))

	_, err := tm.module.HandleEvent(gammquery.ChannelConnectEvent{ChannelID: "channel-1"})
	if err == nil {
		t.Fatalf("did not get expected flush error")
	}
	assert.Contains(t, err.Error(), "disk full")
	_, err = tm.module.Account("channel-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, kv.Len())

	// An existing account is restored to its previous value
	kv.err = nil
	tm.handle(t, gammquery.ChannelConnectEvent{ChannelID: "channel-1"})
	sent := tm.handle(t, gammquery.SpotPriceRequest{
		Channel:  "channel-1",
		PoolID:   1,
		TokenIn:  "uosmo",
		TokenOut: "uion",
	})
	require.Len(t, sent.Messages, 1)
	ackData, err := counterparty.New(counterparty.WithSpotPrice("4.00")).Answer(sent.Messages[0].Data)
	require.NoError(t, err)

	kv.err = errors.New("disk full")
	_, err = tm.module.HandleEvent(gammquery.AcknowledgementEvent{
		SourceChannel:   "channel-1",
		OriginalPacket:  sent.Messages[0].Data,
		Acknowledgement: ackData,
	})
	if err == nil {
		t.Fatalf("did not get expected flush error")
	}
	acct, err := tm.module.Account("channel-1")
	require.NoError(t, err)
	assert.Empty(t, acct.RemoteSpotPrice)
	assert.True(t, acct.LastUpdateTime.IsZero())
}

// runWithin fails the test if fn does not return within the deadline
func runWithin(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		fn()
	}()
	select {
	case <-doneCh:
	case <-time.After(d):
		t.Fatalf("did not complete within %s", d)
	}
}

func TestResponseFuncReadsModule(t *testing.T) {
	var tm *testModule
	var seen []string
	tm = newTestModule(t, gammquery.WithResponseFunc(
		func(ev gammquery.Event, _ *protocol.Response) {
			acct, err := tm.module.Account(ev.EventChannel())
			if err != nil {
				seen = append(seen, "missing")
				return
			}
			seen = append(seen, acct.RemoteSpotPrice+"ok")
		},
	))
	runWithin(t, 2*time.Second, func() {
		_, err := tm.module.HandleEvent(gammquery.ChannelConnectEvent{ChannelID: "channel-1"})
		assert.NoError(t, err)
	})
	assert.Equal(t, []string{"ok"}, seen)
}

func TestLoopbackTransport(t *testing.T) {
	var tm *testModule
	remote := counterparty.New(counterparty.WithSpotPrice("2.25"))
	loopback := gammquery.TransportFunc(
		func(channelID string, data []byte, _ protocol.Timestamp) error {
			answer, err := remote.Answer(data)
			if err != nil {
				return err
			}
			_, err = tm.module.HandleEvent(gammquery.AcknowledgementEvent{
				SourceChannel:   channelID,
				OriginalPacket:  data,
				Acknowledgement: answer,
			})
			return err
		},
	)
	tm = newTestModule(t, gammquery.WithTransport(loopback))
	tm.connect(t, "channel-1")

	runWithin(t, 2*time.Second, func() {
		_, err := tm.module.HandleEvent(gammquery.SpotPriceRequest{
			Channel:  "channel-1",
			PoolID:   1,
			TokenIn:  "uosmo",
			TokenOut: "uion",
		})
		assert.NoError(t, err)
	})
	acct, err := tm.module.Account("channel-1")
	require.NoError(t, err)
	assert.Equal(t, "2.25", acct.RemoteSpotPrice)
}

func TestLifecycleGating(t *testing.T) {
	tm := newTestModule(t)

	_, err := tm.module.HandleEvent(gammquery.ProbeRequest{Channel: "channel-1"})
	assert.ErrorIs(t, err, dispatch.ErrChannelNotFound)
	assert.ErrorIs(t, err, protocol.ErrInvalidTransition)

	tm.connect(t, "channel-1")
	_, err = tm.module.HandleEvent(gammquery.ChannelOpenEvent{
		ChannelID: "channel-1",
		Order:     channel.OrderUnordered,
		Version:   channel.DefaultVersion,
	})
	assert.ErrorIs(t, err, channel.ErrChannelConnected)
	assert.ErrorIs(t, err, protocol.ErrInvalidTransition)

	_, err = tm.module.HandleEvent(gammquery.ReceiveEvent{
		DestinationChannel: "channel-1",
		Data:               []byte(`{}`),
	})
	assert.ErrorIs(t, err, ack.ErrUnsupportedInboundPacket)

	// Close then reopen is permitted
	tm.handle(t, gammquery.ChannelCloseEvent{ChannelID: "channel-1"})
	tm.connect(t, "channel-1")
	assert.Empty(t, tm.transport.Packets())
}

func TestConnectEmptyChannelID(t *testing.T) {
	tm := newTestModule(t)
	_, err := tm.module.HandleEvent(gammquery.ChannelConnectEvent{})
	assert.ErrorIs(t, err, store.ErrInvalidChannelID)
	list, err := tm.module.ListAccounts()
	require.NoError(t, err)
	assert.Empty(t, list.Accounts)
}
