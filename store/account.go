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

package store

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/gammquery/cbor"
	"github.com/blinklabs-io/gammquery/protocol"
)

const accountsPrefix = "accounts/"

var (
	// ErrNotFound is returned when no account exists for a channel
	ErrNotFound = errors.New("account not found")
	// ErrInvalidChannelID is returned for an empty channel identifier
	ErrInvalidChannelID = errors.New("invalid channel id")
)

// Account is the cached view of the counterparty's last known answers for a
// single channel. A zero LastUpdateTime means no result has been applied yet.
type Account struct {
	cbor.StructAsArray
	LastUpdateTime   protocol.Timestamp `json:"last_update_time"`
	RemoteSpotPrice  string             `json:"remote_spot_price"`
	RemoteSwapAmount string             `json:"remote_swap_amount"`
	RemoteBalance    string             `json:"remote_balance"`
	RemoteAddress    string             `json:"remote_address"`
}

// AccountStore maps channel identifiers to accounts. Values are stored CBOR
// encoded under the "accounts/" prefix of the underlying KVStore.
type AccountStore struct {
	kv KVStore
}

// NewAccountStore returns an AccountStore backed by kv
func NewAccountStore(kv KVStore) *AccountStore {
	return &AccountStore{kv: kv}
}

func accountKey(channelID string) (string, error) {
	if channelID == "" {
		return "", ErrInvalidChannelID
	}
	return accountsPrefix + channelID, nil
}

// Has reports whether an account exists for the channel
func (s *AccountStore) Has(channelID string) (bool, error) {
	key, err := accountKey(channelID)
	if err != nil {
		return false, err
	}
	_, ok, err := s.kv.Get(key)
	return ok, err
}

// Load returns the account for the channel, or ErrNotFound
func (s *AccountStore) Load(channelID string) (Account, error) {
	key, err := accountKey(channelID)
	if err != nil {
		return Account{}, err
	}
	data, ok, err := s.kv.Get(key)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrNotFound, channelID)
	}
	return decodeAccount(channelID, data)
}

// Save stores the account for the channel, replacing any existing account
func (s *AccountStore) Save(channelID string, account Account) error {
	key, err := accountKey(channelID)
	if err != nil {
		return err
	}
	data, err := cbor.Encode(&account)
	if err != nil {
		return fmt.Errorf("encode account %s: %w", channelID, err)
	}
	return s.kv.Set(key, data)
}

// Update loads the account for the channel, applies fn and saves the result.
// Nothing is written if the account does not exist or fn returns an error.
func (s *AccountStore) Update(
	channelID string,
	fn func(Account) (Account, error),
) (Account, error) {
	account, err := s.Load(channelID)
	if err != nil {
		return Account{}, err
	}
	updated, err := fn(account)
	if err != nil {
		return Account{}, err
	}
	if err := s.Save(channelID, updated); err != nil {
		return Account{}, err
	}
	return updated, nil
}

// Delete removes the account for the channel. A missing account is not an error
func (s *AccountStore) Delete(channelID string) error {
	key, err := accountKey(channelID)
	if err != nil {
		return err
	}
	return s.kv.Delete(key)
}

// Scan calls fn for every account in ascending channel id order. Iteration
// stops at the first error, which is returned
func (s *AccountStore) Scan(fn func(channelID string, account Account) error) error {
	var scanErr error
	err := s.kv.Ascend(accountsPrefix, func(key string, value []byte) bool {
		channelID := key[len(accountsPrefix):]
		account, err := decodeAccount(channelID, value)
		if err != nil {
			scanErr = err
			return false
		}
		if err := fn(channelID, account); err != nil {
			scanErr = err
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return scanErr
}

func decodeAccount(channelID string, data []byte) (Account, error) {
	var account Account
	if err := cbor.DecodeFull(data, &account); err != nil {
		return Account{}, fmt.Errorf("decode account %s: %w", channelID, err)
	}
	return account, nil
}
