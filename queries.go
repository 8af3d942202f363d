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

package gammquery

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
)

// AccountResponse is the account for a single channel
type AccountResponse struct {
	LastUpdateTime   protocol.Timestamp `json:"last_update_time"`
	RemoteSpotPrice  string             `json:"remote_spot_price"`
	RemoteSwapAmount string             `json:"remote_swap_amount"`
	RemoteBalance    string             `json:"remote_balance"`
	RemoteAddress    string             `json:"remote_address"`
}

// AccountInfo is an account together with its channel
type AccountInfo struct {
	ChannelID        string             `json:"channel_id"`
	LastUpdateTime   protocol.Timestamp `json:"last_update_time"`
	RemoteSpotPrice  string             `json:"remote_spot_price"`
	RemoteSwapAmount string             `json:"remote_swap_amount"`
	RemoteBalance    string             `json:"remote_balance"`
	RemoteAddress    string             `json:"remote_address"`
}

// ListAccountsResponse lists every account in ascending channel order
type ListAccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// Account returns the account for a channel, or an error wrapping
// store.ErrNotFound
func (m *Module) Account(channelID string) (*AccountResponse, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	account, err := store.NewAccountStore(m.kv).Load(channelID)
	if err != nil {
		return nil, err
	}
	var resp AccountResponse
	if err := copier.Copy(&resp, &account); err != nil {
		return nil, fmt.Errorf("convert account %s: %w", channelID, err)
	}
	return &resp, nil
}

// ListAccounts returns every account
func (m *Module) ListAccounts() (*ListAccountsResponse, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	resp := &ListAccountsResponse{
		Accounts: []AccountInfo{},
	}
	err := store.NewAccountStore(m.kv).Scan(
		func(channelID string, account store.Account) error {
			info := AccountInfo{ChannelID: channelID}
			if err := copier.Copy(&info, &account); err != nil {
				return fmt.Errorf("convert account %s: %w", channelID, err)
			}
			resp.Accounts = append(resp.Accounts, info)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
