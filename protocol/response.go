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

// Attribute is a key/value pair recorded for auditing the handling of an event
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SendPacket is an outbound-send effect for the transport
type SendPacket struct {
	ChannelID string    `json:"channel_id"`
	Data      []byte    `json:"data"`
	Timeout   Timestamp `json:"timeout"`
}

// Response collects the effects and audit attributes produced while handling
// a single event. Effects are only released to the transport once the event
// has committed.
type Response struct {
	Messages   []SendPacket `json:"messages,omitempty"`
	Attributes []Attribute  `json:"attributes"`
}

// NewResponse returns an empty Response
func NewResponse() *Response {
	return &Response{}
}

// AddAttribute appends an audit attribute and returns the response for chaining
func (r *Response) AddAttribute(key string, value string) *Response {
	r.Attributes = append(
		r.Attributes,
		Attribute{Key: key, Value: value},
	)
	return r
}

// AddMessage appends an outbound-send effect and returns the response for chaining
func (r *Response) AddMessage(msg SendPacket) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// Attribute returns the value of the first attribute with the given key
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// LogArgs returns the attributes flattened into key/value pairs suitable for slog
func (r *Response) LogArgs() []any {
	ret := make([]any, 0, len(r.Attributes)*2)
	for _, attr := range r.Attributes {
		ret = append(ret, attr.Key, attr.Value)
	}
	return ret
}
