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

import "fmt"

// State is a single named state of a protocol state machine
type State struct {
	Id   uint
	Name string
}

// NewState returns a State with the given ID and name
func NewState(id uint, name string) State {
	return State{
		Id:   id,
		Name: name,
	}
}

func (s State) String() string {
	return s.Name
}

// StateTransition describes the state reached when an event of EventType is
// handled in the owning state
type StateTransition struct {
	EventType uint8
	NewState  State
}

// StateMapEntry lists the transitions permitted out of a state
type StateMapEntry struct {
	Transitions []StateTransition
}

// StateMap maps each state to its permitted transitions
type StateMap map[State]StateMapEntry

// Next returns the state reached by handling an event of the given type in the current state
func (s StateMap) Next(current State, eventType uint8) (State, error) {
	entry, ok := s[current]
	if !ok {
		return current, fmt.Errorf("%w: unknown state %s", ErrInvalidTransition, current)
	}
	for _, transition := range entry.Transitions {
		if transition.EventType == eventType {
			return transition.NewState, nil
		}
	}
	return current, fmt.Errorf(
		"%w: event type %d not permitted in state %s",
		ErrInvalidTransition,
		eventType,
		current,
	)
}
