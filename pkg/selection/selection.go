// Package selection implements node hit testing and the two-state
// selection machine that decides which item's details popup is open.
package selection

import (
	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Placer computes the popup anchor for a pointer position.
type Placer interface {
	Place(pointer model.Point) model.Point
}

// State is either Deselected (ID == "") or Selected(ID) with the popup
// anchor captured when the selection was made.
type State struct {
	ID     string      `json:"id,omitempty"`
	Anchor model.Point `json:"anchor"`
}

// Selected reports whether an item is selected.
func (s State) Selected() bool { return s.ID != "" }

// Machine is the selection state machine. The anchor is fixed at selection
// time and does not follow later pan or zoom.
type Machine struct {
	placer Placer
	state  State
}

// NewMachine returns a deselected machine that anchors popups with placer.
func NewMachine(placer Placer) *Machine {
	return &Machine{placer: placer}
}

// NodeClick toggles selection of id. Clicking the selected node deselects;
// clicking any other node selects it and captures a fresh anchor.
func (m *Machine) NodeClick(id string, pointer model.Point) {
	if id == "" {
		return
	}
	if m.state.ID == id {
		m.state = State{}
		return
	}
	anchor := pointer
	if m.placer != nil {
		anchor = m.placer.Place(pointer)
	}
	m.state = State{ID: id, Anchor: anchor}
}

// Select selects id without toggling, as keyboard navigation does.
func (m *Machine) Select(id string, pointer model.Point) {
	if id == "" || m.state.ID == id {
		return
	}
	m.NodeClick(id, pointer)
}

// PointerDownOutside clears the selection.
func (m *Machine) PointerDownOutside() { m.state = State{} }

// ResultSetReplaced clears the selection.
func (m *Machine) ResultSetReplaced() { m.state = State{} }

// Clear clears the selection, e.g. from the popup close button.
func (m *Machine) Clear() { m.state = State{} }

// Current returns the selected ID and its popup anchor.
func (m *Machine) Current() (id string, anchor model.Point, ok bool) {
	return m.state.ID, m.state.Anchor, m.state.Selected()
}

// State returns a copy of the machine state.
func (m *Machine) State() State { return m.state }
