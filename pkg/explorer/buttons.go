package explorer

import "github.com/vanderheijden86/podgraph/pkg/model"

// Action is a popup button action.
type Action int

const (
	ActionNone Action = iota
	ActionPreview
	ActionAdd
	ActionClose
	ActionCopy
)

func (a Action) String() string {
	switch a {
	case ActionPreview:
		return "preview"
	case ActionAdd:
		return "add"
	case ActionClose:
		return "close"
	case ActionCopy:
		return "copy"
	default:
		return "none"
	}
}

// Button is a clickable area of the popup in screen units.
type Button struct {
	Action Action
	Label  string
	Rect   model.Rect
}

// Popup button geometry, in screen units relative to the popup rectangle.
const (
	iconButtonSize = 28.0
	buttonPad      = 8.0
	actionHeight   = 40.0
	actionInset    = 16.0
)

// PopupButtons lays out the close and copy icons in the top-right corner
// and the Preview and Add actions along the bottom edge.
func PopupButtons(popup model.Rect) []Button {
	x, y := popup.Min.X, popup.Min.Y
	w, h := popup.Size.W, popup.Size.H
	half := (w - 3*actionInset) / 2
	icon := model.Size{W: iconButtonSize, H: iconButtonSize}

	return []Button{
		{
			Action: ActionClose,
			Label:  "✕",
			Rect:   model.Rect{Min: model.Pt(x+w-buttonPad-iconButtonSize, y+buttonPad), Size: icon},
		},
		{
			Action: ActionCopy,
			Label:  "⧉",
			Rect:   model.Rect{Min: model.Pt(x+w-2*(buttonPad+iconButtonSize), y+buttonPad), Size: icon},
		},
		{
			Action: ActionPreview,
			Label:  "Preview",
			Rect:   model.Rect{Min: model.Pt(x+actionInset, y+h-actionInset-actionHeight), Size: model.Size{W: half, H: actionHeight}},
		},
		{
			Action: ActionAdd,
			Label:  "Add",
			Rect:   model.Rect{Min: model.Pt(x+2*actionInset+half, y+h-actionInset-actionHeight), Size: model.Size{W: half, H: actionHeight}},
		},
	}
}

// HitButton returns the action of the first button containing p.
func HitButton(buttons []Button, p model.Point) Action {
	for _, b := range buttons {
		if b.Rect.Contains(p) {
			return b.Action
		}
	}
	return ActionNone
}
