package ui

// Keybinding represents a keyboard shortcut with its display name.
type Keybinding struct {
	Key  string // actual key to match
	Desc string // description for the footer
}

// Global shortcuts, accepted in normal and filter-edit modes. None of
// these are honored while a kill confirmation is pending.
var (
	KeyQuit      = Keybinding{Key: "ctrl+q", Desc: "Quit"}
	KeyQuitAlt   = Keybinding{Key: "ctrl+c", Desc: "Quit"}
	KeyKill      = Keybinding{Key: "ctrl+x", Desc: "Kill"}
	KeyForceKill = Keybinding{Key: "ctrl+k", Desc: "Force kill"}
	KeyDetail    = Keybinding{Key: "ctrl+d", Desc: "Detail"}
	KeySort      = Keybinding{Key: "ctrl+s", Desc: "Sort"}
	KeyProto     = Keybinding{Key: "ctrl+t", Desc: "Protocols"}
	KeyRefresh   = Keybinding{Key: "ctrl+r", Desc: "Refresh"}
)

// Normal-mode shortcuts.
var (
	KeyFilter  = Keybinding{Key: "/", Desc: "Filter"}
	KeyUp      = Keybinding{Key: "up", Desc: "Move up"}
	KeyUpAlt   = Keybinding{Key: "k", Desc: "Move up"}
	KeyDown    = Keybinding{Key: "down", Desc: "Move down"}
	KeyDownAlt = Keybinding{Key: "j", Desc: "Move down"}
	KeyEsc     = Keybinding{Key: "esc", Desc: "Quit"}
)

// matchKey checks if the input matches any of the keybindings.
func matchKey(input string, keys ...Keybinding) bool {
	for _, k := range keys {
		if input == k.Key {
			return true
		}
	}
	return false
}
