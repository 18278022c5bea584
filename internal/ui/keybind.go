package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// leader is the canonical spelling of the space key in a sequence.
const leader = "SPC"

type binding struct {
	cmd   tea.Cmd
	desc  string
	modes []AppMode // empty: every section
}

func (b binding) in(mode AppMode) bool {
	return len(b.modes) == 0 || slices.Contains(b.modes, mode)
}

// KeybindRegistry maps key sequences ("q", "SPC g t", "ctrl+s") to commands.
type KeybindRegistry struct {
	bindings map[string]binding
}

func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string]binding)}
}

// Bind registers seq for every section, without a hint.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDescForMode(seq, cmd, "", nil)
}

// BindWithDesc registers seq for every section.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode registers seq for the listed sections only. A later
// call for the same sequence replaces the earlier one.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	r.bindings[canonical(seq)] = binding{cmd: cmd, desc: desc, modes: modes}
}

// Lookup returns the command bound to seq in any section.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[canonical(seq)].cmd
}

// LookupForMode returns the command bound to seq when mode is active.
func (r *KeybindRegistry) LookupForMode(seq string, mode AppMode) tea.Cmd {
	b, ok := r.bindings[canonical(seq)]
	if !ok || !b.in(mode) {
		return nil
	}
	return b.cmd
}

// HasPrefixForMode reports whether a longer sequence starting with seq is
// bound in mode.
func (r *KeybindRegistry) HasPrefixForMode(seq string, mode AppMode) bool {
	prefix := canonical(seq) + " "
	for s, b := range r.bindings {
		if b.in(mode) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// submenuLabels name the leader groups in the hint bar.
var submenuLabels = map[string]string{
	"g": "Aller à",
	"a": "IA",
	"f": "Formulaire",
}

// LeaderHints lists the keys that may follow currentSeq ("" means just
// after SPC) in mode, with their description. A key that opens a group is
// shown under the group's label.
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	base := leader
	if currentSeq != "" {
		base = canonical(currentSeq)
	}
	out := make(map[string]string)
	for s, b := range r.bindings {
		rest, ok := strings.CutPrefix(s, base+" ")
		if !ok || b.cmd == nil || !b.in(mode) {
			continue
		}
		next, _, _ := strings.Cut(rest, " ")
		switch {
		case r.HasPrefixForMode(base+" "+next, mode):
			if label, ok := submenuLabels[next]; ok {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
		case b.desc != "":
			out[next] = b.desc
		default:
			out[next] = s
		}
	}
	return out
}

// canonical rewrites a space-separated sequence so " " and "space" read SPC.
func canonical(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = seqPart(p)
	}
	return strings.Join(parts, " ")
}

func seqPart(k string) string {
	if k == " " || k == "space" {
		return leader
	}
	return k
}

// KeyHandler tracks an in-progress leader sequence.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderWaiting bool
	Buffer        []string // keys typed since SPC, starting with SPC
}

func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Handle feeds one key press. consumed means the key belonged to the keybind
// layer and must not reach the focused view.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	k := msg.String()
	switch {
	case k == "esc":
		if !h.LeaderWaiting {
			return false, nil
		}
		h.reset()
		return true, nil

	case seqPart(k) == leader && !h.LeaderWaiting:
		h.LeaderWaiting = true
		h.Buffer = []string{leader}
		return true, nil

	case h.LeaderWaiting:
		h.Buffer = append(h.Buffer, seqPart(k))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.LookupForMode(seq, mode); c != nil {
			h.reset()
			return true, c
		}
		if !h.Registry.HasPrefixForMode(seq, mode) {
			h.reset()
		}
		return true, nil
	}
	if c := h.Registry.LookupForMode(seqPart(k), mode); c != nil {
		return true, c
	}
	return false, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// current is the typed leader sequence, or "" before SPC.
func (h *KeyHandler) current() string {
	if h == nil {
		return ""
	}
	return strings.Join(h.Buffer, " ")
}

// KeyMap adapts the leader hints of one section to bubbles/help.
type KeyMap struct {
	registry   *KeybindRegistry
	keyHandler *KeyHandler
	mode       AppMode
}

func NewKeyMap(registry *KeybindRegistry, keyHandler *KeyHandler, mode AppMode) help.KeyMap {
	return &KeyMap{registry: registry, keyHandler: keyHandler, mode: mode}
}

// ShortHelp returns the hints sorted by key, then esc.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	hints := km.registry.LeaderHints(km.keyHandler.current(), km.mode)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "annuler")))
}

func (km *KeyMap) FullHelp() [][]key.Binding {
	if short := km.ShortHelp(); len(short) > 0 {
		return [][]key.Binding{short}
	}
	return nil
}
