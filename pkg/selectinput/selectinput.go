// Package selectinput models the state of a searchable dropdown select:
// an open/closed flag, a free-text filter and the currently displayed label.
// It holds no shared state; create one Input per mounted control.
package selectinput

import "strings"

// Option is a single selectable entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// SelectCallback receives the full option record when one is selected.
type SelectCallback func(Option)

// ToggleOverride lets an external controller gate or intercept opening.
// It receives the toggle function and decides whether and when to call it.
type ToggleOverride func(toggle func())

// Input is the state of one select control.
type Input struct {
	options  []Option
	label    string
	open     bool
	filter   string
	onSelect SelectCallback
	onToggle ToggleOverride
}

// New creates a closed select showing defaultLabel. Option order is
// preserved throughout.
func New(options []Option, defaultLabel string, onSelect SelectCallback) *Input {
	return &Input{
		options:  options,
		label:    defaultLabel,
		onSelect: onSelect,
	}
}

// SetToggleOverride installs a toggle override. Passing nil restores the
// internal toggle behavior.
func (in *Input) SetToggleOverride(fn ToggleOverride) {
	in.onToggle = fn
}

// Toggle flips the open state, or delegates to the override if one is set.
func (in *Input) Toggle() {
	if in.onToggle != nil {
		in.onToggle(func() { in.open = !in.open })
		return
	}
	in.open = !in.open
}

// IsOpen reports whether the option list is showing.
func (in *Input) IsOpen() bool {
	return in.open
}

// SetFilter replaces the free-text filter.
func (in *Input) SetFilter(s string) {
	in.filter = s
}

// Filter returns the current filter text.
func (in *Input) Filter() string {
	return in.filter
}

// Visible returns the options whose Value contains the filter text as a
// case-insensitive substring, in input order. An empty filter matches all.
func (in *Input) Visible() []Option {
	needle := strings.ToLower(in.filter)

	visible := make([]Option, 0, len(in.options))
	for _, opt := range in.options {
		if strings.Contains(strings.ToLower(opt.Value), needle) {
			visible = append(visible, opt)
		}
	}
	return visible
}

// Select picks an option: the selection callback receives the full record,
// the displayed label becomes the option's value and the list closes.
func (in *Input) Select(opt Option) {
	if in.onSelect != nil {
		in.onSelect(opt)
	}
	in.label = opt.Value
	in.open = false
}

// Label returns the currently displayed label.
func (in *Input) Label() string {
	return in.label
}
