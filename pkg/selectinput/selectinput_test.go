package selectinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleOptions() []Option {
	return []Option{
		{Value: "A", Label: "Option A", Icon: "a.svg"},
		{Value: "Bb", Label: "Option Bb", Icon: "b.svg"},
		{Value: "c", Label: "Option c", Icon: "c.svg"},
	}
}

func TestVisibleFiltersCaseInsensitively(t *testing.T) {
	in := New(sampleOptions(), "Pick one", nil)

	in.SetFilter("b")
	visible := in.Visible()
	assert.Len(t, visible, 1)
	assert.Equal(t, "Bb", visible[0].Value)

	in.SetFilter("B")
	visible = in.Visible()
	assert.Len(t, visible, 1)
	assert.Equal(t, "Bb", visible[0].Value)
}

func TestVisibleEmptyFilterKeepsInputOrder(t *testing.T) {
	in := New(sampleOptions(), "Pick one", nil)

	visible := in.Visible()
	assert.Equal(t, sampleOptions(), visible)
}

func TestVisibleNoMatch(t *testing.T) {
	in := New(sampleOptions(), "Pick one", nil)

	in.SetFilter("zzz")
	assert.Empty(t, in.Visible())
}

func TestSelectInvokesCallbackOnceAndCloses(t *testing.T) {
	var calls []Option
	in := New(sampleOptions(), "Pick one", func(opt Option) {
		calls = append(calls, opt)
	})

	in.Toggle()
	assert.True(t, in.IsOpen())

	in.Select(sampleOptions()[1])

	assert.Len(t, calls, 1)
	assert.Equal(t, Option{Value: "Bb", Label: "Option Bb", Icon: "b.svg"}, calls[0])
	assert.Equal(t, "Bb", in.Label())
	assert.False(t, in.IsOpen())
}

func TestDefaultLabelShownUntilSelection(t *testing.T) {
	in := New(sampleOptions(), "Choose a vehicle", nil)
	assert.Equal(t, "Choose a vehicle", in.Label())
}

func TestToggleFlipsOpenState(t *testing.T) {
	in := New(sampleOptions(), "Pick one", nil)

	assert.False(t, in.IsOpen())
	in.Toggle()
	assert.True(t, in.IsOpen())
	in.Toggle()
	assert.False(t, in.IsOpen())
}

func TestToggleOverrideGatesOpening(t *testing.T) {
	in := New(sampleOptions(), "Pick one", nil)

	allow := false
	in.SetToggleOverride(func(toggle func()) {
		if allow {
			toggle()
		}
	})

	in.Toggle()
	assert.False(t, in.IsOpen(), "override did not invoke toggle")

	allow = true
	in.Toggle()
	assert.True(t, in.IsOpen(), "override invoked toggle")

	in.SetToggleOverride(nil)
	in.Toggle()
	assert.False(t, in.IsOpen(), "internal toggle restored")
}
