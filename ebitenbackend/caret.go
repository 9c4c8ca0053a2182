package ebitenbackend

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// caretBlink is the duration of one caret fade in seconds.
const caretBlink float32 = 0.5

// caret fades the text caret of the focused input field in and out.
type caret struct {
	tween   *gween.Tween
	alpha   float32
	fadeOut bool
}

func newCaret() *caret {
	c := &caret{alpha: 1, fadeOut: true}
	c.tween = gween.New(1, 0, caretBlink, ease.InOutQuad)
	return c
}

// update advances the fade by dt seconds and flips direction at each end.
func (c *caret) update(dt float32) {
	v, done := c.tween.Update(dt)
	c.alpha = v
	if done {
		c.fadeOut = !c.fadeOut
		if c.fadeOut {
			c.tween = gween.New(1, 0, caretBlink, ease.InOutQuad)
		} else {
			c.tween = gween.New(0, 1, caretBlink, ease.InOutQuad)
		}
	}
}

// reset shows the caret fully, as after a keystroke.
func (c *caret) reset() {
	c.alpha = 1
	c.fadeOut = true
	c.tween = gween.New(1, 0, caretBlink, ease.InOutQuad)
}
