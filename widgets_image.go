package fgui

// --- Image ---

// Image displays an atlas sprite, optionally tinted, mirrored or partially
// filled.
type Image struct {
	owner         *Object
	color         Color
	flip          FlipType
	fillMethod    FillMethod
	fillOrigin    int
	fillClockwise bool
	fillAmount    float32
}

func newImage(o *Object) *Image {
	return &Image{owner: o, color: ColorWhite, fillClockwise: true, fillAmount: 1}
}

// Color returns the tint.
func (im *Image) Color() Color { return im.color }

// SetColor sets the tint. Object.SetColor also records the value in the
// color gear.
func (im *Image) SetColor(c Color) {
	if im.color == c {
		return
	}
	im.color = c
	o := im.owner
	o.backend().SetTint(o.control, c)
}

// Flip returns the mirroring mode.
func (im *Image) Flip() FlipType { return im.flip }

// SetFlip mirrors the image.
func (im *Image) SetFlip(v FlipType) {
	if im.flip != v {
		im.flip = v
		im.refresh()
	}
}

// FillMethod returns the partial-fill mode.
func (im *Image) FillMethod() FillMethod { return im.fillMethod }

// SetFillMethod selects a partial-fill mode.
func (im *Image) SetFillMethod(v FillMethod) {
	if im.fillMethod != v {
		im.fillMethod = v
		im.refresh()
	}
}

// FillOrigin returns the edge or corner the fill starts from.
func (im *Image) FillOrigin() int { return im.fillOrigin }

// SetFillOrigin sets the edge or corner the fill starts from.
func (im *Image) SetFillOrigin(v int) {
	if im.fillOrigin != v {
		im.fillOrigin = v
		im.refresh()
	}
}

// FillClockwise reports the direction of radial fills.
func (im *Image) FillClockwise() bool { return im.fillClockwise }

// SetFillClockwise sets the direction of radial fills.
func (im *Image) SetFillClockwise(v bool) {
	if im.fillClockwise != v {
		im.fillClockwise = v
		im.refresh()
	}
}

// FillAmount returns the filled fraction in [0, 1].
func (im *Image) FillAmount() float32 { return im.fillAmount }

// SetFillAmount sets the filled fraction, clamped to [0, 1].
func (im *Image) SetFillAmount(v float32) {
	v = clampf(v, 0, 1)
	if im.fillAmount != v {
		im.fillAmount = v
		im.refresh()
	}
}

func (im *Image) setItem(pi *PackageItem) {
	im.refresh()
}

// refresh pushes the image source with the current flip and fill settings.
func (im *Image) refresh() {
	o := im.owner
	pi := o.item
	if pi == nil || pi.owner == nil {
		return
	}
	src := pi.owner.ImageSource(pi)
	src.Flip = im.flip
	src.Fill = im.fillMethod
	src.FillOrigin = im.fillOrigin
	src.FillAmount = im.fillAmount
	src.Clockwise = im.fillClockwise
	o.backend().SetImage(o.control, src)
}

func (im *Image) setupBeforeAdd(buf *ByteBuffer) {
	if buf.ReadBool() {
		im.color = buf.ReadColor()
	}
	im.flip = FlipType(buf.ReadByte())
	im.fillMethod = FillMethod(buf.ReadByte())
	if im.fillMethod != FillMethodNone {
		im.fillOrigin = int(buf.ReadShort())
		im.fillClockwise = buf.ReadBool()
		im.fillAmount = buf.ReadFloat()
	}
	o := im.owner
	o.backend().SetTint(o.control, im.color)
	im.refresh()
}

// --- MovieClip ---

// MovieClip plays the frames of a movie clip item. Frames advance from
// Runtime.Update while the clip is playing.
type MovieClip struct {
	owner *Object
	color Color
	flip  FlipType

	playing       bool
	frame         int
	elapsed       float32
	reversed      bool
	repeatedCount int
	ticking       bool

	// play range set by SetPlaySettings
	start, end, times, endAt int
	status                   int // 0 running, 1 rewind to start, 2 jump to endAt, 3 stopped
	onPlayEnd                func()
}

func newMovieClip(o *Object) *MovieClip {
	return &MovieClip{owner: o, color: ColorWhite, playing: true, end: -1, endAt: -1}
}

// Color returns the tint.
func (mc *MovieClip) Color() Color { return mc.color }

// Playing reports whether frames advance.
func (mc *MovieClip) Playing() bool { return mc.playing }

// Frame returns the current frame index.
func (mc *MovieClip) Frame() int { return mc.frame }

// FrameCount returns the number of frames of the clip.
func (mc *MovieClip) FrameCount() int {
	if pi := mc.owner.item; pi != nil {
		return len(pi.Frames)
	}
	return 0
}

// SetPlaying starts or pauses playback.
func (mc *MovieClip) SetPlaying(v bool) {
	if mc.playing == v {
		return
	}
	mc.playing = v
	mc.updateTicking()
}

// SetFrame jumps to frame, clamped to the clip.
func (mc *MovieClip) SetFrame(f int) {
	n := mc.FrameCount()
	if n == 0 {
		mc.frame = f
		return
	}
	if f >= n {
		f = n - 1
	}
	if f < 0 {
		f = 0
	}
	if mc.frame == f {
		return
	}
	mc.frame = f
	mc.elapsed = 0
	mc.drawFrame()
}

// Rewind restarts the clip from the first frame.
func (mc *MovieClip) Rewind() {
	mc.frame = 0
	mc.elapsed = 0
	mc.reversed = false
	mc.repeatedCount = 0
	mc.drawFrame()
}

// SetPlaySettings plays frames [start, end] times times (0 loops forever),
// then stops at endAt and calls onEnd. A negative end or endAt means the
// last frame.
func (mc *MovieClip) SetPlaySettings(start, end, times, endAt int, onEnd func()) {
	n := mc.FrameCount()
	if end < 0 || end >= n {
		end = n - 1
	}
	if endAt < 0 {
		endAt = end
	}
	mc.start, mc.end, mc.times, mc.endAt = start, end, times, endAt
	mc.status = 0
	mc.onPlayEnd = onEnd
	mc.SetFrame(start)
}

func (mc *MovieClip) setItem(pi *PackageItem) {
	if mc.end < 0 || mc.end >= len(pi.Frames) {
		mc.end = len(pi.Frames) - 1
	}
	if mc.endAt < 0 {
		mc.endAt = mc.end
	}
	mc.drawFrame()
	mc.updateTicking()
}

func (mc *MovieClip) setupBeforeAdd(buf *ByteBuffer) {
	if buf.ReadBool() {
		mc.color = buf.ReadColor()
		o := mc.owner
		o.backend().SetTint(o.control, mc.color)
	}
	mc.flip = FlipType(buf.ReadByte())
	mc.SetFrame(int(buf.ReadInt()))
	mc.SetPlaying(buf.ReadBool())
}

func (mc *MovieClip) updateTicking() {
	rt := mc.owner.rt
	if rt == nil {
		return
	}
	want := mc.playing && mc.FrameCount() > 0 && !mc.owner.disposed
	if want && !mc.ticking {
		mc.ticking = true
		rt.clips = append(rt.clips, mc)
	} else if !want && mc.ticking {
		mc.stopTicking()
	}
}

func (mc *MovieClip) stopTicking() {
	if !mc.ticking {
		return
	}
	mc.ticking = false
	if rt := mc.owner.rt; rt != nil {
		rt.removeClip(mc)
	}
}

// advance moves the clip forward by dt seconds.
func (mc *MovieClip) advance(dt float32) {
	pi := mc.owner.item
	if !mc.playing || pi == nil || len(pi.Frames) == 0 || mc.status == 3 {
		return
	}
	n := len(pi.Frames)
	mc.elapsed += dt
	tt := pi.Interval + pi.Frames[mc.frame].AddDelay
	if mc.frame == 0 && mc.repeatedCount > 0 {
		tt += pi.RepeatDelay
	}
	if mc.elapsed < tt {
		return
	}
	mc.elapsed -= tt
	if mc.elapsed > pi.Interval {
		mc.elapsed = pi.Interval
	}

	if pi.Swing {
		if mc.reversed {
			mc.frame--
			if mc.frame <= 0 {
				mc.frame = 0
				mc.repeatedCount++
				mc.reversed = false
			}
		} else {
			mc.frame++
			if mc.frame > n-1 {
				mc.frame = max(0, n-2)
				mc.repeatedCount++
				mc.reversed = true
			}
		}
	} else {
		mc.frame++
		if mc.frame > n-1 {
			mc.frame = 0
			mc.repeatedCount++
		}
	}

	switch {
	case mc.status == 1:
		mc.frame = mc.start
		mc.elapsed = 0
		mc.status = 0
	case mc.status == 2:
		mc.frame = mc.endAt
		mc.elapsed = 0
		mc.status = 3
		if fn := mc.onPlayEnd; fn != nil {
			mc.onPlayEnd = nil
			fn()
		}
	case mc.frame == mc.end:
		if mc.times > 0 {
			mc.times--
			if mc.times == 0 {
				mc.status = 2
			} else {
				mc.status = 1
			}
		} else if mc.start != 0 {
			mc.status = 1
		}
	}
	mc.drawFrame()
}

func (mc *MovieClip) drawFrame() {
	o := mc.owner
	pi := o.item
	if pi == nil || pi.owner == nil || mc.frame < 0 || mc.frame >= len(pi.Frames) {
		return
	}
	f := pi.Frames[mc.frame]
	src := ImageSource{Item: pi, Flip: mc.flip}
	if sp := pi.owner.sprites[f.SpriteID]; sp != nil {
		src.Atlas = sp.Atlas
		src.Region = sp.Rect
		src.Rotated = sp.Rotated
	}
	o.backend().SetImage(o.control, src)
}
