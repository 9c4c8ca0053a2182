package fgui

import "math"

// Luminance weights used by the saturation and hue adjustments.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ColorFilter adjusts the colors of an object and its children. Every field
// ranges over [-1, 1]; the zero value leaves colors unchanged.
type ColorFilter struct {
	Brightness float32
	Contrast   float32
	Saturation float32
	Hue        float32
}

// IsZero reports whether f leaves colors unchanged.
func (f ColorFilter) IsZero() bool { return f == ColorFilter{} }

// ColorMatrix is a 4x5 color transform in row-major order:
// [R_r, R_g, R_b, R_a, R_offset, G_r, ...]. Channels and offsets are in
// [0, 1] and apply to straight (non-premultiplied) colors.
type ColorMatrix [20]float32

// IdentityColorMatrix leaves colors unchanged.
var IdentityColorMatrix = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// Matrix composes the adjustments in the order hue, contrast, brightness,
// saturation.
func (f ColorFilter) Matrix() ColorMatrix {
	m := IdentityColorMatrix
	if f.Hue != 0 {
		m = hueMatrix(float64(f.Hue)).concat(m)
	}
	if f.Contrast != 0 {
		m = contrastMatrix(float64(f.Contrast)).concat(m)
	}
	if f.Brightness != 0 {
		m = brightnessMatrix(float64(f.Brightness)).concat(m)
	}
	if f.Saturation != 0 {
		m = saturationMatrix(float64(f.Saturation)).concat(m)
	}
	return m
}

// Apply transforms c by the filter, clamping every channel to [0, 1].
func (f ColorFilter) Apply(c Color) Color {
	if f.IsZero() {
		return c
	}
	return f.Matrix().Apply(c)
}

// Apply transforms c by m, clamping every channel to [0, 1].
func (m ColorMatrix) Apply(c Color) Color {
	in := [4]float32{c.R, c.G, c.B, c.A}
	var out [4]float32
	for row := 0; row < 4; row++ {
		v := m[row*5+4]
		for col := 0; col < 4; col++ {
			v += m[row*5+col] * in[col]
		}
		out[row] = clamp01(v)
	}
	return Color{out[0], out[1], out[2], out[3]}
}

// concat returns m applied after prev.
func (m ColorMatrix) concat(prev ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			var v float32
			for k := 0; k < 4; k++ {
				v += m[row*5+k] * prev[k*5+col]
			}
			if col == 4 {
				v += m[row*5+4]
			}
			out[row*5+col] = v
		}
	}
	return out
}

func clamp01(v float32) float32 { return max(0, min(1, v)) }

// brightnessMatrix offsets every color channel by b.
func brightnessMatrix(b float64) ColorMatrix {
	o := float32(b)
	return ColorMatrix{
		1, 0, 0, 0, o,
		0, 1, 0, 0, o,
		0, 0, 1, 0, o,
		0, 0, 0, 1, 0,
	}
}

// contrastMatrix scales channels around mid-gray. c=0 is normal, -1 is flat gray.
func contrastMatrix(c float64) ColorMatrix {
	s := float32(c + 1)
	t := (1 - s) * 128 / 255
	return ColorMatrix{
		s, 0, 0, 0, t,
		0, s, 0, 0, t,
		0, 0, s, 0, t,
		0, 0, 0, 1, 0,
	}
}

// saturationMatrix blends toward luminance gray. s=0 is normal, -1 is grayscale.
func saturationMatrix(s float64) ColorMatrix {
	sat := s + 1
	inv := 1 - sat
	r, g, b := float32(inv*lumaR), float32(inv*lumaG), float32(inv*lumaB)
	k := float32(sat)
	return ColorMatrix{
		r + k, g, b, 0, 0,
		r, g + k, b, 0, 0,
		r, g, b + k, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// hueMatrix rotates hue by h half-turns while keeping luminance.
func hueMatrix(h float64) ColorMatrix {
	cos, sin := math.Cos(h*math.Pi), math.Sin(h*math.Pi)
	e := func(v float64) float32 { return float32(v) }
	return ColorMatrix{
		e(lumaR + cos*(1-lumaR) + sin*-lumaR), e(lumaG + cos*-lumaG + sin*-lumaG), e(lumaB + cos*-lumaB + sin*(1-lumaB)), 0, 0,
		e(lumaR + cos*-lumaR + sin*0.143), e(lumaG + cos*(1-lumaG) + sin*0.140), e(lumaB + cos*-lumaB + sin*-0.283), 0, 0,
		e(lumaR + cos*-lumaR + sin*-(1-lumaR)), e(lumaG + cos*-lumaG + sin*lumaG), e(lumaB + cos*(1-lumaB) + sin*lumaB), 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ColorFilterSetter is implemented by backends that can recolor controls.
type ColorFilterSetter interface {
	SetColorFilter(c Control, f ColorFilter)
}

// BlendModeSetter is implemented by backends that composite controls with
// a blend mode other than normal.
type BlendModeSetter interface {
	SetBlendMode(c Control, m BlendMode)
}

// ColorFilter returns the object's color adjustment.
func (o *Object) ColorFilter() ColorFilter { return o.colorFilter }

// SetColorFilter sets the color adjustment applied to the object and its
// children.
func (o *Object) SetColorFilter(f ColorFilter) {
	if o.colorFilter == f {
		return
	}
	o.colorFilter = f
	if s, ok := o.backend().(ColorFilterSetter); ok {
		s.SetColorFilter(o.control, f)
	}
}
