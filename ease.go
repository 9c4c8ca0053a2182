package fgui

import "github.com/tanema/gween/ease"

// EaseType selects an easing curve. The values match the package format
// byte.
type EaseType uint8

const (
	EaseLinear EaseType = iota
	EaseSineIn
	EaseSineOut
	EaseSineInOut
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EaseQuartIn
	EaseQuartOut
	EaseQuartInOut
	EaseQuintIn
	EaseQuintOut
	EaseQuintInOut
	EaseExpoIn
	EaseExpoOut
	EaseExpoInOut
	EaseCircIn
	EaseCircOut
	EaseCircInOut
	EaseElasticIn
	EaseElasticOut
	EaseElasticInOut
	EaseBackIn
	EaseBackOut
	EaseBackInOut
	EaseBounceIn
	EaseBounceOut
	EaseBounceInOut
	EaseCustom
)

var easeFuncs = [...]ease.TweenFunc{
	EaseLinear:       ease.Linear,
	EaseSineIn:       ease.InSine,
	EaseSineOut:      ease.OutSine,
	EaseSineInOut:    ease.InOutSine,
	EaseQuadIn:       ease.InQuad,
	EaseQuadOut:      ease.OutQuad,
	EaseQuadInOut:    ease.InOutQuad,
	EaseCubicIn:      ease.InCubic,
	EaseCubicOut:     ease.OutCubic,
	EaseCubicInOut:   ease.InOutCubic,
	EaseQuartIn:      ease.InQuart,
	EaseQuartOut:     ease.OutQuart,
	EaseQuartInOut:   ease.InOutQuart,
	EaseQuintIn:      ease.InQuint,
	EaseQuintOut:     ease.OutQuint,
	EaseQuintInOut:   ease.InOutQuint,
	EaseExpoIn:       ease.InExpo,
	EaseExpoOut:      ease.OutExpo,
	EaseExpoInOut:    ease.InOutExpo,
	EaseCircIn:       ease.InCirc,
	EaseCircOut:      ease.OutCirc,
	EaseCircInOut:    ease.InOutCirc,
	EaseElasticIn:    ease.InElastic,
	EaseElasticOut:   ease.OutElastic,
	EaseElasticInOut: ease.InOutElastic,
	EaseBackIn:       ease.InBack,
	EaseBackOut:      ease.OutBack,
	EaseBackInOut:    ease.InOutBack,
	EaseBounceIn:     ease.InBounce,
	EaseBounceOut:    ease.OutBounce,
	EaseBounceInOut:  ease.InOutBounce,
}

// EaseFunc returns the easing function for t. EaseCustom and unknown values
// fall back to linear.
func (t EaseType) EaseFunc() ease.TweenFunc {
	if int(t) < len(easeFuncs) && easeFuncs[t] != nil {
		return easeFuncs[t]
	}
	return ease.Linear
}

// evaluateEase returns the eased progress in [0, 1] (overshooting for back
// and elastic curves) at time t of duration d.
func evaluateEase(fn ease.TweenFunc, t, d float32) float32 {
	if d <= 0 || t >= d {
		return 1
	}
	if t <= 0 {
		return 0
	}
	return fn(t, 0, 1, d)
}
