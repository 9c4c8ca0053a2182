package fgui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file LoadConfigOptional looks for.
const ConfigFileName = "fgui.yaml"

// Config holds the runtime-wide defaults. The zero value is usable; unset
// numeric fields fall back to built-in defaults.
type Config struct {
	// Design resolution and how the content scale factor is derived.
	DesignWidth  int             `yaml:"designWidth,omitempty"`
	DesignHeight int             `yaml:"designHeight,omitempty"`
	MatchMode    ScreenMatchMode `yaml:"matchMode,omitempty"`

	// Branch selects the package branch applied to packages loaded later.
	Branch string `yaml:"branch,omitempty"`

	// Text defaults.
	DefaultFont string `yaml:"defaultFont,omitempty"`
	FontSize    int    `yaml:"fontSize,omitempty"`
	TextColor   string `yaml:"textColor,omitempty"` // #rrggbb or #rrggbbaa

	// Scrolling.
	ScrollStep          float32              `yaml:"scrollStep,omitempty"`
	DecelerationRate    float32              `yaml:"decelerationRate,omitempty"`
	TouchDragThreshold  float32              `yaml:"touchDragThreshold,omitempty"`
	ScrollBarDisplay    ScrollBarDisplayType `yaml:"scrollBarDisplay,omitempty"`
	VerticalScrollBar   string               `yaml:"verticalScrollBar,omitempty"`
	HorizontalScrollBar string               `yaml:"horizontalScrollBar,omitempty"`

	// Windows and popups.
	ModalLayerColor string `yaml:"modalLayerColor,omitempty"`
	TooltipsWindow  string `yaml:"tooltipsWindow,omitempty"`
	PopupMenu       string `yaml:"popupMenu,omitempty"`

	// ButtonSoundVolume scales button click sounds; nil means 1.
	ButtonSoundVolume *float32 `yaml:"buttonSoundVolume,omitempty"`

	// GearTweens enables tweening gears globally.
	GearTweens bool `yaml:"gearTweens"`

	Debug bool `yaml:"debug,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		FontSize:         12,
		ScrollStep:       25,
		DecelerationRate: 0.967,
		GearTweens:       true,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("fgui: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("fgui: parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadConfigOptional reads fgui.yaml from dir if present, and returns the
// defaults otherwise.
func LoadConfigOptional(dir string) (Config, error) {
	cfg, err := LoadConfig(filepath.Join(dir, ConfigFileName))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func (c *Config) scrollStep() float32 {
	if c.ScrollStep > 0 {
		return c.ScrollStep
	}
	return 25
}

func (c *Config) decelerationRate() float32 {
	if c.DecelerationRate > 0 && c.DecelerationRate < 1 {
		return c.DecelerationRate
	}
	return 0.967
}

func (c *Config) dragThreshold() float32 {
	if c.TouchDragThreshold > 0 {
		return c.TouchDragThreshold
	}
	return 8
}

func (c *Config) buttonVolume() float32 {
	if c.ButtonSoundVolume == nil {
		return 1
	}
	return *c.ButtonSoundVolume
}

func (c *Config) textColor() Color {
	if col, ok := ParseColor(c.TextColor); ok {
		return col
	}
	return ColorBlack
}

func (c *Config) modalLayerColor() Color {
	if col, ok := ParseColor(c.ModalLayerColor); ok {
		return col
	}
	return Color{0, 0, 0, 0.4}
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var v [4]uint8
	v[3] = 255
	switch len(s) {
	case 3:
		for i := 0; i < 3; i++ {
			n, ok := hexNibble(s[i])
			if !ok {
				return Color{}, false
			}
			v[i] = n<<4 | n
		}
	case 6, 8:
		for i := 0; i < len(s)/2; i++ {
			hi, ok1 := hexNibble(s[2*i])
			lo, ok2 := hexNibble(s[2*i+1])
			if !ok1 || !ok2 {
				return Color{}, false
			}
			v[i] = hi<<4 | lo
		}
	default:
		return Color{}, false
	}
	return ColorFromRGBA8(v[0], v[1], v[2], v[3]), true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// --- YAML enums ---

var matchModeNames = map[string]ScreenMatchMode{
	"widthOrHeight": MatchWidthOrHeight,
	"width":         MatchWidth,
	"height":        MatchHeight,
}

// UnmarshalYAML accepts "widthOrHeight", "width", "height" or the number.
func (m *ScreenMatchMode) UnmarshalYAML(n *yaml.Node) error {
	if v, ok := matchModeNames[n.Value]; ok {
		*m = v
		return nil
	}
	var i uint8
	if err := n.Decode(&i); err != nil {
		return fmt.Errorf("matchMode %q: want widthOrHeight, width or height", n.Value)
	}
	*m = ScreenMatchMode(i)
	return nil
}

var scrollBarDisplayNames = map[string]ScrollBarDisplayType{
	"default": ScrollBarDefault,
	"visible": ScrollBarVisible,
	"auto":    ScrollBarAuto,
	"hidden":  ScrollBarHidden,
}

// UnmarshalYAML accepts "default", "visible", "auto", "hidden" or the number.
func (d *ScrollBarDisplayType) UnmarshalYAML(n *yaml.Node) error {
	if v, ok := scrollBarDisplayNames[n.Value]; ok {
		*d = v
		return nil
	}
	var i uint8
	if err := n.Decode(&i); err != nil {
		return fmt.Errorf("scrollBarDisplay %q: want default, visible, auto or hidden", n.Value)
	}
	*d = ScrollBarDisplayType(i)
	return nil
}
