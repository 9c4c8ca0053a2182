package main

import (
	"slices"
	"testing"
)

func TestParseSettingsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := parseSettings(nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Dir != "." || s.Width != 1136 || s.Height != 640 || s.ScreenshotDir != "screenshots" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestParseSettingsFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := parseSettings([]string{
		"--dir", "assets", "--package", "Main", "--window.width", "800",
		"--font", "ui=fonts/ui.ttf", "--script", "demo.yaml", "--exit", "Bag",
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Dir != "assets" || s.Width != 800 || s.Script != "demo.yaml" || !s.ExitOnDone {
		t.Errorf("settings = %+v", s)
	}
	if !slices.Equal(s.Packages, []string{"Main", "Bag"}) {
		t.Errorf("packages = %v", s.Packages)
	}
	if s.Fonts["ui"] != "fonts/ui.ttf" {
		t.Errorf("fonts = %v", s.Fonts)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	tests := [][]string{
		{"--window.width", "0"},
		{"--exit"},
		{"--nope"},
	}
	for _, args := range tests {
		if _, err := parseSettings(args); err == nil {
			t.Errorf("parseSettings(%v) succeeded", args)
		}
	}
}

func TestSplitComponent(t *testing.T) {
	tests := []struct {
		ref, pkg, name, url string
	}{
		{"Main/Panel", "Main", "Panel", ""},
		{"Panel", "", "Panel", ""},
		{"ui://pk01it02", "", "", "ui://pk01it02"},
	}
	for _, tt := range tests {
		pkg, name, url := splitComponent(tt.ref)
		if pkg != tt.pkg || name != tt.name || url != tt.url {
			t.Errorf("splitComponent(%q) = %q %q %q", tt.ref, pkg, name, url)
		}
	}
}
