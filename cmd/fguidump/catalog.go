package main

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/phanxgames/fgui"
)

// entry is one package item as shown by the dump.
type entry struct {
	Pkg      string
	Type     fgui.PackageItemType
	ID       string
	Name     string
	URL      string
	File     string
	Width    int
	Height   int
	Exported bool
	Scale9   *fgui.Rect
	Tiled    bool
	Branches []string
}

// packageInfo summarizes one package.
type packageInfo struct {
	Name     string
	ID       string
	Version  int
	Deps     []string
	Branches []string
	Entries  []entry
}

func collect(pkgs []*fgui.Package) []packageInfo {
	infos := make([]packageInfo, 0, len(pkgs))
	for _, p := range pkgs {
		info := packageInfo{Name: p.Name, ID: p.ID, Version: p.Version, Branches: p.Branches}
		for _, d := range p.Dependencies {
			info.Deps = append(info.Deps, d.Name)
		}
		for _, pi := range p.Items() {
			info.Entries = append(info.Entries, entry{
				Pkg:      p.Name,
				Type:     pi.Type,
				ID:       pi.ID,
				Name:     pi.Name,
				URL:      pi.URL(),
				File:     pi.File,
				Width:    pi.Width,
				Height:   pi.Height,
				Exported: pi.Exported,
				Scale9:   pi.Scale9Grid,
				Tiled:    pi.ScaleByTile,
				Branches: pi.Branches,
			})
		}
		infos = append(infos, info)
	}
	return infos
}

// typeFilter keeps entries of the listed types. An empty filter keeps all.
type typeFilter map[fgui.PackageItemType]bool

func (f typeFilter) keep(e entry) bool { return len(f) == 0 || f[e.Type] }

func (f typeFilter) apply(entries []entry) []entry {
	if len(f) == 0 {
		return entries
	}
	var out []entry
	for _, e := range entries {
		if f.keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// parseTypes maps type names like "image" or "component" to a filter.
func parseTypes(names []string) (typeFilter, error) {
	known := make(map[string]fgui.PackageItemType)
	for t := fgui.ItemImage; t <= fgui.ItemDragonBones; t++ {
		known[t.String()] = t
	}
	f := make(typeFilter)
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		t, ok := known[n]
		if !ok {
			return nil, fmt.Errorf("unknown item type %q%s", n, suggestType(n, known))
		}
		f[t] = true
	}
	return f, nil
}

func suggestType(n string, known map[string]fgui.PackageItemType) string {
	best, bestD := "", 3
	for k := range known {
		d := levenshtein.ComputeDistance(n, k)
		if d < bestD || (d == bestD && k < best) {
			best, bestD = k, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

// matches reports whether the entry's name, id or file contains q,
// case-insensitively.
func (e entry) matches(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.ID), q) ||
		strings.Contains(strings.ToLower(e.File), q)
}
