package fgui

import (
	"fmt"
	"time"
)

// maxBoundsPasses caps how many times one Update re-runs the bounds flush
// when layout keeps scheduling new work.
const maxBoundsPasses = 8

// Runtime owns the services shared by one widget tree: packages, tweens,
// the object factory, the drag agent and the root.
type Runtime struct {
	backend Backend
	root    *Root
	debug   bool

	// Config holds runtime-wide defaults. Changes apply to objects created
	// afterwards.
	Config Config

	Packages *PackageStore
	Tweens   *TweenManager
	Factory  *ObjectFactory
	DragDrop *DragDropManager

	// SoundPlayer plays a sound item by URL. Nil disables sounds.
	SoundPlayer func(url string, volume float32)

	input       inputState
	injectQueue []syntheticPointerEvent
	script      *ScriptRunner

	time          float64
	draggingPane  *ScrollPane
	clips         []*MovieClip
	clipBuf       []*MovieClip
	pendingBounds []*Object
	boundsBuf     []*Object
	trackBounds   map[*Object]bool
	liveObjects   int
}

// New creates a runtime drawing through b. A nil backend selects a
// NopBackend sized to the design resolution.
func New(b Backend, cfg Config) *Runtime {
	if b == nil {
		b = NopBackend{Width: float32(cfg.DesignWidth), Height: float32(cfg.DesignHeight)}
	}
	rt := &Runtime{
		backend:     b,
		Config:      cfg,
		Packages:    NewPackageStore(),
		Tweens:      NewTweenManager(),
		trackBounds: make(map[*Object]bool),
	}
	rt.SetDebugMode(cfg.Debug)
	rt.Packages.SetBranch(cfg.Branch)
	rt.Factory = newObjectFactory(rt)
	rt.root = newRoot(rt)
	rt.DragDrop = newDragDropManager(rt)
	return rt
}

// Backend returns the backend the runtime draws through.
func (rt *Runtime) Backend() Backend { return rt.backend }

// Root returns the top of the widget tree.
func (rt *Runtime) Root() *Root { return rt.root }

// Time returns the seconds accumulated by Update.
func (rt *Runtime) Time() float64 { return rt.time }

// SetDebugMode enables or disables debug mode. When enabled, use of disposed
// objects panics, tree depth and child count warnings are printed, and
// per-frame timing stats are logged to stderr.
func (rt *Runtime) SetDebugMode(enabled bool) {
	rt.debug = enabled
	globalDebug = enabled
	if rt.Packages != nil {
		rt.Packages.Debug = enabled
	}
}

// DebugMode reports whether debug mode is on.
func (rt *Runtime) DebugMode() bool { return rt.debug }

// --- Packages ---

// AddPackage loads "<path>.fui" through loader and registers the package.
func (rt *Runtime) AddPackage(path string, loader ResourceLoader) (*Package, error) {
	return rt.Packages.AddPackage(path, loader)
}

// AddPackageBytes registers a package from its descriptor bytes.
func (rt *Runtime) AddPackageBytes(data []byte, assetPrefix string, loader ResourceLoader) (*Package, error) {
	return rt.Packages.AddPackageBytes(data, assetPrefix, loader)
}

// RemovePackage unregisters a package by id or name.
func (rt *Runtime) RemovePackage(idOrName string) bool {
	return rt.Packages.RemovePackage(idOrName)
}

// RemoveAllPackages unregisters every package.
func (rt *Runtime) RemoveAllPackages() {
	rt.Packages.RemoveAllPackages()
}

// --- Object creation ---

// NewObject creates an empty object of kind t that is not backed by a
// package item.
func (rt *Runtime) NewObject(t ObjectType) *Object {
	return newObject(rt, t)
}

// CreateObject builds the item resName of package pkgName. It returns nil
// and logs when either is missing.
func (rt *Runtime) CreateObject(pkgName, resName string) *Object {
	p := rt.Packages.PackageByName(pkgName)
	if p == nil {
		rt.Packages.logMiss("package %q not found%s", pkgName, rt.Packages.suggestPackage(pkgName))
		return nil
	}
	pi := p.ItemByName(resName)
	if pi == nil {
		rt.Packages.logMiss("item %q not found in %s", resName, pkgName)
		return nil
	}
	o, err := rt.newObjectFromItem(pi)
	if err != nil {
		rt.Packages.logMiss("%v", err)
		return nil
	}
	return o
}

// CreateObjectFromURL builds the item addressed by url.
func (rt *Runtime) CreateObjectFromURL(url string) (*Object, error) {
	pi := rt.Packages.ItemByURL(url)
	if pi == nil {
		return nil, fmt.Errorf("fgui: create %q: %w", url, ErrItemNotFound)
	}
	return rt.newObjectFromItem(pi)
}

// --- Screen ---

// SetDesignResolution sets the resolution the UI was authored for and
// recomputes the content scale factor.
func (rt *Runtime) SetDesignResolution(w, h int, mode ScreenMatchMode) {
	rt.Config.DesignWidth = w
	rt.Config.DesignHeight = h
	rt.Config.MatchMode = mode
	rt.root.ApplyScreenSize()
}

// ContentScaleFactor returns the factor between screen and design pixels.
func (rt *Runtime) ContentScaleFactor() float32 { return rt.root.contentScale }

// --- Frame ---

// Update steps the attached script, feeds one injected pointer sample and
// advances movie clips, tweens and pending layout by dt seconds.
func (rt *Runtime) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	rt.time += float64(dt)

	if rt.script != nil {
		rt.script.step(rt)
	}
	rt.processInjectedInput()

	var stats debugStats
	var t0 time.Time
	if rt.debug {
		t0 = time.Now()
	}

	// clips may stop during advance
	rt.clipBuf = append(rt.clipBuf[:0], rt.clips...)
	for _, mc := range rt.clipBuf {
		if mc.ticking {
			mc.advance(dt)
		}
	}
	clear(rt.clipBuf)

	if rt.debug {
		stats.clipTime = time.Since(t0)
		t0 = time.Now()
	}

	rt.Tweens.Update(dt)

	if rt.debug {
		stats.tweenTime = time.Since(t0)
		stats.tweens = rt.Tweens.ActiveCount()
		t0 = time.Now()
	}

	stats.boundsCount = rt.flushBounds()

	if rt.debug {
		stats.boundsTime = time.Since(t0)
		stats.liveObjects = rt.liveObjects
		rt.debugLog(stats)
	}
}

// flushBounds recomputes the content bounds scheduled since the last call.
func (rt *Runtime) flushBounds() int {
	n := 0
	for pass := 0; pass < maxBoundsPasses && len(rt.pendingBounds) > 0; pass++ {
		rt.boundsBuf, rt.pendingBounds = rt.pendingBounds, rt.boundsBuf[:0]
		for _, o := range rt.boundsBuf {
			if o.disposed {
				continue
			}
			if o.groupData != nil {
				o.groupData.EnsureBoundsCorrect()
			} else {
				o.EnsureBoundsCorrect()
			}
			n++
		}
		clear(rt.boundsBuf)
	}
	return n
}

func (rt *Runtime) scheduleBounds(o *Object) {
	rt.pendingBounds = append(rt.pendingBounds, o)
}

func (rt *Runtime) removeClip(mc *MovieClip) {
	for i, c := range rt.clips {
		if c == mc {
			copy(rt.clips[i:], rt.clips[i+1:])
			rt.clips[len(rt.clips)-1] = nil
			rt.clips = rt.clips[:len(rt.clips)-1]
			return
		}
	}
}

// Dispose tears down the root tree, kills every tween and unregisters all
// packages.
func (rt *Runtime) Dispose() {
	rt.DragDrop.Cancel()
	rt.root.dispose()
	rt.Tweens.KillAll()
	rt.Packages.RemoveAllPackages()
	rt.clips = nil
	rt.pendingBounds = nil
	clear(rt.trackBounds)
}
