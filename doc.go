// Package fgui is a data-driven GUI runtime for FairyGUI packages.
//
// A package is a binary descriptor exported by the FairyGUI editor. It
// lists the items of a UI library (components, images, movie clips, fonts,
// sounds) and the serialized layout of every component. fgui decodes
// packages, builds widget trees from them, and keeps those trees live:
// controllers switch pages and drive gears, relations keep objects attached
// to each other while sizes change, transitions play timelines, and scroll
// panes clip and scroll content.
//
// Rendering is not part of the core. Every object owns a Control created by
// a [Backend], and property setters push their values to it. The
// ebitenbackend subpackage draws with [Ebitengine]; [NopBackend] runs the
// runtime headless.
//
// # Quick start
//
//	rt := fgui.New(ebitenbackend.New(640, 480), fgui.DefaultConfig())
//	if _, err := rt.AddPackage("ui/Main", fgui.DirLoader("assets")); err != nil {
//		log.Fatal(err)
//	}
//	view := rt.CreateObject("Main", "MainView")
//	rt.Root().AddChild(view)
//
// Then, once per frame:
//
//	rt.ProcessPointer(0, mx, my, pressed, fgui.MouseButtonLeft, 0)
//	rt.Update(dt)
//
// # Objects
//
// Every widget is an [Object]. Kind-specific behavior hangs off typed
// payloads reached through [Object.AsButton], [Object.AsList] and the other
// As* accessors. Containers own their children; [Object.Dispose] tears a
// subtree down depth-first.
//
// # Events
//
// Listeners register with [Object.On] and return a [ListenerHandle].
// Pointer events bubble from the target to the root; listeners may stop
// propagation or prevent the default action through [EventContext].
//
// # Animation
//
// [TweenManager] interpolates one to four float32 values, colors and
// doubles with the easing curves of [gween]. Gears, transitions and scroll
// panes all animate through it, so a single [Runtime.Update] advances every
// animation.
//
// # Debug mode
//
// [Runtime.SetDebugMode] makes use of disposed objects panic, prints
// warnings for deep trees and crowded containers, and logs per-frame
// timings to stderr.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package fgui
