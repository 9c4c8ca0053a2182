package fgui

import (
	"fmt"
	"log"
)

// Extension customizes objects created from one package item. It runs after
// the object is fully constructed.
type Extension func(o *Object)

// ObjectFactory creates objects for a runtime. Extensions registered by URL
// customize every object built from that item; the loader hooks resolve
// URLs that are not package items.
type ObjectFactory struct {
	rt         *Runtime
	extensions map[string]Extension

	// LoadExternal resolves a loader URL outside the packages. It reports
	// false when the URL is unknown.
	LoadExternal func(l *Loader, url string) (ImageSource, bool)

	// FreeExternal releases what LoadExternal returned for l.
	FreeExternal func(l *Loader)

	// StripMarkup turns rich text into plain text for backends without
	// markup support.
	StripMarkup func(s string) string
}

func newObjectFactory(rt *Runtime) *ObjectFactory {
	return &ObjectFactory{rt: rt, extensions: make(map[string]Extension)}
}

// SetExtension registers ext for the item at url. A nil ext removes the
// registration.
func (f *ObjectFactory) SetExtension(url string, ext Extension) error {
	key := url
	if f.rt != nil {
		pi := f.rt.Packages.ItemByURL(url)
		if pi == nil {
			return fmt.Errorf("fgui: extension %q: %w", url, ErrItemNotFound)
		}
		key = pi.URL()
	}
	if ext == nil {
		delete(f.extensions, key)
		return nil
	}
	f.extensions[key] = ext
	return nil
}

// HasExtension reports whether url has an extension.
func (f *ObjectFactory) HasExtension(url string) bool {
	if f.rt != nil {
		if pi := f.rt.Packages.ItemByURL(url); pi != nil {
			url = pi.URL()
		}
	}
	_, ok := f.extensions[url]
	return ok
}

// ClearExtensions removes every extension.
func (f *ObjectFactory) ClearExtensions() {
	clear(f.extensions)
}

// create allocates an unconstructed object of kind t for pi.
func (f *ObjectFactory) create(t ObjectType, pi *PackageItem) *Object {
	o := newObject(f.rt, t)
	o.item = pi
	return o
}

// extend runs the extension registered for o's item. A panicking extension
// is logged and the object is kept as built.
func (f *ObjectFactory) extend(o *Object) {
	if o.item == nil || len(f.extensions) == 0 {
		return
	}
	ext := f.extensions[o.item.URL()]
	if ext == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("fgui: extension for %s panicked: %v", o.item.URL(), r)
		}
	}()
	ext(o)
}
