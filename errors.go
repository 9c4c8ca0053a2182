package fgui

import "errors"

var (
	// ErrMalformedPackage is returned when a package blob has a bad magic
	// number (including the legacy format).
	ErrMalformedPackage = errors.New("fgui: malformed or legacy package format")

	// ErrDuplicatePackage is returned when a package with the same id is
	// already registered. The registered package is left untouched.
	ErrDuplicatePackage = errors.New("fgui: package already added")

	// ErrPackageNotFound is returned when the loader cannot supply the
	// package descriptor bytes.
	ErrPackageNotFound = errors.New("fgui: package not found")

	// ErrBufferOverrun is returned when a fixed-width read runs past the end
	// of a buffer during load or construction.
	ErrBufferOverrun = errors.New("fgui: read beyond end of buffer")

	// ErrStringIndex is returned for a string-table index outside the table.
	ErrStringIndex = errors.New("fgui: string index out of range")

	// ErrMissingDependency is returned when a component references a package
	// that is not loaded.
	ErrMissingDependency = errors.New("fgui: dependency package not loaded")

	// ErrItemNotFound is returned when a mandatory item reference cannot be
	// resolved.
	ErrItemNotFound = errors.New("fgui: item not found")
)
