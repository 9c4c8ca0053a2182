package fgui

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// ResourceLoader supplies raw bytes for a resource name and extension
// (".bytes", ".png", ...). ok is false when the resource does not exist.
type ResourceLoader func(name, ext string) (data []byte, ok bool)

// DirLoader returns a ResourceLoader reading name+ext below dir.
func DirLoader(dir string) ResourceLoader {
	return FSLoader(os.DirFS(dir))
}

// FSLoader returns a ResourceLoader reading name+ext from fsys.
func FSLoader(fsys fs.FS) ResourceLoader {
	return func(name, ext string) ([]byte, bool) {
		p := filepath.ToSlash(name + ext)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("fgui: read %s: %v", p, err)
			}
			return nil, false
		}
		return data, true
	}
}

// MapLoader returns a ResourceLoader over an in-memory map keyed by name+ext.
func MapLoader(files map[string][]byte) ResourceLoader {
	return func(name, ext string) ([]byte, bool) {
		data, ok := files[name+ext]
		return data, ok
	}
}
