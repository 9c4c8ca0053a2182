// Package pkgfiles reads package descriptors from disk for the fgui tools.
package pkgfiles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/fgui"
)

// descriptorSuffix is appended to a package name to form its descriptor
// file name.
const descriptorSuffix = "_fui.bytes"

// maxReaders bounds concurrent file reads.
const maxReaders = 8

// File is one package descriptor read from disk.
type File struct {
	Name string // package path without the descriptor suffix, relative to the dir
	Data []byte
}

// Discover lists the package names in dir, sorted.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), descriptorSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), descriptorSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadAll reads the descriptors of names below dir concurrently. The result
// keeps the order of names. The first failure cancels the remaining reads.
func ReadAll(ctx context.Context, dir string, names []string) ([]File, error) {
	files := make([]File, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxReaders)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readDescriptor(dir, name)
			if err != nil {
				return err
			}
			files[i] = File{Name: name, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// readDescriptor tries name+"_fui.bytes", then name as given.
func readDescriptor(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+descriptorSuffix))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = os.ReadFile(filepath.Join(dir, name))
	}
	if err != nil {
		return nil, fmt.Errorf("read package %q: %w", name, err)
	}
	return data, nil
}

// AddAll parses files into store in order, resolving assets below dir.
func AddAll(store *fgui.PackageStore, dir string, files []File) ([]*fgui.Package, error) {
	loader := fgui.DirLoader(dir)
	pkgs := make([]*fgui.Package, 0, len(files))
	for _, f := range files {
		p, err := store.AddPackageBytes(f.Data, f.Name+"_", loader)
		if err != nil {
			return pkgs, fmt.Errorf("add package %q: %w", f.Name, err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}
