package pkgfiles

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/phanxgames/fgui"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Main_fui.bytes":  "m",
		"Bag_fui.bytes":   "b",
		"Main_atlas0.png": "png",
		"notes.txt":       "x",
	})
	names, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"Bag", "Main"}) {
		t.Errorf("names = %v, want [Bag Main]", names)
	}

	if _, err := Discover(filepath.Join(dir, "missing")); err == nil {
		t.Error("Discover on a missing dir succeeded")
	}
}

func TestReadAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"A_fui.bytes": "aaa",
		"B_fui.bytes": "bb",
		"raw.bin":     "r",
	})
	files, err := ReadAll(context.Background(), dir, []string{"B", "A", "raw.bin"})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range files {
		got = append(got, f.Name+"="+string(f.Data))
	}
	if !slices.Equal(got, []string{"B=bb", "A=aaa", "raw.bin=r"}) {
		t.Errorf("files = %v", got)
	}
}

func TestReadAllMissing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"A_fui.bytes": "a"})
	_, err := ReadAll(context.Background(), dir, []string{"A", "Nope"})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}

func TestAddAllRejectsGarbage(t *testing.T) {
	store := fgui.NewPackageStore()
	pkgs, err := AddAll(store, t.TempDir(), []File{{Name: "Bad", Data: []byte("nope")}})
	if err == nil {
		t.Fatal("garbage descriptor parsed")
	}
	if len(pkgs) != 0 || len(store.Packages()) != 0 {
		t.Error("failed parse registered a package")
	}
}
