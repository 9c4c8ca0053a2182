package fgui

import (
	"fmt"
	"log"
	"strings"
)

const (
	packageMagic = 0x46475549 // "FGUI"
	urlPrefix    = "ui://"
)

// PackageDependency names a package that a package's components reference.
type PackageDependency struct {
	ID   string
	Name string
}

// Package is a parsed package: a catalog of items and atlas sprites.
type Package struct {
	ID           string
	Name         string
	Version      int
	AssetPrefix  string
	Dependencies []PackageDependency
	Branches     []string
	BranchIndex  int

	store       *PackageStore
	loader      ResourceLoader
	items       []*PackageItem
	itemsByID   map[string]*PackageItem
	itemsByName map[string]*PackageItem
	sprites     map[string]*AtlasSprite
}

// Items returns the package's items in file order. The returned slice MUST NOT
// be mutated by the caller.
func (p *Package) Items() []*PackageItem { return p.items }

// Loader returns the loader the package was added with. It may be nil.
func (p *Package) Loader() ResourceLoader { return p.loader }

// ItemByID returns the item with the given id, or nil when absent. Branch
// variants are resolved separately by PackageItem.Branch.
func (p *Package) ItemByID(id string) *PackageItem {
	if pi := p.itemsByID[id]; pi != nil {
		return pi
	}
	if p.store != nil && p.store.Debug {
		log.Printf("fgui: item id %q not found in package %q", id, p.Name)
	}
	return nil
}

// ItemByName returns the item with the given name, or nil.
func (p *Package) ItemByName(name string) *PackageItem {
	if pi := p.itemsByName[name]; pi != nil {
		return pi
	}
	if p.store != nil && p.store.Debug {
		if s := closestName(name, p.itemsByName); s != "" {
			log.Printf("fgui: item %q not found in package %q (did you mean %q?)", name, p.Name, s)
		} else {
			log.Printf("fgui: item %q not found in package %q", name, p.Name)
		}
	}
	return nil
}

// PackageStore is the catalog of loaded packages, keyed by id and by name.
// It is not safe for concurrent use.
type PackageStore struct {
	// Debug enables logging of best-effort lookup misses.
	Debug bool

	byID   map[string]*Package
	byName map[string]*Package
	order  []*Package
	branch string
}

// NewPackageStore creates an empty store.
func NewPackageStore() *PackageStore {
	return &PackageStore{
		byID:   make(map[string]*Package),
		byName: make(map[string]*Package),
	}
}

// Reset removes every package and clears the branch.
func (s *PackageStore) Reset() {
	s.RemoveAllPackages()
	s.branch = ""
}

// SetBranch selects the branch used by packages added afterwards.
func (s *PackageStore) SetBranch(name string) { s.branch = name }

// Branch returns the configured branch name.
func (s *PackageStore) Branch() string { return s.branch }

// AddPackage loads the package descriptor at path through loader. The
// descriptor is looked up as path+"_fui" with extension ".bytes" first, then
// as path itself.
func (s *PackageStore) AddPackage(path string, loader ResourceLoader) (*Package, error) {
	if loader == nil {
		return nil, fmt.Errorf("fgui: add package %q: %w", path, ErrPackageNotFound)
	}
	if p := s.byID[path]; p != nil {
		return p, nil
	}
	data, ok := loader(path+"_fui", ".bytes")
	if !ok {
		data, ok = loader(path, "")
	}
	if !ok {
		return nil, fmt.Errorf("fgui: add package %q: %w", path, ErrPackageNotFound)
	}
	return s.AddPackageBytes(data, path+"_", loader)
}

// AddPackageBytes parses a package descriptor. assetPrefix is prepended to
// atlas, sound and misc file names. Nothing is registered unless the whole
// parse succeeds.
func (s *PackageStore) AddPackageBytes(data []byte, assetPrefix string, loader ResourceLoader) (*Package, error) {
	p, err := s.parse(data, assetPrefix)
	if err != nil {
		return nil, err
	}
	p.loader = loader
	s.byID[p.ID] = p
	s.byName[p.Name] = p
	s.order = append(s.order, p)
	return p, nil
}

func (s *PackageStore) parse(data []byte, assetPrefix string) (*Package, error) {
	p, err := s.decode(data, assetPrefix)
	if err != nil {
		return nil, fmt.Errorf("fgui: add package: %w", err)
	}
	return p, nil
}

func (s *PackageStore) decode(data []byte, assetPrefix string) (p *Package, err error) {
	defer catchBufferError(&err)

	buf := NewByteBuffer(data)
	if buf.Len() < 4 || buf.ReadUint() != packageMagic {
		return nil, ErrMalformedPackage
	}
	p = &Package{
		store:       s,
		AssetPrefix: assetPrefix,
		BranchIndex: -1,
		itemsByID:   make(map[string]*PackageItem),
		itemsByName: make(map[string]*PackageItem),
		sprites:     make(map[string]*AtlasSprite),
	}
	p.Version = int(buf.ReadInt())
	buf.Version = p.Version
	ver2 := p.Version >= 2
	buf.ReadBool() // compressed; always false for supported packages
	p.ID = buf.ReadString()
	p.Name = buf.ReadString()
	if s.byID[p.ID] != nil {
		return nil, fmt.Errorf("package %q: %w", p.ID, ErrDuplicatePackage)
	}
	buf.Skip(20)
	indexTablePos := buf.Position()

	if !buf.Seek(indexTablePos, 4) {
		return nil, fmt.Errorf("package %q: missing string table: %w", p.ID, ErrMalformedPackage)
	}
	n := int(buf.ReadInt())
	table := make([]string, n)
	for i := range table {
		table[i] = buf.ReadString()
	}
	buf.StringTable = table

	if buf.Seek(indexTablePos, 5) {
		cnt := int(buf.ReadInt())
		for i := 0; i < cnt; i++ {
			idx := int(buf.ReadUshort())
			l := int(buf.ReadInt())
			str := buf.ReadStringN(l)
			if idx >= len(table) {
				return nil, fmt.Errorf("package %q: patch index %d: %w", p.ID, idx, ErrStringIndex)
			}
			table[idx] = str
		}
	}

	if buf.Seek(indexTablePos, 0) {
		cnt := int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			p.Dependencies = append(p.Dependencies, PackageDependency{ID: buf.ReadS(), Name: buf.ReadS()})
		}
		if ver2 {
			if bc := int(buf.ReadShort()); bc > 0 {
				p.Branches = buf.ReadSArray(bc)
				if s.branch != "" {
					for i, b := range p.Branches {
						if b == s.branch {
							p.BranchIndex = i
							break
						}
					}
				}
			}
		}
	}

	if !buf.Seek(indexTablePos, 1) {
		return nil, fmt.Errorf("package %q: missing item table: %w", p.ID, ErrMalformedPackage)
	}
	cnt := int(buf.ReadShort())
	for i := 0; i < cnt; i++ {
		next := int(buf.ReadInt())
		next += buf.Position()
		p.readItem(buf, ver2)
		buf.SetPosition(next)
	}

	if buf.Seek(indexTablePos, 2) {
		cnt := int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			next := int(buf.ReadUshort())
			next += buf.Position()
			p.readSprite(buf, ver2)
			buf.SetPosition(next)
		}
	}
	return p, nil
}

func (p *Package) readItem(buf *ByteBuffer, ver2 bool) {
	pi := &PackageItem{owner: p}
	pi.Type = PackageItemType(buf.ReadByte())
	pi.ID = buf.ReadS()
	pi.Name = buf.ReadS()
	buf.ReadS() // path
	pi.File = buf.ReadS()
	pi.Exported = buf.ReadBool()
	pi.Width = int(buf.ReadInt())
	pi.Height = int(buf.ReadInt())

	switch pi.Type {
	case ItemImage:
		pi.ObjectType = ObjectImage
		switch buf.ReadByte() {
		case 1:
			r := Rect{}
			r.X = float32(buf.ReadInt())
			r.Y = float32(buf.ReadInt())
			r.Width = float32(buf.ReadInt())
			r.Height = float32(buf.ReadInt())
			pi.Scale9Grid = &r
			pi.TileGridIndice = int(buf.ReadInt())
		case 2:
			pi.ScaleByTile = true
		}
		buf.ReadBool() // smoothing
	case ItemMovieClip:
		buf.ReadBool() // smoothing
		pi.ObjectType = ObjectMovieClip
		pi.RawData = buf.ReadBuffer()
	case ItemFont:
		pi.RawData = buf.ReadBuffer()
	case ItemComponent:
		if ext := buf.ReadByte(); ext > 0 {
			pi.ObjectType = ObjectType(ext)
		} else {
			pi.ObjectType = ObjectComponent
		}
		pi.RawData = buf.ReadBuffer()
	case ItemAtlas, ItemSound, ItemMisc:
		pi.File = p.AssetPrefix + pi.File
	case ItemSwf:
		pi.ObjectType = ObjectSwf
	case ItemSpine, ItemDragonBones:
		pi.ObjectType = ObjectLoader3D
		pi.File = p.AssetPrefix + pi.File
		pi.SkeletonAnchor.X = buf.ReadFloat()
		pi.SkeletonAnchor.Y = buf.ReadFloat()
	}

	if ver2 {
		if folder, ok := buf.ReadSOK(); ok && folder != "" {
			pi.Name = folder + "/" + pi.Name
		}
		if bc := int(buf.ReadByte()); bc > 0 {
			if p.Branches != nil {
				pi.Branches = buf.ReadSArray(bc)
			} else {
				p.itemsByID[buf.ReadS()] = pi
			}
		}
		if hc := int(buf.ReadByte()); hc > 0 {
			pi.HighResolution = buf.ReadSArray(hc)
		}
	}

	p.items = append(p.items, pi)
	p.itemsByID[pi.ID] = pi
	if pi.Name != "" {
		p.itemsByName[pi.Name] = pi
	}
}

func (p *Package) readSprite(buf *ByteBuffer, ver2 bool) {
	itemID := buf.ReadS()
	atlas := p.itemsByID[buf.ReadS()]
	if atlas == nil {
		return
	}
	sp := &AtlasSprite{Atlas: atlas}
	sp.Rect.X = float32(buf.ReadInt())
	sp.Rect.Y = float32(buf.ReadInt())
	sp.Rect.Width = float32(buf.ReadInt())
	sp.Rect.Height = float32(buf.ReadInt())
	sp.Rotated = buf.ReadBool()
	if ver2 && buf.ReadBool() {
		sp.Offset.X = float32(buf.ReadInt())
		sp.Offset.Y = float32(buf.ReadInt())
		sp.OriginalSize.X = float32(buf.ReadInt())
		sp.OriginalSize.Y = float32(buf.ReadInt())
	} else if sp.Rotated {
		sp.OriginalSize = Vec2{sp.Rect.Height, sp.Rect.Width}
	} else {
		sp.OriginalSize = Vec2{sp.Rect.Width, sp.Rect.Height}
	}
	p.sprites[itemID] = sp
}

// --- Removal ---

// RemovePackage unregisters the package with the given id or name and
// releases its item payloads. It reports whether a package was removed.
func (s *PackageStore) RemovePackage(idOrName string) bool {
	p := s.byID[idOrName]
	if p == nil {
		p = s.byName[idOrName]
	}
	if p == nil {
		return false
	}
	delete(s.byID, p.ID)
	if s.byName[p.Name] == p {
		delete(s.byName, p.Name)
	}
	for i, q := range s.order {
		if q == p {
			copy(s.order[i:], s.order[i+1:])
			s.order[len(s.order)-1] = nil
			s.order = s.order[:len(s.order)-1]
			break
		}
	}
	p.release()
	return true
}

// RemoveAllPackages unregisters every package.
func (s *PackageStore) RemoveAllPackages() {
	for _, p := range s.order {
		p.release()
	}
	clear(s.byID)
	clear(s.byName)
	s.order = s.order[:0]
}

func (p *Package) release() {
	for _, pi := range p.items {
		pi.release()
	}
	p.store = nil
}

// --- Lookup ---

// PackageByID returns the package with the given id, or nil.
func (s *PackageStore) PackageByID(id string) *Package { return s.byID[id] }

// PackageByName returns the package with the given name, or nil.
func (s *PackageStore) PackageByName(name string) *Package { return s.byName[name] }

// Packages returns the loaded packages in load order. The returned slice MUST
// NOT be mutated by the caller.
func (s *PackageStore) Packages() []*Package { return s.order }

// ItemURL returns the id-form URL for an item addressed by package and item
// name, or "" when either is missing.
func (s *PackageStore) ItemURL(pkgName, resName string) string {
	p := s.byName[pkgName]
	if p == nil {
		return ""
	}
	pi := p.itemsByName[resName]
	if pi == nil {
		return ""
	}
	return urlPrefix + p.ID + pi.ID
}

// ItemByURL resolves "ui://pkgName/itemName" or "ui://<pkgId><itemId>".
// Returns nil when the URL does not resolve.
func (s *PackageStore) ItemByURL(url string) *PackageItem {
	if url == "" {
		return nil
	}
	pos1 := strings.Index(url, "//")
	if pos1 == -1 {
		return nil
	}
	rest := url[pos1+2:]
	pos2 := strings.IndexByte(rest, '/')
	if pos2 == -1 {
		if len(rest) <= 8 {
			return nil
		}
		p := s.byID[rest[:8]]
		if p == nil {
			s.logMiss("package id %q not found for %q", rest[:8], url)
			return nil
		}
		return p.ItemByID(rest[8:])
	}
	p := s.byName[rest[:pos2]]
	if p == nil {
		s.logMiss("package %q not found for %q", rest[:pos2], url)
		return nil
	}
	return p.ItemByName(rest[pos2+1:])
}

// ItemAssetsByURL resolves url and loads its lazily-decoded payload.
func (s *PackageStore) ItemAssetsByURL(url string) *PackageItem {
	pi := s.ItemByURL(url)
	if pi == nil {
		return nil
	}
	if err := pi.Load(); err != nil {
		s.logMiss("load %q: %v", url, err)
		return nil
	}
	return pi
}

// NormalizeURL converts a name-form URL to id form. URLs that are already
// in id form, or that do not resolve, are returned unchanged.
func (s *PackageStore) NormalizeURL(url string) string {
	if url == "" {
		return url
	}
	pos1 := strings.Index(url, "//")
	if pos1 == -1 {
		return url
	}
	rest := url[pos1+2:]
	pos2 := strings.IndexByte(rest, '/')
	if pos2 == -1 {
		return url
	}
	if u := s.ItemURL(rest[:pos2], rest[pos2+1:]); u != "" {
		return u
	}
	return url
}

func (s *PackageStore) logMiss(format string, args ...any) {
	if s.Debug {
		log.Printf("fgui: "+format, args...)
	}
}

// suggestPackage returns a " (did you mean ...?)" hint for a missing
// package name, or "".
func (s *PackageStore) suggestPackage(name string) string {
	if c := closestName(name, s.byName); c != "" {
		return fmt.Sprintf(" (did you mean %q?)", c)
	}
	return ""
}
