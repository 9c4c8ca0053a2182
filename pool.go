package fgui

// ObjectPool keeps detached objects for reuse, keyed by the normalized URL
// of the item they were created from.
type ObjectPool struct {
	rt    *Runtime
	items map[string][]*Object
	count int
}

// NewObjectPool creates an empty pool creating objects through rt.
func NewObjectPool(rt *Runtime) *ObjectPool {
	return &ObjectPool{rt: rt, items: make(map[string][]*Object)}
}

// Count returns the number of pooled objects.
func (p *ObjectPool) Count() int { return p.count }

// Get returns a pooled object for url, or creates one. It returns nil when
// url does not resolve.
func (p *ObjectPool) Get(url string) *Object {
	if p.rt == nil {
		return nil
	}
	url = p.rt.Packages.NormalizeURL(url)
	if url == "" {
		return nil
	}
	if arr := p.items[url]; len(arr) > 0 {
		o := arr[len(arr)-1]
		arr[len(arr)-1] = nil
		p.items[url] = arr[:len(arr)-1]
		p.count--
		return o
	}
	o, err := p.rt.CreateObjectFromURL(url)
	if err != nil {
		debugWarn("pool: %v", err)
		return nil
	}
	return o
}

// Return stores o for reuse. Objects without a package item are disposed.
func (p *ObjectPool) Return(o *Object) {
	if o == nil || o.disposed {
		return
	}
	o.RemoveFromParent()
	url := o.ResourceURL()
	if url == "" {
		o.Dispose()
		return
	}
	p.items[url] = append(p.items[url], o)
	p.count++
}

// Clear disposes every pooled object.
func (p *ObjectPool) Clear() {
	for url, arr := range p.items {
		for _, o := range arr {
			o.Dispose()
		}
		delete(p.items, url)
	}
	p.count = 0
}
