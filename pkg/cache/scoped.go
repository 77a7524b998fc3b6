package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that runs with
// different catalogs or users can share one backend without clashing.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "ci:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DesignKey(pinCount, id int, opts DesignKeyOpts) string {
	return k.prefix + k.inner.DesignKey(pinCount, id, opts)
}

func (k *ScopedKeyer) NetlistKey(pinCount, id int) string {
	return k.prefix + k.inner.NetlistKey(pinCount, id)
}
