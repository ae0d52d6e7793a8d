package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The API
// server scopes keys per stored chart so deleting a chart can drop its
// entries, and the CLI and server can share one Redis without collisions.
//
// Example usage:
//
//	chartKeyer := NewScopedKeyer(NewDefaultKeyer(), "chart:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(definitionHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(definitionHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(definitionHash, opts)
}
