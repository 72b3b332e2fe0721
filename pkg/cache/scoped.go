package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get
// isolated key namespaces. The server uses this to keep artifacts for
// named snapshots apart from artifacts for the live registry graph.
//
// Example usage:
//
//	// Artifacts for one stored snapshot
//	snapKeyer := NewScopedKeyer(NewDefaultKeyer(), "snapshot:9f1c:")
//
//	// Artifacts for the live graph
//	liveKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer defaults to the standard keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a serialized graph document.
func (k *ScopedKeyer) GraphKey(name string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(name, opts)
}

// ExportKey generates a prefixed key for a textual export artifact.
func (k *ScopedKeyer) ExportKey(graphHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(graphHash, opts)
}

// RenderKey generates a prefixed key for a rendered image artifact.
func (k *ScopedKeyer) RenderKey(dotHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(dotHash, opts)
}
