package cache

import "strings"

// Keyer generates cache keys. Keys are namespaced by type so different kinds
// of entries never collide, and options are hashed into the key so each
// variant of a chart is cached separately.
type Keyer interface {
	// LayoutKey returns the key for layout geometry of a definition.
	LayoutKey(definitionHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for one rendered output format.
	ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the definition that change the layout.
type LayoutKeyOpts struct {
	// Frame is the index of the value frame applied after Plot; -1 means the
	// definition's own values.
	Frame int `json:"frame"`
	// Measurer identifies the text metrics used; empty means the definition's
	// own font sizes with the embedded font.
	Measurer string `json:"measurer,omitempty"`
}

// ArtifactKeyOpts are the inputs besides the definition that change a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Frame     int     `json:"frame"`
	Scale     float64 `json:"scale,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Measurer  string  `json:"measurer,omitempty"`
}

// Key type prefixes, also reported to cache hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// DefaultKeyer generates keys of the form "type:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(definitionHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, definitionHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, definitionHash, opts)
}

// KeyType returns the type prefix of a key generated by a Keyer, ignoring any
// scope prefix.
func KeyType(key string) string {
	for _, seg := range strings.Split(key, ":") {
		switch seg {
		case KeyTypeArtifact, KeyTypeLayout:
			return seg
		}
	}
	return "unknown"
}
