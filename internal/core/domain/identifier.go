package domain

import "strings"

// Identifier is the (baseLocation, publicId, systemId) triple used to look up an
// external resource. Empty strings stand for absent values.
type Identifier struct {
	PublicID     string
	SystemID     string
	BaseLocation string
}

// IsZero reports whether neither a public nor a system id is set.
func (id Identifier) IsZero() bool {
	return id.PublicID == "" && id.SystemID == ""
}

// String renders the identifier for logs.
func (id Identifier) String() string {
	var b strings.Builder
	b.WriteString("{")
	if id.PublicID != "" {
		b.WriteString("public=" + id.PublicID)
	}
	if id.SystemID != "" {
		if b.Len() > 1 {
			b.WriteString(" ")
		}
		b.WriteString("system=" + id.SystemID)
	}
	if id.BaseLocation != "" {
		if b.Len() > 1 {
			b.WriteString(" ")
		}
		b.WriteString("base=" + id.BaseLocation)
	}
	b.WriteString("}")
	return b.String()
}

// InputSource is a readable resource produced by an entity resolver.
type InputSource struct {
	PublicID string
	SystemID string
	// BaseURI is the URI relative references inside Body resolve against.
	BaseURI string
	Body    []byte
}
