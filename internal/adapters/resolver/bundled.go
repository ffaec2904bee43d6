package resolver

import (
	"bytes"
	"context"
	"embed"
	"io"
	"sync"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

// BundledName is the name of the bundled schema resolver.
const BundledName = "bundled"

//go:embed schemas/*.xsd
var schemaFS embed.FS

// BundledSchema is a schema shipped with the binary.
type BundledSchema struct {
	// File is the name of the schema under schemas/.
	File string
	// Namespace is the target namespace the schema answers for.
	Namespace string
	// SystemIDs are the canonical locations of the schema. The first one
	// determines where the schema is extracted.
	SystemIDs []string
}

// DefaultBundledSchemas lists the schemas every installation resolves offline.
var DefaultBundledSchemas = []BundledSchema{
	{
		File:      "xml.xsd",
		Namespace: domain.XMLNamespace,
		SystemIDs: []string{
			"http://www.w3.org/2001/xml.xsd",
			"https://www.w3.org/2001/xml.xsd",
		},
	},
	{
		File:      "catalog.xsd",
		Namespace: domain.CatalogNamespace,
		SystemIDs: []string{
			"http://www.oasis-open.org/committees/entity/release/1.1/catalog.xsd",
			"https://www.oasis-open.org/committees/entity/release/1.1/catalog.xsd",
		},
	},
}

// Extractor places bundled schemas on disk. *rescache.Store satisfies it.
type Extractor interface {
	Path(uri string) (string, error)
	Exists(p string) bool
	Publish(p string, r io.Reader) (int64, error)
}

// Bundled resolves well-known namespaces and system ids to schemas embedded
// in the binary. Schemas are extracted next to downloaded resources so that
// grammar engines read them like any other cached grammar.
type Bundled struct {
	extractor Extractor
	logger    ports.Logger
	schemas   []BundledSchema

	mu sync.Mutex
}

// NewBundled creates the resolver over the default bundled schemas.
func NewBundled(extractor Extractor, logger ports.Logger) *Bundled {
	return &Bundled{
		extractor: extractor,
		logger:    logger,
		schemas:   DefaultBundledSchemas,
	}
}

// Name implements ports.URIResolver.
func (b *Bundled) Name() string {
	return BundledName
}

// Resolve returns the file URI of the extracted schema matching the namespace
// (passed as public id) or the system id.
func (b *Bundled) Resolve(_, publicID, systemID string) string {
	s, ok := b.lookup(publicID, systemID)
	if !ok {
		return ""
	}
	p, err := b.extract(s)
	if err != nil {
		b.logger.Error(err)
		return ""
	}
	return domain.FileURI(p)
}

// ResolveEntity returns the embedded bytes of the matching schema.
func (b *Bundled) ResolveEntity(_ context.Context, id domain.Identifier) (*domain.InputSource, error) {
	s, ok := b.lookup(id.PublicID, id.SystemID)
	if !ok {
		return nil, nil
	}
	body, err := schemaFS.ReadFile("schemas/" + s.File)
	if err != nil {
		return nil, domain.ErrBundledResourceMissing
	}
	return &domain.InputSource{
		PublicID: id.PublicID,
		SystemID: s.SystemIDs[0],
		BaseURI:  s.SystemIDs[0],
		Body:     body,
	}, nil
}

// Schemas returns the bundled schemas.
func (b *Bundled) Schemas() []BundledSchema {
	out := make([]BundledSchema, len(b.schemas))
	copy(out, b.schemas)
	return out
}

func (b *Bundled) lookup(publicID, systemID string) (BundledSchema, bool) {
	for _, s := range b.schemas {
		if publicID != "" && publicID == s.Namespace {
			return s, true
		}
	}
	if systemID == "" {
		return BundledSchema{}, false
	}
	for _, s := range b.schemas {
		for _, sys := range s.SystemIDs {
			if sys == systemID {
				return s, true
			}
		}
	}
	return BundledSchema{}, false
}

// extract writes the schema to its cache location unless it is already there.
// The check runs on every call since the cache directory may be evicted.
func (b *Bundled) extract(s BundledSchema) (string, error) {
	p, err := b.extractor.Path(s.SystemIDs[0])
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.extractor.Exists(p) {
		return p, nil
	}
	body, err := schemaFS.ReadFile("schemas/" + s.File)
	if err != nil {
		return "", domain.ErrBundledResourceMissing
	}
	if _, err := b.extractor.Publish(p, bytes.NewReader(body)); err != nil {
		return "", err
	}
	return p, nil
}
