package app

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/xmlres/internal/adapters/detector"
	"go.trai.ch/xmlres/internal/core/domain"
)

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	SettingsOptions
	Public string
	System string
	Base   string
	// List prints the resolvers of the chain instead of resolving.
	List   bool
	Format string
}

// Resolution is the answer of the resolver chain for one identifier.
type Resolution struct {
	PublicID string `json:"publicId,omitempty"`
	SystemID string `json:"systemId,omitempty"`
	Base     string `json:"base,omitempty"`
	URI      string `json:"uri"`
	// Resolver names the resolver that answered, "default" when none did and
	// the system id was expanded against the base.
	Resolver string `json:"resolver"`
}

const defaultResolverName = "default"

// Resolve runs an identifier through the resolver chain and prints the result.
func (a *App) Resolve(opts ResolveOptions) error {
	f, err := detector.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	settings, err := a.LoadSettings(opts.SettingsOptions)
	if err != nil {
		return err
	}
	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	if opts.List {
		names := make([]string, 0, len(engine.Chain.Resolvers()))
		for _, r := range engine.Chain.Resolvers() {
			names = append(names, r.Name())
		}
		if f == detector.FormatJSON {
			return a.writeJSON(names)
		}
		for i, name := range names {
			_, _ = fmt.Fprintf(a.stdout, "%d. %s\n", i+1, name)
		}
		return nil
	}

	// A bare base asks which grammar a document location is associated with.
	if opts.Public == "" && opts.System == "" && opts.Base == "" {
		return domain.ErrNoIdentifier
	}

	base := opts.Base
	switch {
	case base == "":
		if root, ok := domain.PathFromURI(settings.RootURI); ok {
			base = domain.FileURI(filepath.Join(root, "_"))
		}
	case domain.URIScheme(base) == "":
		base = domain.FileURI(base)
	}

	res := Resolution{PublicID: opts.Public, SystemID: opts.System, Base: base}
	res.URI, res.Resolver = engine.Chain.ResolveWithName(base, opts.Public, opts.System)
	if res.URI == "" && opts.System != "" {
		res.URI = domain.ExpandSystemID(opts.System, base)
		res.Resolver = defaultResolverName
	}
	if res.URI == "" {
		return domain.ErrUnresolved
	}

	if f == detector.FormatJSON {
		return a.writeJSON(res)
	}
	_, _ = fmt.Fprintf(a.stdout, "%s (%s)\n", res.URI, res.Resolver)
	return nil
}
