package model

import (
	"context"
	"os"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Open returns the content of a resource a grammar pulls in. The entity
// resolver is asked first; without an answer, local files are read directly.
// It returns nil, nil for resources that are neither resolvable nor local.
func Open(ctx context.Context, entities ports.EntityResolver, id domain.Identifier) (*domain.InputSource, error) {
	if entities != nil {
		src, err := entities.ResolveEntity(ctx, id)
		if err != nil || src != nil {
			return src, err
		}
	}
	uri := domain.ExpandSystemID(id.SystemID, id.BaseLocation)
	p, ok := domain.PathFromURI(uri)
	if !ok {
		return nil, nil
	}
	body, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceUnavailable.Error()), "uri", uri)
	}
	return &domain.InputSource{PublicID: id.PublicID, SystemID: uri, BaseURI: uri, Body: body}, nil
}
