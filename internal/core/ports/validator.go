package ports

import (
	"context"

	"go.trai.ch/xmlres/internal/core/domain"
)

// Validator runs validation passes over documents.
//
//go:generate mockgen -source=validator.go -destination=mocks/mock_validator.go -package=mocks
type Validator interface {
	Validate(ctx context.Context, doc Document) (*domain.DiagnosticsResult, error)
	// Forget drops the state kept for a document.
	Forget(uri string)
}
