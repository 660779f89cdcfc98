package repository

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// BusinessProfileRepository persistencia del perfil único de empresa.
type BusinessProfileRepository interface {
	// Get devuelve el perfil o (nil, nil) si aún no existe.
	Get(ctx context.Context) (*entity.BusinessProfile, error)
	// Create falla con domain.ErrDuplicate si ya existe un perfil.
	Create(ctx context.Context, profile *entity.BusinessProfile) error
	Update(ctx context.Context, profile *entity.BusinessProfile) error
}
