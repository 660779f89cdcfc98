package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes (facturación).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente. El país por defecto es India.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.GSTIN) == "" {
		return nil, domain.NewValidationError("client", "nombre y GSTIN son obligatorios", nil)
	}
	existing, err := uc.repo.GetByGSTIN(ctx, in.GSTIN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		GSTIN:     in.GSTIN,
		Address:   toAddress(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if client.Address.Country == "" {
		client.Address.Country = entity.DefaultCountry
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Get obtiene un cliente por ID.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	resp := ToClientResponse(c)
	return &resp, nil
}

// List lista clientes, los más recientes primero.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToClientResponse(c))
	}
	return out, nil
}

// Update aplica los campos presentes; la dirección se fusiona campo a campo.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	if in.Name != nil && *in.Name != "" {
		c.Name = *in.Name
	}
	if in.Email != nil && *in.Email != "" {
		c.Email = *in.Email
	}
	if in.Phone != nil && *in.Phone != "" {
		c.Phone = *in.Phone
	}
	if in.GSTIN != nil && *in.GSTIN != "" {
		c.GSTIN = *in.GSTIN
	}
	if in.Address != nil {
		c.Address = c.Address.Merge(toAddress(*in.Address))
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := ToClientResponse(c)
	return &resp, nil
}

// Delete elimina un cliente. Las facturas que lo referencian se conservan.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toAddress(a dto.AddressDTO) entity.Address {
	return entity.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Pincode: a.Pincode,
		Country: a.Country,
	}
}

// ToClientResponse mapea la entidad a su DTO.
func ToClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		GSTIN: c.GSTIN,
		Address: dto.AddressDTO{
			Street:  c.Address.Street,
			City:    c.Address.City,
			State:   c.Address.State,
			Pincode: c.Address.Pincode,
			Country: c.Address.Country,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
