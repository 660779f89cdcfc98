// Package memory implementa los repositorios en memoria (STORAGE_DRIVER=memory).
// Sirve para demos locales sin PostgreSQL y como almacén de los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

// Store guarda todos los registros bajo un único mutex. Devuelve siempre copias.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	clients  map[string]record[entity.Client]
	items    map[string]record[entity.InventoryItem]
	business *entity.BusinessProfile
	invoices map[string]record[entity.Invoice]

	// numbering serializa RunInvoice igual que el advisory lock en PostgreSQL
	numbering sync.Mutex
}

// record conserva el orden de inserción para desempatar created_at iguales.
type record[T any] struct {
	seq   int64
	value T
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		clients:  make(map[string]record[entity.Client]),
		items:    make(map[string]record[entity.InventoryItem]),
		invoices: make(map[string]record[entity.Invoice]),
	}
}

// Clients devuelve el repositorio de clientes.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// Items devuelve el repositorio de artículos.
func (s *Store) Items() *InventoryItemRepo { return &InventoryItemRepo{s: s} }

// Business devuelve el repositorio del perfil de empresa.
func (s *Store) Business() *BusinessProfileRepo { return &BusinessProfileRepo{s: s} }

// Invoices devuelve el repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// RunInvoice ejecuta fn de forma serializada con el repositorio de facturas.
func (s *Store) RunInvoice(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	s.numbering.Lock()
	defer s.numbering.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.Invoices())
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// newestFirst ordena por created_at descendente y, a igual fecha, por inserción descendente.
func newestFirst[T any](recs []record[T], createdAt func(*T) time.Time) []T {
	sort.Slice(recs, func(i, j int) bool {
		ti, tj := createdAt(&recs[i].value), createdAt(&recs[j].value)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return recs[i].seq > recs[j].seq
	})
	out := make([]T, len(recs))
	for i := range recs {
		out[i] = recs[i].value
	}
	return out
}

// page aplica limit/offset; limit <= 0 devuelve todo desde offset.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
