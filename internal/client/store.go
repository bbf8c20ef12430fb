package client

import (
	"context"
	"sync"

	"product-catalog/internal/apperrors"
	"product-catalog/internal/models"
)

// Op identifica cada categoría de operación del store
type Op int

const (
	OpFetch Op = iota
	OpAdd
	OpEdit
	OpRemove
	numOps
)

// fallbacks se usan cuando el fallo no trae mensaje del servidor
// (por ejemplo un error de red)
var fallbacks = [numOps]string{
	OpFetch:  "Failed to fetch products",
	OpAdd:    "Failed to add product",
	OpEdit:   "Failed to update product",
	OpRemove: "Failed to delete product",
}

// Status es el estado de una operación: pendiente o, si falló,
// el mensaje del último rechazo
type Status struct {
	Loading bool
	Err     string
}

// Store mantiene el espejo en memoria del catálogo durante la sesión.
// El servidor es la única fuente de verdad: la lista se reemplaza
// entera en fetch y se parchea localmente con lo que devuelve cada
// operación. Cada operación lleva su propio estado, así dos acciones
// solapadas no se pisan los flags entre sí.
type Store struct {
	svc *Service

	mu    sync.Mutex
	items []models.Product
	ops   [numOps]Status
}

func NewStore(svc *Service) *Store {
	return &Store{svc: svc}
}

// Snapshot devuelve una copia del estado para renderizar
func (s *Store) Snapshot() ([]models.Product, [numOps]Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Product, len(s.items))
	copy(items, s.items)
	return items, s.ops
}

// StatusOf devuelve el estado de una operación concreta
func (s *Store) StatusOf(op Op) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops[op]
}

// Fetch reemplaza la lista entera con lo que tenga el servidor
func (s *Store) Fetch(ctx context.Context) error {
	s.pending(OpFetch)

	products, err := s.svc.FetchProducts(ctx)
	if err != nil {
		s.rejected(OpFetch, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[OpFetch] = Status{}
	s.items = products
	return nil
}

// Add crea el producto y lo agrega al final de la lista local
func (s *Store) Add(ctx context.Context, form ProductForm) error {
	s.pending(OpAdd)

	product, err := s.svc.CreateProduct(ctx, form)
	if err != nil {
		s.rejected(OpAdd, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[OpAdd] = Status{}
	s.items = append(s.items, *product)
	return nil
}

// Edit actualiza el producto y parchea el elemento por id
func (s *Store) Edit(ctx context.Context, id string, form ProductForm) error {
	s.pending(OpEdit)

	product, err := s.svc.UpdateProduct(ctx, id, form)
	if err != nil {
		s.rejected(OpEdit, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[OpEdit] = Status{}
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i] = *product
			break
		}
	}
	return nil
}

// Remove borra el producto y lo filtra de la lista por id
func (s *Store) Remove(ctx context.Context, id string) error {
	s.pending(OpRemove)

	if err := s.svc.DeleteProduct(ctx, id); err != nil {
		s.rejected(OpRemove, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[OpRemove] = Status{}
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID.Hex() != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return nil
}

// pending marca la operación en curso y limpia su último error
func (s *Store) pending(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[op] = Status{Loading: true}
}

// rejected guarda el mensaje del servidor, o el fallback de la
// operación cuando el fallo no trae ninguno
func (s *Store) rejected(op Op, err error) {
	msg := fallbacks[op]
	if apiErr := apperrors.FromErr(err, ""); apiErr.Message != "" {
		msg = apiErr.Message
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[op] = Status{Err: msg}
}
