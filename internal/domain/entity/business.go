package entity

import "time"

// Business negocio de un vendedor (lo administra el módulo de listados; aquí es solo lectura).
type Business struct {
	ID        string
	OwnerID   string // vendedor dueño
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si el vendedor es dueño del negocio.
func (b *Business) OwnedBy(sellerID string) bool {
	return b != nil && sellerID != "" && b.OwnerID == sellerID
}
