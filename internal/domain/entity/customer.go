package entity

import "time"

// Customer perfil del cliente final (propiedad del módulo de usuarios; aquí es solo lectura).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string // texto libre, ej. "12 MG Road, Indiranagar, Bangalore, Karnataka"
	CreatedAt time.Time
	UpdatedAt time.Time
}
