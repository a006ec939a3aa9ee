package entity

import "time"

// Warehouse representa una bodega o finca donde se almacena inventario.
// Insumos y movimientos se escopan por bodega; referencias cruzadas entre
// bodegas son inválidas.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
