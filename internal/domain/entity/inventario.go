package entity

import "time"

// Inventario agrupa artículos (bodega, brigada o sede). Es el dueño de cada Articulo.
type Inventario struct {
	ID          string
	Nombre      string
	Descripcion string
	Responsable string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
