package entity

import "time"

// Marca referencia liviana creada bajo demanda. NombreNormalizado es la clave de unicidad.
type Marca struct {
	ID                string    `json:"id"`
	Nombre            string    `json:"nombre"`
	NombreNormalizado string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// Ubicacion lugar físico dentro de un inventario, creado bajo demanda igual que Marca.
type Ubicacion struct {
	ID                string    `json:"id"`
	Nombre            string    `json:"nombre"`
	NombreNormalizado string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
