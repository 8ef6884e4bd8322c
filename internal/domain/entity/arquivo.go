package entity

import "time"

// Arquivo é um upload bruto guardado no armazenamento de objetos.
type Arquivo struct {
	ID          string // uuid
	TenantID    *int64
	UsuarioID   int64
	Nome        string
	ObjectKey   string
	Tamanho     int64
	ContentType string
	CreatedAt   time.Time
}
