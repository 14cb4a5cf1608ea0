package entity

import "time"

// Item artículo de inventario. LotTracked/SerialTracked determinan si los
// movimientos del artículo exigen lote o serial.
type Item struct {
	ID            string
	CompanyID     string
	SKU           string
	Name          string
	LotTracked    bool
	SerialTracked bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Warehouse bodega de una empresa.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
