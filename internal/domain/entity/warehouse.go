package entity

// Warehouse representa una bodega que puede despachar órdenes.
type Warehouse struct {
	ID      int
	Name    string
	Address string
}
