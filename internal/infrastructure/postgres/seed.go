package postgres

import (
	"context"
	"fmt"
)

// seedStatements datos de demostración: producto 1 a 9.99, bodega 2 y la orden 7 (3 unidades) sin despachar.
var seedStatements = []string{
	`INSERT INTO product (id_product, name, description, price) VALUES
		(1, 'Abacavir', 'Tabletas 300 mg', 9.99),
		(2, 'Acyclovir', 'Crema 5%', 25.50),
		(3, 'Allopurinol', 'Tabletas 100 mg', 4.25)
	 ON CONFLICT (id_product) DO NOTHING`,
	`INSERT INTO warehouse (id_warehouse, name, address) VALUES
		(1, 'Bodega Norte', 'Calle 80 # 45-12'),
		(2, 'Bodega Centro', 'Carrera 7 # 12-30')
	 ON CONFLICT (id_warehouse) DO NOTHING`,
	`INSERT INTO "order" (id_order, id_product, amount, created_at) VALUES
		(7, 1, 3, '2024-01-01T00:00:00Z'),
		(8, 2, 10, '2024-02-15T10:00:00Z'),
		(9, 3, 25, '2024-03-20T08:30:00Z')
	 ON CONFLICT (id_order) DO NOTHING`,
	// Las columnas identity no avanzan con IDs explícitos.
	`SELECT setval(pg_get_serial_sequence('product', 'id_product'), (SELECT MAX(id_product) FROM product))`,
	`SELECT setval(pg_get_serial_sequence('warehouse', 'id_warehouse'), (SELECT MAX(id_warehouse) FROM warehouse))`,
	`SELECT setval(pg_get_serial_sequence('"order"', 'id_order'), (SELECT MAX(id_order) FROM "order"))`,
}

// SeedDemo carga los datos de demostración. Es idempotente.
func SeedDemo(ctx context.Context, q Querier) error {
	for i, stmt := range seedStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed statement %d: %w", i+1, err)
		}
	}
	return nil
}
