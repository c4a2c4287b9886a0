package postgres

import (
	"context"
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemaFS embed.FS

const schemaName = "schema/postgres.sql"

// LoadSchema devuelve el DDL embebido en el binario.
func LoadSchema() (string, error) {
	data, err := schemaFS.ReadFile(schemaName)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EnsureSchema crea las tablas e índices que falten. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	ddl, err := LoadSchema()
	if err != nil {
		return fmt.Errorf("leer schema: %w", err)
	}
	if _, err := q.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}
