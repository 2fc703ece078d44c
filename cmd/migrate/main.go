package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/StockLedger-api/pkg/config"
)

// Aplica migrations/schema.sql contra la base configurada.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB.ConnectionString())
	if err != nil {
		fmt.Printf("conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	path := "migrations/schema.sql"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	sqlFile, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("leer %s: %v\n", path, err)
		os.Exit(1)
	}

	if _, err := pool.Exec(ctx, string(sqlFile)); err != nil {
		fmt.Printf("aplicar migración: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migración aplicada")
}
