package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/saniyaC164/BIPA/infrastructure/database/postgres"
	"github.com/saniyaC164/BIPA/internal/config"
)

// statements cria o histórico de snapshots do dashboard; podem ser executados mais de uma vez
var statements = []string{
	`CREATE TABLE IF NOT EXISTS dashboard_snapshots (
		id         BIGSERIAL PRIMARY KEY,
		cycle_id   TEXT        NOT NULL,
		sequence   BIGINT      NOT NULL,
		filters    JSONB       NOT NULL,
		view_model JSONB       NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dashboard_snapshots_created_at ON dashboard_snapshots (created_at DESC)`,
}

func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao PostgreSQL: %v", err)
	}
	defer conn.Close()

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
			log.Printf("Progresso: %d/%d comandos executados", i+1, len(statements))
		}
		return nil
	})
	if err != nil {
		log.Fatalf("ERRO na migração, transação desfeita: %v", err)
	}

	log.Printf("Migração concluída em %v", time.Since(startTime))
}
