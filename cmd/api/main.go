package main

import (
	"context"
	"time"

	"github.com/saniyaC164/BIPA/infrastructure/database/postgres"
	"github.com/saniyaC164/BIPA/infrastructure/integrator/cafe/cafeclient"
	"github.com/saniyaC164/BIPA/infrastructure/repository"
	"github.com/saniyaC164/BIPA/internal/api"
	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/saniyaC164/BIPA/internal/scheduler"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	log.L.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cafeClient := cafeclient.NewClient(cfg)
	dashboardService := assembling.NewService(cafeClient, cfg)
	refreshService := scheduler.NewDashboardRefreshService(dashboardService, cfg)

	if cfg.SnapshotStore.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		snapshotRepo := repository.NewDashboardSnapshotRepository(pgConn)
		dashboardService.WithHistory(snapshotRepo)
		refreshService.WithHistory(snapshotRepo)

		if err := dashboardService.RestoreLatest(); err != nil {
			log.L.WithError(err).Warn("dashboard: não foi possível restaurar o último snapshot")
		}
	}

	// o primeiro ciclo roda em background para não atrasar a subida do servidor
	go func() {
		if _, err := dashboardService.Refresh(ctx); err != nil {
			log.L.WithError(err).Warn("dashboard: primeiro ciclo não publicou dados")
		}
	}()

	if err := refreshService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de atualização do dashboard")
	}

	server, err := api.New(cfg, dashboardService, refreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}

	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
