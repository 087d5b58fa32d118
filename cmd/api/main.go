package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/menu-engine-api/infrastructure/integrator/assist"
	"github.com/vfg2006/menu-engine-api/infrastructure/integrator/assist/assistclient"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/api"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/scheduler"
	"github.com/vfg2006/menu-engine-api/internal/usecases/authenticating"
	"github.com/vfg2006/menu-engine-api/internal/usecases/cataloging"
	"github.com/vfg2006/menu-engine-api/internal/usecases/classifying"
	"github.com/vfg2006/menu-engine-api/internal/usecases/ordering"
	"github.com/vfg2006/menu-engine-api/internal/usecases/recommending"
	"github.com/vfg2006/menu-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/menu-engine-api/pkg/cache"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	sectionRepo := repository.NewMenuSectionRepository(pgConn)
	itemRepo := repository.NewMenuItemRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	activityRepo := repository.NewCustomerActivityRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	assistClient := assistclient.NewClient(cfg)
	assistIntegrator := assist.New(cfg, assistClient)

	catalogService := cataloging.NewService(sectionRepo, itemRepo)
	orderService := ordering.NewService(orderRepo, itemRepo, activityRepo)
	trackingService := tracking.NewService(activityRepo, itemRepo)
	classifierService := classifying.NewService(itemRepo)

	// Cache de resultados de análise com single-flight para evitar
	// reconstruções concorrentes da estrutura de afinidade
	resultCache := cache.New()
	recommenderService := recommending.NewService(itemRepo, orderRepo, resultCache, cfg)

	// Inicializa os agendadores das análises do cardápio
	affinityRebuildService := scheduler.NewAffinityRebuildService(
		recommenderService,
		cfg,
	)

	classificationSyncService := scheduler.NewClassificationSyncService(
		classifierService,
		cfg,
	)

	// Inicia os agendadores em background
	if err := affinityRebuildService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reconstrução de afinidade")
	} else {
		logrus.Info("Agendador de reconstrução de afinidade iniciado com sucesso")
	}

	if err := classificationSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de classificação do cardápio")
	} else {
		logrus.Info("Agendador de classificação do cardápio iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		catalogService,
		orderService,
		trackingService,
		classifierService,
		recommenderService,
		authenticator,
		assistIntegrator,
		affinityRebuildService,
		classificationSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
