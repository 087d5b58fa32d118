// Package scheduler contém os serviços de agendamento das análises do cardápio
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/usecases/recommending"
)

type AffinityRebuildConfig struct {
	CronSchedule string
	Enabled      bool
}

// AffinityRebuildService reconstrói periodicamente o mapa de co-compra para
// que as recomendações não dependam apenas da expiração do cache.
type AffinityRebuildService struct {
	scheduler           *gocron.Scheduler
	recommender         recommending.Recommender
	config              AffinityRebuildConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewAffinityRebuildService(
	recommender recommending.Recommender,
	cfg *config.Config,
) *AffinityRebuildService {
	rebuildConfig := AffinityRebuildConfig{
		CronSchedule: cfg.AffinityRebuild.CronSchedule, // Default: a cada 15 minutos
		Enabled:      cfg.AffinityRebuild.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rebuildConfig.CronSchedule,
	}).Info("Configuração do agendador de reconstrução de co-compra carregada")

	return &AffinityRebuildService{
		scheduler:   scheduler,
		recommender: recommender,
		config:      rebuildConfig,
	}
}

func (s *AffinityRebuildService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de reconstrução do mapa de co-compra desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de reconstrução do mapa de co-compra")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RebuildAffinity(); err != nil {
			logrus.WithError(err).Error("Erro na reconstrução do mapa de co-compra")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reconstrução do mapa de co-compra: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de reconstrução do mapa de co-compra")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AffinityRebuildService) RebuildAffinity() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Reconstrução do mapa de co-compra já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando reconstrução do mapa de co-compra")

	affinity, err := s.recommender.RebuildAffinity()
	if err != nil {
		logrus.WithError(err).Error("Erro ao reconstruir o mapa de co-compra")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"total_orders": affinity.TotalOrders,
		"items":        len(affinity.ItemFrequencies),
	}).Info("Reconstrução do mapa de co-compra concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma reconstrução do mapa de co-compra
func (s *AffinityRebuildService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reconstrução do mapa de co-compra já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando reconstrução manual do mapa de co-compra")
	go s.RebuildAffinity()
}

// GetStatus retorna o status atual do agendador
func (s *AffinityRebuildService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
