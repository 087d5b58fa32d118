package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/usecases/classifying"
)

type ClassificationSyncConfig struct {
	CronSchedule string
	Enabled      bool
}

// ClassificationSyncService reclassifica o cardápio completo durante a
// madrugada, quando os totais do dia anterior já estão consolidados.
type ClassificationSyncService struct {
	scheduler           *gocron.Scheduler
	classifier          classifying.Classifier
	config              ClassificationSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewClassificationSyncService(
	classifier classifying.Classifier,
	cfg *config.Config,
) *ClassificationSyncService {
	syncConfig := ClassificationSyncConfig{
		CronSchedule: cfg.ClassificationSync.CronSchedule, // Default: 3h da manhã todos os dias
		Enabled:      cfg.ClassificationSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador de classificação do cardápio carregada")

	return &ClassificationSyncService{
		scheduler:  scheduler,
		classifier: classifier,
		config:     syncConfig,
	}
}

func (s *ClassificationSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de classificação do cardápio desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de classificação do cardápio")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.ClassifyMenu(); err != nil {
			logrus.WithError(err).Error("Erro na classificação agendada do cardápio")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar classificação do cardápio: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de classificação do cardápio")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ClassificationSyncService) ClassifyMenu() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Classificação do cardápio já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando classificação agendada do cardápio")

	result, err := s.classifier.ClassifyAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao classificar o cardápio")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"classified": len(result.Classified),
		"failed":     len(result.Failed),
		"population": result.Stats.PopulationSize,
	}).Info("Classificação agendada do cardápio concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma classificação completa do cardápio
func (s *ClassificationSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Classificação do cardápio já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando classificação manual do cardápio")
	go s.ClassifyMenu()
}

// GetStatus retorna o status atual do agendador
func (s *ClassificationSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
