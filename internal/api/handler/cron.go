package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/scheduler"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
	"github.com/vfg2006/menu-engine-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAffinity       = "affinity"
	CronJobTypeClassification = "classification"
	CronJobTypeAll            = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	AffinityRebuildService    *scheduler.AffinityRebuildService
	ClassificationSyncService *scheduler.ClassificationSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeAffinity:
			// Reconstruir a estrutura de afinidade entre itens
			if services.AffinityRebuildService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de reconstrução de afinidade não disponível", nil)
				return
			}
			services.AffinityRebuildService.TriggerManualSync()

		case CronJobTypeClassification:
			// Reclassificar todos os itens ativos do cardápio
			if services.ClassificationSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de classificação do cardápio não disponível", nil)
				return
			}
			services.ClassificationSyncService.TriggerManualSync()

		case CronJobTypeAll:
			// Executar ambas as análises
			if services.AffinityRebuildService != nil {
				services.AffinityRebuildService.TriggerManualSync()
			}
			if services.ClassificationSyncService != nil {
				services.ClassificationSyncService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: affinity, classification, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"affinity":       services.AffinityRebuildService.GetStatus(),
			"classification": services.ClassificationSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
