package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
)

// RecordActivity registra um evento de navegação do cliente no cardápio
func RecordActivity(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req *tracking.RecordEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		activity, err := service.RecordEvent(req)
		if err != nil {
			if errors.Is(err, tracking.ErrMissingSession) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador de sessão é obrigatório", nil)
				return
			}
			if errors.Is(err, tracking.ErrInvalidEventType) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de evento inválido", nil)
				return
			}
			if errors.Is(err, tracking.ErrUnknownItem) {
				apiErrors.WriteError(w, apiErrors.ErrMenuItemNotFound, "Item do cardápio não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar atividade", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(activity); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ListActivities lista as atividades registradas, com filtros opcionais
func ListActivities(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter repository.ActivityFilter

		if raw := r.URL.Query().Get("session_id"); raw != "" {
			filter.SessionID = &raw
		}
		if raw := r.URL.Query().Get("event_type"); raw != "" {
			eventType, ok := domain.ParseActivityEventType(raw)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de evento inválido", map[string]string{
					"event_type": raw,
				})
				return
			}
			filter.EventType = &eventType
		}
		if raw := r.URL.Query().Get("menu_item_id"); raw != "" {
			filter.MenuItemID = &raw
		}
		if raw := r.URL.Query().Get("since"); raw != "" {
			since, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro since inválido, use RFC3339", nil)
				return
			}
			filter.Since = &since
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			filter.Limit = limit
		}

		activities, err := service.ListEvents(filter)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar atividades", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(activities); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetActivityStats retorna as estatísticas de navegação dos clientes
func GetActivityStats(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.GetStats()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar estatísticas de atividades", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
