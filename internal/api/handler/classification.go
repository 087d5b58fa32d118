package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/usecases/classifying"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
)

// ClassifyItem recalcula a classificação de um único item do cardápio
func ClassifyItem(service classifying.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ClassifyItem")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do item não fornecido", nil)
			return
		}

		result, err := service.ClassifyItem(id)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, classifying.ErrItemNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuItemNotFound, "Item do cardápio não encontrado", nil)
				return
			}
			if errors.Is(err, classifying.ErrInsufficientData) {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientData, "Não há dados suficientes para calcular os limiares", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao classificar item", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ClassifyAllItems recalcula a classificação de todos os itens ativos
func ClassifyAllItems(service classifying.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ClassifyAllItems")

		result, err := service.ClassifyAll()
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, classifying.ErrInsufficientData) {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientData, "Não há dados suficientes para calcular os limiares", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao classificar o cardápio", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"classified": len(result.Classified),
			"failed":     len(result.Failed),
		}).Info("Classificação do cardápio concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetMenuStats retorna as estatísticas agregadas do cardápio por categoria
func GetMenuStats(service classifying.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.ItemStats()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar estatísticas do cardápio", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
