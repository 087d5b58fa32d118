package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/usecases/recommending"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
)

// RecommendationRequest é o corpo esperado pelo endpoint de recomendações
type RecommendationRequest struct {
	CartItemIDs []string `json:"cart_item_ids"`
	Strategy    string   `json:"strategy"`
	Limit       int      `json:"limit"`
}

// GetRecommendations ranqueia itens do cardápio para o carrinho informado
func GetRecommendations(service recommending.Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRecommendations")

		var req RecommendationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.Strategy == "" {
			req.Strategy = string(domain.StrategyBalanced)
		}

		recommendations, err := service.Recommend(req.CartItemIDs, req.Strategy, req.Limit)
		if err != nil {
			// Sem candidatos elegíveis não é um erro para o cliente: o
			// cardápio pode estar inteiro no carrinho
			if errors.Is(err, recommending.ErrEmptyPool) {
				recommendations = []domain.RecommendationCandidate{}
			} else if errors.Is(err, recommending.ErrUnknownStrategy) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidStrategy, "Estratégia de recomendação desconhecida", map[string]string{
					"strategy": req.Strategy,
				})
				return
			} else if errors.Is(err, recommending.ErrInvalidItemID) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Identificador de item inválido no carrinho", nil)
				return
			} else {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar recomendações", nil)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(recommendations); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetFrequentlyBoughtWith retorna os itens mais pedidos junto com o item
func GetFrequentlyBoughtWith(service recommending.Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do item não fornecido", nil)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		associations, err := service.FrequentlyBoughtWith(id, limit)
		if err != nil {
			if errors.Is(err, recommending.ErrInvalidItemID) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Identificador de item inválido", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar itens associados", nil)
			return
		}

		if associations == nil {
			associations = []domain.ItemAssociation{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(associations); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
