package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/usecases/ordering"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
)

// CreateOrder registra um novo pedido do cliente
func CreateOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateOrder")

		var req *domain.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		order, err := service.CreateOrder(req)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, ordering.ErrEmptyOrder) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Pedido deve conter pelo menos um item", nil)
				return
			}
			if errors.Is(err, ordering.ErrInvalidQuantity) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Quantidade deve ser maior que zero", nil)
				return
			}
			if errors.Is(err, ordering.ErrItemUnavailable) {
				apiErrors.WriteError(w, apiErrors.ErrMenuItemNotFound, "Item indisponível no cardápio", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar pedido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(order); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetOrder retorna um pedido por ID
func GetOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido não fornecido", nil)
			return
		}

		order, err := service.GetOrder(id)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, ordering.ErrOrderNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrOrderNotFound, "Pedido não encontrado", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar pedido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(order); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ListOrders lista os pedidos mais recentes, opcionalmente por status
func ListOrders(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *domain.OrderStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, ok := domain.ParseOrderStatus(raw)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de pedido inválido", map[string]string{
					"status": raw,
				})
				return
			}
			status = &parsed
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

		orders, err := service.ListOrders(status, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar pedidos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orders); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UpdateOrderStatusRequest é o corpo esperado na troca de status do pedido
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus move um pedido pelo fluxo de atendimento
func UpdateOrderStatus(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateOrderStatus")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido não fornecido", nil)
			return
		}

		var req UpdateOrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		status, ok := domain.ParseOrderStatus(req.Status)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de pedido inválido", map[string]string{
				"status": req.Status,
			})
			return
		}

		order, err := service.UpdateStatus(id, status)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, ordering.ErrOrderNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrOrderNotFound, "Pedido não encontrado", nil)
				return
			}
			if errors.Is(err, ordering.ErrOrderFinalized) || errors.Is(err, ordering.ErrInvalidTransition) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidOrderStatus, "Transição de status inválida", map[string]string{
					"status": req.Status,
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar pedido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(order); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetOrderStats retorna as estatísticas operacionais de pedidos
func GetOrderStats(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.GetOrderStats()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar estatísticas de pedidos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
