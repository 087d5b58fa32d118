package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/infrastructure/integrator/assist"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/usecases/cataloging"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
)

// CreateMenuItem cria um novo item do cardápio
func CreateMenuItem(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateMenuItem")

		var item *domain.MenuItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		item, err := service.CreateItem(item)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, cataloging.ErrMissingTitle) || errors.Is(err, cataloging.ErrInvalidPrice) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			if errors.Is(err, cataloging.ErrSectionNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuSectionNotFound, "Seção do cardápio não encontrada", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar item", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(item); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UpdateMenuItem atualiza campos de um item existente
func UpdateMenuItem(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateMenuItem")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do item não fornecido", nil)
			return
		}

		var req domain.UpdateMenuItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		item, err := service.UpdateItem(&req)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, cataloging.ErrItemNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuItemNotFound, "Item do cardápio não encontrado", nil)
				return
			}
			if errors.Is(err, cataloging.ErrSectionNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuSectionNotFound, "Seção do cardápio não encontrada", nil)
				return
			}
			if errors.Is(err, cataloging.ErrInvalidPrice) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Preço deve ser maior que zero", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar item", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(item); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetMenuItem retorna um item do cardápio por ID
func GetMenuItem(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do item não fornecido", nil)
			return
		}

		item, err := service.GetItem(id)
		if err != nil {
			if errors.Is(err, cataloging.ErrItemNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuItemNotFound, "Item do cardápio não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar item", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(item); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ListMenuItems lista os itens do cardápio, opcionalmente por seção
func ListMenuItems(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sectionID *string
		if raw := r.URL.Query().Get("section_id"); raw != "" {
			sectionID = &raw
		}
		onlyActive := r.URL.Query().Get("only_active") == "true"

		items, err := service.ListItems(sectionID, onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar itens", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(items); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// SuggestItemDescription gera uma sugestão de descrição comercial para o
// item usando o serviço de assistência
func SuggestItemDescription(catalog cataloging.Cataloger, assistant assist.AssistIntegrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SuggestItemDescription")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do item não fornecido", nil)
			return
		}

		item, err := catalog.GetItem(id)
		if err != nil {
			if errors.Is(err, cataloging.ErrItemNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuItemNotFound, "Item do cardápio não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar item", nil)
			return
		}

		suggestion, err := assistant.SuggestDescription(item)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar sugestão de descrição", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{
			"item_id":    item.ID,
			"suggestion": suggestion,
		}); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
