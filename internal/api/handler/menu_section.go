package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/usecases/cataloging"
	"github.com/vfg2006/menu-engine-api/pkg/apiErrors"
)

// CreateMenuSection cria uma nova seção do cardápio
func CreateMenuSection(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateMenuSection")

		var section *domain.MenuSection
		if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if section.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da seção é obrigatório", nil)
			return
		}

		section, err := service.CreateSection(section)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar seção", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(section); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UpdateMenuSection atualiza uma seção existente do cardápio
func UpdateMenuSection(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateMenuSection")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da seção não fornecido", nil)
			return
		}

		var section *domain.MenuSection
		if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		section.ID = id

		if err := service.UpdateSection(section); err != nil {
			logrus.Error(err)

			if errors.Is(err, cataloging.ErrSectionNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrMenuSectionNotFound, "Seção do cardápio não encontrada", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar seção", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// ListMenuSections lista as seções do cardápio
func ListMenuSections(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("only_active") == "true"

		sections, err := service.ListSections(onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar seções", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sections); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetPublicMenu retorna o cardápio visível para o cliente final, somente
// com as seções e itens ativos
func GetPublicMenu(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menu, err := service.GetPublicMenu()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar cardápio", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(menu); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
