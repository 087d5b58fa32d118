package handler

import (
	"net/http"

	"github.com/vfg2006/menu-engine-api/infrastructure/integrator/assist"
	"github.com/vfg2006/menu-engine-api/internal/api/handler/router"
	"github.com/vfg2006/menu-engine-api/internal/usecases/authenticating"
	"github.com/vfg2006/menu-engine-api/internal/usecases/cataloging"
	"github.com/vfg2006/menu-engine-api/internal/usecases/classifying"
	"github.com/vfg2006/menu-engine-api/internal/usecases/ordering"
	"github.com/vfg2006/menu-engine-api/internal/usecases/recommending"
	"github.com/vfg2006/menu-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/menu-engine-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Menu retorna as rotas de gestão do cardápio e a rota pública de consulta
func Menu(catalog cataloging.Cataloger, assistant assist.AssistIntegrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/menu",
			Method:  http.MethodGet,
			Handler: GetPublicMenu(catalog),
		},
		{
			Path:        "/v1/sections",
			Method:      http.MethodGet,
			Handler:     ListMenuSections(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sections",
			Method:      http.MethodPost,
			Handler:     CreateMenuSection(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/sections/:id",
			Method:      http.MethodPut,
			Handler:     UpdateMenuSection(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/items",
			Method:      http.MethodGet,
			Handler:     ListMenuItems(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/items",
			Method:      http.MethodPost,
			Handler:     CreateMenuItem(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/items/:id",
			Method:      http.MethodGet,
			Handler:     GetMenuItem(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/items/:id",
			Method:      http.MethodPut,
			Handler:     UpdateMenuItem(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/items/:id/suggest-description",
			Method:      http.MethodPost,
			Handler:     SuggestItemDescription(catalog, assistant),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

// Orders retorna as rotas do fluxo de pedidos. A criação de pedido é
// pública por ser a superfície do cliente final
func Orders(service ordering.Orderer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/orders",
			Method:  http.MethodPost,
			Handler: CreateOrder(service),
		},
		{
			Path:        "/v1/orders",
			Method:      http.MethodGet,
			Handler:     ListOrders(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/stats/orders",
			Method:      http.MethodGet,
			Handler:     GetOrderStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodGet,
			Handler:     GetOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateOrderStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Activities retorna as rotas de rastreamento de navegação dos clientes
func Activities(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/activities",
			Method:  http.MethodPost,
			Handler: RecordActivity(service),
		},
		{
			Path:        "/v1/activities",
			Method:      http.MethodGet,
			Handler:     ListActivities(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/stats/activities",
			Method:      http.MethodGet,
			Handler:     GetActivityStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

// Classification retorna as rotas de análise de desempenho do cardápio
func Classification(service classifying.Classifier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/items/:id/classify",
			Method:      http.MethodPost,
			Handler:     ClassifyItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/menu/classify",
			Method:      http.MethodPost,
			Handler:     ClassifyAllItems(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/stats/menu",
			Method:      http.MethodGet,
			Handler:     GetMenuStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Recommendations retorna as rotas de recomendação. Ambas são públicas
// por serem consumidas pelo cardápio digital do cliente
func Recommendations(service recommending.Recommender) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/recommendations",
			Method:  http.MethodPost,
			Handler: GetRecommendations(service),
		},
		{
			Path:    "/v1/items/:id/frequently-bought-with",
			Method:  http.MethodGet,
			Handler: GetFrequentlyBoughtWith(service),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
