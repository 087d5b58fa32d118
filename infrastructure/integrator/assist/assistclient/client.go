package assistclient

import (
	"net/http"
	"time"

	"github.com/vfg2006/menu-engine-api/internal/config"
)

type Client interface {
	Complete(params CompletionParams) (CompletionResponse, error)
}

type AssistClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &AssistClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
