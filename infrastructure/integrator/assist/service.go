// Package assist integra com o serviço externo de geração de texto usado
// para sugerir descrições de itens e explicar resultados de análise.
package assist

import (
	"fmt"
	"strings"

	"github.com/vfg2006/menu-engine-api/infrastructure/integrator/assist/assistclient"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

type AssistIntegrator interface {
	SuggestDescription(item *domain.MenuItem) (string, error)
	ExplainClassification(item *domain.MenuItem, result *domain.ClassificationResult) (string, error)
}

type AssistService struct {
	cfg    *config.Config
	Client assistclient.Client
}

func New(cfg *config.Config, client assistclient.Client) AssistIntegrator {
	return &AssistService{
		cfg:    cfg,
		Client: client,
	}
}

// SuggestDescription gera uma descrição comercial curta para o item
func (s *AssistService) SuggestDescription(item *domain.MenuItem) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva uma descrição de cardápio apetitosa, com no máximo duas frases, para o prato %q. Preço: R$ %.2f.",
		item.Title, item.Price,
	)

	resp, err := s.Client.Complete(assistclient.CompletionParams{
		Prompt:    prompt,
		MaxTokens: 120,
		Model:     s.cfg.Assist.Model,
		Language:  "pt-BR",
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}

// ExplainClassification gera uma explicação em linguagem natural do resultado
// da classificação, incluindo as ações sugeridas
func (s *AssistService) ExplainClassification(item *domain.MenuItem, result *domain.ClassificationResult) (string, error) {
	prompt := fmt.Sprintf(
		"O prato %q foi classificado como %q com confiança %.2f. Ações sugeridas: %s. Explique em um parágrafo, para o dono do restaurante, o que isso significa e o que fazer.",
		item.Title, result.Category, result.Confidence, strings.Join(result.SuggestedActions, "; "),
	)

	resp, err := s.Client.Complete(assistclient.CompletionParams{
		Prompt:    prompt,
		MaxTokens: 300,
		Model:     s.cfg.Assist.Model,
		Language:  "pt-BR",
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}
