package classifying

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

// Classifier expõe as operações de classificação para a camada de serving
type Classifier interface {
	// ClassifyItem classifica um único item usando os limiares calculados
	// sobre a população ativa atual
	ClassifyItem(itemID string) (*domain.ClassificationResult, error)

	// ClassifyAll classifica todos os itens ativos em lote, coletando falhas
	// por item sem abortar os demais
	ClassifyAll() (*domain.BulkClassificationResult, error)

	// ItemStats retorna as estatísticas do cardápio agrupadas por categoria
	ItemStats() (*domain.MenuItemStats, error)
}

type Service struct {
	itemRepo repository.MenuItemRepository
}

func NewService(itemRepo repository.MenuItemRepository) Classifier {
	return &Service{
		itemRepo: itemRepo,
	}
}

func (s *Service) ClassifyItem(itemID string) (*domain.ClassificationResult, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar item para classificação")
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	activeItems, err := s.itemRepo.ListActiveItems()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar itens ativos")
	}

	stats, err := ComputeStats(activeItems)
	if err != nil {
		return nil, err
	}

	category, confidence := Classify(item, stats)

	now := time.Now()
	if err := s.itemRepo.UpdateClassification(itemID, category, confidence, now); err != nil {
		return nil, errors.Wrap(err, "erro ao gravar classificação do item")
	}

	logrus.WithFields(logrus.Fields{
		"item_id":    itemID,
		"category":   category,
		"confidence": confidence,
	}).Debug("Item classificado")

	return &domain.ClassificationResult{
		ItemID:           item.ID,
		Title:            item.Title,
		Category:         category,
		Confidence:       confidence,
		SuggestedActions: SuggestActions(category),
	}, nil
}

func (s *Service) ClassifyAll() (*domain.BulkClassificationResult, error) {
	activeItems, err := s.itemRepo.ListActiveItems()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar itens ativos")
	}

	// Os limiares são recalculados a cada execução para acompanhar o
	// cardápio vivo; nada é gravado quando a população está vazia
	stats, err := ComputeStats(activeItems)
	if err != nil {
		return nil, err
	}

	result := &domain.BulkClassificationResult{
		Classified: make([]domain.ClassificationResult, 0, len(activeItems)),
		Failed:     make([]domain.ClassificationFailure, 0),
		Stats:      stats,
	}

	now := time.Now()
	for _, item := range activeItems {
		category, confidence := Classify(item, stats)

		// Escrita por item, confirmada de forma independente: a falha de um
		// item não desfaz os demais
		if err := s.itemRepo.UpdateClassification(item.ID, category, confidence, now); err != nil {
			logrus.WithError(err).WithField("item_id", item.ID).
				Error("Erro ao gravar classificação durante o lote")
			result.Failed = append(result.Failed, domain.ClassificationFailure{
				ItemID: item.ID,
				Error:  err.Error(),
			})
			continue
		}

		result.Classified = append(result.Classified, domain.ClassificationResult{
			ItemID:     item.ID,
			Title:      item.Title,
			Category:   category,
			Confidence: confidence,
		})
	}

	logrus.WithFields(logrus.Fields{
		"classified":         len(result.Classified),
		"failed":             len(result.Failed),
		"purchase_threshold": stats.PurchaseThreshold,
		"margin_threshold":   stats.MarginThreshold,
	}).Info("Classificação em lote concluída")

	return result, nil
}

func (s *Service) ItemStats() (*domain.MenuItemStats, error) {
	stats, err := s.itemRepo.GetCategoryStats()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar estatísticas do cardápio")
	}
	return stats, nil
}
