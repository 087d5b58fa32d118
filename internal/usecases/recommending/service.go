package recommending

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/pkg/cache"
)

const (
	affinityCacheKey  = "recommendation:affinity"
	fbtCacheKeyPrefix = "recommendation:fbt:"

	// maxCachedAssociations limita o tamanho da lista pré-computada por item
	maxCachedAssociations = 20

	defaultLimit = 5
)

// Recommender expõe as operações de recomendação para a camada de serving
type Recommender interface {
	// FrequentlyBoughtWith retorna os itens mais pedidos junto com o item
	FrequentlyBoughtWith(itemID string, limit int) ([]domain.ItemAssociation, error)

	// Recommend ranqueia candidatos para o carrinho informado sob a
	// estratégia escolhida
	Recommend(cartItemIDs []string, strategy string, limit int) ([]domain.RecommendationCandidate, error)

	// RebuildAffinity força a reconstrução da estrutura de afinidade a
	// partir do histórico de pedidos concluídos
	RebuildAffinity() (*domain.AffinityMap, error)
}

type Service struct {
	itemRepo    repository.MenuItemRepository
	orderRepo   repository.OrderRepository
	resultCache *cache.Cache
	affinityTTL time.Duration
	fbtTTL      time.Duration
}

func NewService(
	itemRepo repository.MenuItemRepository,
	orderRepo repository.OrderRepository,
	resultCache *cache.Cache,
	cfg *config.Config,
) Recommender {
	return &Service{
		itemRepo:    itemRepo,
		orderRepo:   orderRepo,
		resultCache: resultCache,
		affinityTTL: time.Duration(cfg.Recommendation.AffinityTTLMinutes) * time.Minute,
		fbtTTL:      time.Duration(cfg.Recommendation.FrequentlyBoughtTTLMinutes) * time.Minute,
	}
}

func (s *Service) FrequentlyBoughtWith(itemID string, limit int) ([]domain.ItemAssociation, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, ErrInvalidItemID
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxCachedAssociations {
		limit = maxCachedAssociations
	}

	cacheKey := fmt.Sprintf("%s%s", fbtCacheKeyPrefix, itemID)
	cached, err := s.resultCache.GetOrCompute(cacheKey, s.fbtTTL, func() (any, error) {
		affinity, err := s.getAffinity()
		if err != nil {
			return nil, err
		}
		return FrequentlyBoughtWith(affinity, itemID, maxCachedAssociations), nil
	})
	if err != nil {
		return nil, err
	}

	associations := cached.([]domain.ItemAssociation)
	if limit < len(associations) {
		associations = associations[:limit]
	}

	return associations, nil
}

func (s *Service) Recommend(cartItemIDs []string, strategy string, limit int) ([]domain.RecommendationCandidate, error) {
	parsed, ok := domain.ParseStrategy(strategy)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStrategy, "estratégia %q", strategy)
	}

	for _, id := range cartItemIDs {
		if strings.TrimSpace(id) == "" {
			return nil, ErrInvalidItemID
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	pool, err := s.itemRepo.ListActiveItems()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar itens ativos para recomendação")
	}

	affinity, err := s.getAffinity()
	if err != nil {
		return nil, err
	}

	return Recommend(cartItemIDs, pool, affinity, parsed, limit)
}

func (s *Service) RebuildAffinity() (*domain.AffinityMap, error) {
	affinity, err := s.buildAffinity()
	if err != nil {
		return nil, err
	}

	s.resultCache.Set(affinityCacheKey, affinity, s.affinityTTL)

	logrus.WithFields(logrus.Fields{
		"total_orders":            affinity.TotalOrders,
		"items_with_associations": len(affinity.Associations),
	}).Info("Estrutura de afinidade reconstruída")

	return affinity, nil
}

// getAffinity retorna a estrutura de afinidade do cache, recomputando sob
// proteção single-flight quando expirada
func (s *Service) getAffinity() (*domain.AffinityMap, error) {
	cached, err := s.resultCache.GetOrCompute(affinityCacheKey, s.affinityTTL, func() (any, error) {
		return s.buildAffinity()
	})
	if err != nil {
		return nil, err
	}
	return cached.(*domain.AffinityMap), nil
}

func (s *Service) buildAffinity() (*domain.AffinityMap, error) {
	orders, err := s.orderRepo.ListCompletedOrderRecords()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar pedidos concluídos")
	}
	return BuildAffinity(orders), nil
}
