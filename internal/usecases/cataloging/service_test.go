package cataloging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

func TestService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSectionRepo := mocks.NewMockMenuSectionRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)

	service := NewService(mockSectionRepo, mockItemRepo)

	t.Run("Título vazio é rejeitado", func(t *testing.T) {
		item, err := service.CreateItem(&domain.MenuItem{Price: 10.0})

		assert.ErrorIs(t, err, ErrMissingTitle)
		assert.Nil(t, item)
	})

	t.Run("Preço zero é rejeitado", func(t *testing.T) {
		item, err := service.CreateItem(&domain.MenuItem{Title: "Pudim", Price: 0})

		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Nil(t, item)
	})

	t.Run("Seção inexistente é rejeitada", func(t *testing.T) {
		mockSectionRepo.EXPECT().GetByID("nope").Return(nil, nil)

		item, err := service.CreateItem(&domain.MenuItem{
			Title:     "Pudim",
			Price:     18.0,
			SectionID: "nope",
		})

		assert.ErrorIs(t, err, ErrSectionNotFound)
		assert.Nil(t, item)
	})

	t.Run("Item novo entra ativo e sem classificação", func(t *testing.T) {
		mockSectionRepo.EXPECT().GetByID("sec-1").Return(&domain.MenuSection{ID: "sec-1"}, nil)
		mockItemRepo.EXPECT().
			CreateItem(gomock.Any()).
			DoAndReturn(func(item *domain.MenuItem) (*domain.MenuItem, error) {
				return item, nil
			})

		confidence := 0.9
		item, err := service.CreateItem(&domain.MenuItem{
			Title:      "Pudim",
			Price:      18.0,
			SectionID:  "sec-1",
			Category:   domain.CategoryStar,
			Confidence: &confidence,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.True(t, item.Active)
		assert.Equal(t, domain.CategoryUnclassified, item.Category)
		assert.Nil(t, item.Confidence)
		assert.Nil(t, item.LastAnalyzedAt)
	})
}

func TestService_UpdateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSectionRepo := mocks.NewMockMenuSectionRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)

	service := NewService(mockSectionRepo, mockItemRepo)

	t.Run("Item inexistente retorna erro de não encontrado", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("nope").Return(nil, nil)

		item, err := service.UpdateItem(&domain.UpdateMenuItemRequest{ID: "nope"})

		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.Nil(t, item)
	})

	t.Run("Aplica apenas os campos informados", func(t *testing.T) {
		existing := &domain.MenuItem{
			ID:          "item-1",
			SectionID:   "sec-1",
			Title:       "Pudim",
			Description: "Receita da casa",
			Price:       18.0,
		}

		mockItemRepo.EXPECT().GetByID("item-1").Return(existing, nil)
		mockItemRepo.EXPECT().UpdateItem(gomock.Any()).Return(nil)

		item, err := service.UpdateItem(&domain.UpdateMenuItemRequest{
			ID:    "item-1",
			Price: floatPtr(22.0),
			Cost:  floatPtr(6.0),
		})

		assert.NoError(t, err)
		assert.Equal(t, 22.0, item.Price)
		assert.Equal(t, 6.0, *item.Cost)
		// Campos não informados permanecem intactos
		assert.Equal(t, "Pudim", item.Title)
		assert.Equal(t, "Receita da casa", item.Description)
	})

	t.Run("Preço inválido na atualização é rejeitado", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("item-1").Return(&domain.MenuItem{ID: "item-1", Price: 18.0}, nil)

		item, err := service.UpdateItem(&domain.UpdateMenuItemRequest{
			ID:    "item-1",
			Price: floatPtr(-5.0),
		})

		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Nil(t, item)
	})

	t.Run("Mudança de seção valida a seção de destino", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("item-1").Return(&domain.MenuItem{ID: "item-1", Price: 18.0}, nil)
		mockSectionRepo.EXPECT().GetByID("sec-2").Return(nil, nil)

		item, err := service.UpdateItem(&domain.UpdateMenuItemRequest{
			ID:        "item-1",
			SectionID: strPtr("sec-2"),
		})

		assert.ErrorIs(t, err, ErrSectionNotFound)
		assert.Nil(t, item)
	})

	t.Run("Desativação preserva os demais campos", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("item-1").Return(&domain.MenuItem{
			ID:     "item-1",
			Title:  "Pudim",
			Price:  18.0,
			Active: true,
		}, nil)
		mockItemRepo.EXPECT().UpdateItem(gomock.Any()).Return(nil)

		item, err := service.UpdateItem(&domain.UpdateMenuItemRequest{
			ID:     "item-1",
			Active: boolPtr(false),
		})

		assert.NoError(t, err)
		assert.False(t, item.Active)
		assert.Equal(t, "Pudim", item.Title)
	})
}

func TestService_GetPublicMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSectionRepo := mocks.NewMockMenuSectionRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)

	service := NewService(mockSectionRepo, mockItemRepo)

	sections := []*domain.MenuSection{
		{ID: "sec-1", Name: "Entradas", Active: true},
		{ID: "sec-2", Name: "Sobremesas", Active: true},
	}

	mockSectionRepo.EXPECT().ListSections(true).Return(sections, nil)
	mockItemRepo.EXPECT().ListItems(strPtr("sec-1"), true).Return([]*domain.MenuItem{
		{ID: "item-1", SectionID: "sec-1", Title: "Bruschetta", Price: 24.9, Active: true},
	}, nil)
	mockItemRepo.EXPECT().ListItems(strPtr("sec-2"), true).Return([]*domain.MenuItem{}, nil)

	menu, err := service.GetPublicMenu()

	assert.NoError(t, err)
	assert.Len(t, menu, 2)
	assert.Equal(t, "Entradas", menu[0].Name)
	assert.Len(t, menu[0].Items, 1)
	assert.Equal(t, "Bruschetta", menu[0].Items[0].Title)
	assert.Empty(t, menu[1].Items)
}
