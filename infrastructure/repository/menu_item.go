// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/menu-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

const (
	menuItemsTable = "menu_items"
)

type MenuItemRepository interface {
	GetByID(itemID string) (*domain.MenuItem, error)
	ListActiveItems() ([]*domain.MenuItem, error)
	ListItems(sectionID *string, onlyActive bool) ([]*domain.MenuItem, error)
	CreateItem(item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateItem(item *domain.MenuItem) error
	UpdateClassification(itemID string, category domain.Category, confidence float64, analyzedAt time.Time) error
	IncrementPurchaseTotals(itemID string, quantity int, revenue, profit float64) error
	GetCategoryStats() (*domain.MenuItemStats, error)
}

type menuItemRepository struct {
	conn *postgres.Connection
}

func NewMenuItemRepository(conn *postgres.Connection) MenuItemRepository {
	return &menuItemRepository{
		conn: conn,
	}
}

var menuItemColumns = []string{
	"mi.id",
	"mi.section_id",
	"mi.title",
	"mi.description",
	"mi.price",
	"mi.cost",
	"mi.display_order",
	"mi.active",
	"mi.category",
	"mi.confidence",
	"mi.last_analyzed_at",
	"mi.total_purchases",
	"mi.total_revenue",
	"mi.total_profit",
	"mi.created_at",
	"mi.updated_at",
}

func (r *menuItemRepository) GetByID(itemID string) (*domain.MenuItem, error) {
	query, args, err := squirrel.
		Select(menuItemColumns...).
		From(menuItemsTable + " mi").
		Where(squirrel.Eq{"mi.id": itemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	item, err := r.scanMenuItemRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear item do cardápio: %w", err)
	}

	return item, nil
}

func (r *menuItemRepository) ListActiveItems() ([]*domain.MenuItem, error) {
	return r.ListItems(nil, true)
}

func (r *menuItemRepository) ListItems(sectionID *string, onlyActive bool) ([]*domain.MenuItem, error) {
	queryBuilder := squirrel.
		Select(menuItemColumns...).
		From(menuItemsTable + " mi").
		OrderBy("mi.display_order ASC", "mi.title ASC").
		PlaceholderFormat(squirrel.Dollar)

	if sectionID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"mi.section_id": *sectionID})
	}

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"mi.active": true})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item, err := r.scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do cardápio: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func (r *menuItemRepository) CreateItem(item *domain.MenuItem) (*domain.MenuItem, error) {
	query, args, err := squirrel.
		Insert(menuItemsTable).
		Columns("id", "section_id", "title", "description", "price", "cost", "display_order", "active", "category").
		Values(item.ID, item.SectionID, item.Title, item.Description, item.Price, item.Cost, item.DisplayOrder, item.Active, domain.CategoryUnclassified).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir item do cardápio: %w", err)
	}

	item.Category = domain.CategoryUnclassified

	return item, nil
}

func (r *menuItemRepository) UpdateItem(item *domain.MenuItem) error {
	query, args, err := squirrel.
		Update(menuItemsTable).
		Set("section_id", item.SectionID).
		Set("title", item.Title).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("cost", item.Cost).
		Set("display_order", item.DisplayOrder).
		Set("active", item.Active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar item do cardápio: %w", err)
	}

	return nil
}

// UpdateClassification grava a categoria e a confiança propostas por uma
// execução de classificação. Escrita pontual e independente por item.
func (r *menuItemRepository) UpdateClassification(itemID string, category domain.Category, confidence float64, analyzedAt time.Time) error {
	query, args, err := squirrel.
		Update(menuItemsTable).
		Set("category", category).
		Set("confidence", confidence).
		Set("last_analyzed_at", analyzedAt).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": itemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de classificação: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar classificação: %w", err)
	}

	return nil
}

// IncrementPurchaseTotals atualiza os acumulados de vendas do item quando um
// pedido é concluído
func (r *menuItemRepository) IncrementPurchaseTotals(itemID string, quantity int, revenue, profit float64) error {
	query, args, err := squirrel.
		Update(menuItemsTable).
		Set("total_purchases", squirrel.Expr("total_purchases + ?", quantity)).
		Set("total_revenue", squirrel.Expr("total_revenue + ?", revenue)).
		Set("total_profit", squirrel.Expr("total_profit + ?", profit)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": itemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de acumulados: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar acumulados do item: %w", err)
	}

	return nil
}

func (r *menuItemRepository) GetCategoryStats() (*domain.MenuItemStats, error) {
	query, args, err := squirrel.
		Select("mi.category", "COUNT(mi.id)", "COALESCE(SUM(mi.total_revenue), 0)").
		From(menuItemsTable + " mi").
		Where(squirrel.Eq{"mi.active": true}).
		GroupBy("mi.category").
		OrderBy("mi.category ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	stats := &domain.MenuItemStats{
		PerCategory: make([]domain.CategoryStats, 0),
	}

	for rows.Next() {
		var categoryStats domain.CategoryStats
		if err := rows.Scan(&categoryStats.Category, &categoryStats.Count, &categoryStats.TotalRevenue); err != nil {
			return nil, fmt.Errorf("erro ao escanear estatísticas: %w", err)
		}
		stats.PerCategory = append(stats.PerCategory, categoryStats)
		stats.TotalItems += categoryStats.Count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stats, nil
}

func (r *menuItemRepository) scanMenuItem(rows *sql.Rows) (*domain.MenuItem, error) {
	item := &domain.MenuItem{}

	err := rows.Scan(
		&item.ID,
		&item.SectionID,
		&item.Title,
		&item.Description,
		&item.Price,
		&item.Cost,
		&item.DisplayOrder,
		&item.Active,
		&item.Category,
		&item.Confidence,
		&item.LastAnalyzedAt,
		&item.TotalPurchases,
		&item.TotalRevenue,
		&item.TotalProfit,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *menuItemRepository) scanMenuItemRow(row *sql.Row) (*domain.MenuItem, error) {
	item := &domain.MenuItem{}

	err := row.Scan(
		&item.ID,
		&item.SectionID,
		&item.Title,
		&item.Description,
		&item.Price,
		&item.Cost,
		&item.DisplayOrder,
		&item.Active,
		&item.Category,
		&item.Confidence,
		&item.LastAnalyzedAt,
		&item.TotalPurchases,
		&item.TotalRevenue,
		&item.TotalProfit,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
