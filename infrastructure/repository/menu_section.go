package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/menu-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

const (
	menuSectionsTable = "menu_sections"
)

type MenuSectionRepository interface {
	GetByID(sectionID string) (*domain.MenuSection, error)
	ListSections(onlyActive bool) ([]*domain.MenuSection, error)
	CreateSection(section *domain.MenuSection) (*domain.MenuSection, error)
	UpdateSection(section *domain.MenuSection) error
}

type menuSectionRepository struct {
	conn *postgres.Connection
}

func NewMenuSectionRepository(conn *postgres.Connection) MenuSectionRepository {
	return &menuSectionRepository{
		conn: conn,
	}
}

func (r *menuSectionRepository) GetByID(sectionID string) (*domain.MenuSection, error) {
	query, args, err := squirrel.
		Select("ms.id", "ms.name", "ms.description", "ms.display_order", "ms.active", "ms.created_at", "ms.updated_at").
		From(menuSectionsTable + " ms").
		Where(squirrel.Eq{"ms.id": sectionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	section := &domain.MenuSection{}
	err = r.conn.QueryRow(query, args...).Scan(
		&section.ID,
		&section.Name,
		&section.Description,
		&section.DisplayOrder,
		&section.Active,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear seção do cardápio: %w", err)
	}

	return section, nil
}

func (r *menuSectionRepository) ListSections(onlyActive bool) ([]*domain.MenuSection, error) {
	queryBuilder := squirrel.
		Select("ms.id", "ms.name", "ms.description", "ms.display_order", "ms.active", "ms.created_at", "ms.updated_at").
		From(menuSectionsTable + " ms").
		OrderBy("ms.display_order ASC", "ms.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ms.active": true})
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

	sections := make([]*domain.MenuSection, 0)
	for rows.Next() {
		section := &domain.MenuSection{}
		err := rows.Scan(
			&section.ID,
			&section.Name,
			&section.Description,
			&section.DisplayOrder,
			&section.Active,
			&section.CreatedAt,
			&section.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear seção do cardápio: %w", err)
		}
		sections = append(sections, section)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sections, nil
}

func (r *menuSectionRepository) CreateSection(section *domain.MenuSection) (*domain.MenuSection, error) {
	query, args, err := squirrel.
		Insert(menuSectionsTable).
		Columns("id", "name", "description", "display_order", "active").
		Values(section.ID, section.Name, section.Description, section.DisplayOrder, section.Active).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir seção do cardápio: %w", err)
	}

	return section, nil
}

func (r *menuSectionRepository) UpdateSection(section *domain.MenuSection) error {
	query, args, err := squirrel.
		Update(menuSectionsTable).
		Set("name", section.Name).
		Set("description", section.Description).
		Set("display_order", section.DisplayOrder).
		Set("active", section.Active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": section.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar seção do cardápio: %w", err)
	}

	return nil
}
