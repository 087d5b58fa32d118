package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/menu-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

const customerActivitiesTable = "customer_activities"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ActivityFilter struct {
	SessionID  *string
	EventType  *domain.ActivityEventType
	MenuItemID *string
	Since      *time.Time
	Limit      int
}

type CustomerActivityRepository interface {
	Create(activity *domain.CustomerActivity) (*domain.CustomerActivity, error)
	List(filter ActivityFilter) ([]*domain.CustomerActivity, error)
	GetStats(mostViewedLimit int) (*domain.ActivityStats, error)
}

type customerActivityRepository struct {
	conn *postgres.Connection
}

func NewCustomerActivityRepository(conn *postgres.Connection) CustomerActivityRepository {
	return &customerActivityRepository{
		conn: conn,
	}
}

func (r *customerActivityRepository) Create(activity *domain.CustomerActivity) (*domain.CustomerActivity, error) {
	metadata, err := json.Marshal(activity.Metadata)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar metadados do evento: %w", err)
	}

	query, args, err := squirrel.
		Insert(customerActivitiesTable).
		Columns("id", "session_id", "event_type", "menu_item_id", "metadata").
		Values(activity.ID, activity.SessionID, activity.EventType, activity.MenuItemID, metadata).
		Suffix("RETURNING timestamp").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&activity.Timestamp); err != nil {
		return nil, fmt.Errorf("erro ao inserir evento de atividade: %w", err)
	}

	return activity, nil
}

func (r *customerActivityRepository) List(filter ActivityFilter) ([]*domain.CustomerActivity, error) {
	queryBuilder := squirrel.
		Select("id", "session_id", "event_type", "menu_item_id", "metadata", "timestamp").
		From(customerActivitiesTable).
		OrderBy("timestamp DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.SessionID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"session_id": *filter.SessionID})
	}

	if filter.EventType != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"event_type": *filter.EventType})
	}

	if filter.MenuItemID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"menu_item_id": *filter.MenuItemID})
	}

	if filter.Since != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"timestamp": *filter.Since})
	}

	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(filter.Limit))
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

	activities := make([]*domain.CustomerActivity, 0)
	for rows.Next() {
		activity := &domain.CustomerActivity{}
		var metadata []byte

		err := rows.Scan(
			&activity.ID,
			&activity.SessionID,
			&activity.EventType,
			&activity.MenuItemID,
			&metadata,
			&activity.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear evento de atividade: %w", err)
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &activity.Metadata); err != nil {
				return nil, fmt.Errorf("erro ao desserializar metadados do evento: %w", err)
			}
		}

		activities = append(activities, activity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return activities, nil
}

func (r *customerActivityRepository) GetStats(mostViewedLimit int) (*domain.ActivityStats, error) {
	stats := &domain.ActivityStats{
		ByEventType: make([]domain.ActivityEventCount, 0),
		MostViewed:  make([]domain.ItemViewCount, 0),
	}

	rows, err := r.conn.Query(
		"SELECT event_type, COUNT(id) FROM customer_activities GROUP BY event_type ORDER BY event_type ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contagem por tipo de evento: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventCount domain.ActivityEventCount
		if err := rows.Scan(&eventCount.EventType, &eventCount.Count); err != nil {
			return nil, fmt.Errorf("erro ao escanear contagem por tipo de evento: %w", err)
		}
		stats.ByEventType = append(stats.ByEventType, eventCount)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	query, args, err := squirrel.
		Select("ca.menu_item_id", "mi.title", "COUNT(ca.id) AS views").
		From(customerActivitiesTable + " ca").
		Join(menuItemsTable + " mi ON mi.id = ca.menu_item_id").
		Where(squirrel.Eq{"ca.event_type": domain.EventView}).
		GroupBy("ca.menu_item_id", "mi.title").
		OrderBy("views DESC", "mi.title ASC").
		Limit(uint64(mostViewedLimit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	viewRows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens mais visualizados: %w", err)
	}
	defer viewRows.Close()

	for viewRows.Next() {
		var viewCount domain.ItemViewCount
		if err := viewRows.Scan(&viewCount.MenuItemID, &viewCount.Title, &viewCount.Views); err != nil {
			return nil, fmt.Errorf("erro ao escanear item visualizado: %w", err)
		}
		stats.MostViewed = append(stats.MostViewed, viewCount)
	}

	if err = viewRows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stats, nil
}
