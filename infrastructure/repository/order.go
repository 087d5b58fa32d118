package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/menu-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

const (
	ordersTable     = "orders"
	orderItemsTable = "order_items"
)

type OrderRepository interface {
	GetByID(orderID string) (*domain.Order, error)
	ListOrders(status *domain.OrderStatus, limit int) ([]*domain.Order, error)
	CreateOrder(order *domain.Order) (*domain.Order, error)
	UpdateStatus(orderID string, status domain.OrderStatus) error
	GetOrderStats() (*domain.OrderStats, error)

	// ListCompletedOrderRecords retorna os pedidos concluídos como
	// multiconjuntos de itens, a visão mínima consumida pela análise de
	// co-compra. Pedidos pendentes e cancelados são excluídos.
	ListCompletedOrderRecords() ([]*domain.OrderRecord, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) GetByID(orderID string) (*domain.Order, error) {
	query, args, err := squirrel.
		Select("o.id", "o.reference", "o.status", "o.table_number", "o.notes", "o.subtotal", "o.total", "o.created_at", "o.updated_at").
		From(ordersTable + " o").
		Where(squirrel.Eq{"o.id": orderID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	order := &domain.Order{}
	err = r.conn.QueryRow(query, args...).Scan(
		&order.ID,
		&order.Reference,
		&order.Status,
		&order.TableNumber,
		&order.Notes,
		&order.Subtotal,
		&order.Total,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
	}

	items, err := r.listOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) ListOrders(status *domain.OrderStatus, limit int) ([]*domain.Order, error) {
	queryBuilder := squirrel.
		Select("o.id", "o.reference", "o.status", "o.table_number", "o.notes", "o.subtotal", "o.total", "o.created_at", "o.updated_at").
		From(ordersTable + " o").
		OrderBy("o.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"o.status": *status})
	}

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.Reference,
			&order.Status,
			&order.TableNumber,
			&order.Notes,
			&order.Subtotal,
			&order.Total,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

// CreateOrder insere o pedido e suas linhas em uma única transação
func (r *orderRepository) CreateOrder(order *domain.Order) (*domain.Order, error) {
	err := r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		orderSQL, orderArgs, err := squirrel.
			Insert(ordersTable).
			Columns("id", "reference", "status", "table_number", "notes", "subtotal", "total").
			Values(order.ID, order.Reference, order.Status, order.TableNumber, order.Notes, order.Subtotal, order.Total).
			Suffix("RETURNING created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção do pedido: %w", err)
		}

		if err := tx.QueryRow(orderSQL, orderArgs...).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
			return fmt.Errorf("erro ao inserir pedido: %w", err)
		}

		if len(order.Items) == 0 {
			return nil
		}

		itemsBuilder := squirrel.
			Insert(orderItemsTable).
			Columns("id", "order_id", "menu_item_id", "quantity", "price_at_order").
			PlaceholderFormat(squirrel.Dollar)

		for _, item := range order.Items {
			itemsBuilder = itemsBuilder.Values(item.ID, order.ID, item.MenuItemID, item.Quantity, item.PriceAtOrder)
		}

		itemsSQL, itemsArgs, err := itemsBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção das linhas: %w", err)
		}

		if _, err := tx.Exec(itemsSQL, itemsArgs...); err != nil {
			return fmt.Errorf("erro ao inserir linhas do pedido: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) UpdateStatus(orderID string, status domain.OrderStatus) error {
	query, args, err := squirrel.
		Update(ordersTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": orderID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do pedido: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderStats() (*domain.OrderStats, error) {
	stats := &domain.OrderStats{
		ByStatus: make([]domain.OrderStatusCount, 0),
	}

	today := time.Now().Format("2006-01-02")
	err := r.conn.QueryRow(
		"SELECT COUNT(id), COALESCE(SUM(total), 0) FROM orders WHERE created_at::date = $1",
		today,
	).Scan(&stats.TodayCount, &stats.TodayRevenue)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar estatísticas do dia: %w", err)
	}

	rows, err := r.conn.Query("SELECT status, COUNT(id) FROM orders GROUP BY status ORDER BY status ASC")
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contagem por status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var statusCount domain.OrderStatusCount
		if err := rows.Scan(&statusCount.Status, &statusCount.Count); err != nil {
			return nil, fmt.Errorf("erro ao escanear contagem por status: %w", err)
		}
		stats.ByStatus = append(stats.ByStatus, statusCount)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	err = r.conn.QueryRow("SELECT COALESCE(AVG(total), 0) FROM orders").Scan(&stats.AverageOrderValue)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ticket médio: %w", err)
	}

	return stats, nil
}

func (r *orderRepository) ListCompletedOrderRecords() ([]*domain.OrderRecord, error) {
	query, args, err := squirrel.
		Select("o.id", "o.created_at", "oi.menu_item_id", "oi.quantity").
		From(ordersTable + " o").
		Join(orderItemsTable + " oi ON oi.order_id = o.id").
		Where(squirrel.Eq{"o.status": domain.CompletedOrderStatuses}).
		OrderBy("o.created_at ASC").
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

	recordsByOrder := make(map[string]*domain.OrderRecord)
	orderIDs := make([]string, 0)

	for rows.Next() {
		var (
			orderID   string
			orderedAt time.Time
			itemID    string
			quantity  int
		)
		if err := rows.Scan(&orderID, &orderedAt, &itemID, &quantity); err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de pedido: %w", err)
		}

		record, ok := recordsByOrder[orderID]
		if !ok {
			record = &domain.OrderRecord{
				OrderedAt: orderedAt,
				Items:     make(map[string]int),
			}
			recordsByOrder[orderID] = record
			orderIDs = append(orderIDs, orderID)
		}
		record.Items[itemID] += quantity
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	records := make([]*domain.OrderRecord, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		records = append(records, recordsByOrder[orderID])
	}

	return records, nil
}

func (r *orderRepository) listOrderItems(orderID string) ([]domain.OrderItem, error) {
	query, args, err := squirrel.
		Select("oi.id", "oi.order_id", "oi.menu_item_id", "oi.quantity", "oi.price_at_order").
		From(orderItemsTable + " oi").
		Where(squirrel.Eq{"oi.order_id": orderID}).
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

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.PriceAtOrder); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha do pedido: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}
