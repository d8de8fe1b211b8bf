package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// orderRepository keeps orders in the "orders" table and their lines in
// "order_items". An order and its items are always written in one
// transaction.
type orderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOrderRepository constructs a relational [OrderRepository].
func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	log := logger.FromContext(ctx)

	orderQuery, orderArgs, err := r.db.builder.Insert(ordersTable).
		Columns(orderColumns...).
		Values(orderValues(order)...).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error building order query")
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		itemsQuery string
		itemsArgs  []any
	)
	if len(order.Items) > 0 {
		itemsQuery, itemsArgs, err = insertOrderItems(r.db.builder, order.ID, order.Items).ToSql()
		if err != nil {
			log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error building items query")
			return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error beginning transaction")
		return models.Order{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, orderQuery, orderArgs...); err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error inserting order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if itemsQuery != "" {
		if _, err = tx.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
			log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error inserting order items")
			return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error committing transaction")
		return models.Order{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.listOrders(ctx, "*orderRepository.ListOrdersByUser", sq.Eq{"user_id": userID})
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return r.listOrders(ctx, "*orderRepository.ListOrders", nil)
}

// listOrders reads the matching orders and then attaches their items with a
// single IN query.
func (r *orderRepository) listOrders(ctx context.Context, funcName string, where sq.Eq) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	selectOrders := r.db.builder.Select(orderColumns...).
		From(ordersTable).
		OrderBy(newestFirst)
	if where != nil {
		selectOrders = selectOrders.Where(where)
	}

	query, args, err := selectOrders.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying orders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	index := make(map[string]int)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning order")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating orders")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err = r.attachItems(ctx, funcName, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) attachItems(ctx context.Context, funcName string, orders []models.Order, index map[string]int) error {
	log := logger.FromContext(ctx)

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}

	query, args, err := r.db.builder.Select(orderItemColumns...).
		From(orderItemsTable).
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building items query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying order items")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID  string
			position int
			item     models.OrderItem
		)
		if err = rows.Scan(&orderID, &position, &item.ProductID, &item.SKU, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning order item")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating order items")
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Update(ordersTable).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.UpdateOrderStatus").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.UpdateOrderStatus").Msg("error updating order status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
