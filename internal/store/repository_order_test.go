package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/models"
)

var (
	orderRowColumns     = []string{"id", "user_id", "user_name", "total", "status", "payment_method", "channel", "created_at"}
	orderItemRowColumns = []string{"order_id", "position", "product_id", "sku", "name", "quantity", "unit_price"}
)

func newTestOrderRepo(t *testing.T) (*orderRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &orderRepository{db: db, logger: db.logger}, mock
}

func sampleOrder() models.Order {
	return models.Order{
		ID:     "o-1",
		UserID: "u-1",
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Vestido", Quantity: 2, UnitPrice: 50},
			{ProductID: "p2", SKU: "BL-01", Name: "Blusa", Quantity: 1, UnitPrice: 30},
		},
		Total:         130,
		Status:        models.OrderPending,
		PaymentMethod: models.PaymentPix,
		Channel:       "web",
		CreatedAt:     time.Now(),
	}
}

func TestCreateOrder_WritesOrderAndItemsInTransaction(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders (id,user_id,user_name,total,status,payment_method,channel,created_at)")).
		WithArgs("o-1", "u-1", "", 130.0, "pending", "pix", "web", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items (order_id,position,product_id,sku,name,quantity,unit_price) VALUES ($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)")).
		WithArgs("o-1", 0, "p1", "", "Vestido", 2, 50.0, "o-1", 1, "p2", "BL-01", "Blusa", 1, 30.0).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	created, err := repo.CreateOrder(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, "o-1", created.ID)
	assert.Len(t, created.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_AnonymousStoresNullUser(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	order := sampleOrder()
	order.UserID = ""
	order.Items = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs("o-1", nil, "", 130.0, "pending", "pix", "web", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.NotNil(t, created.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_ItemsFailureRollsBack(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	_, err := repo.CreateOrder(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_BeginFails(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	_, err := repo.CreateOrder(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestListOrdersByUser_AttachesItems(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow("o-2", "u-1", "", 30.0, "shipped", "card", "web", now).
			AddRow("o-1", "u-1", "", 100.0, "pending", "pix", "whatsapp", now.Add(-time.Hour)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id IN ($1,$2) ORDER BY order_id, position")).
		WithArgs("o-2", "o-1").
		WillReturnRows(sqlmock.NewRows(orderItemRowColumns).
			AddRow("o-1", 0, "p1", "", "Vestido", 2, 50.0).
			AddRow("o-2", 0, "p2", "", "Blusa", 1, 30.0))

	orders, err := repo.ListOrdersByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o-2", orders[0].ID)
	assert.Equal(t, models.OrderShipped, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "p2", orders[0].Items[0].ProductID)
	require.Len(t, orders[1].Items, 1)
	assert.Equal(t, 2, orders[1].Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_EmptySkipsItemsQuery(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, user_name, total, status, payment_method, channel, created_at FROM orders ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	orders, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_AnonymousOrderHasEmptyUserID(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectQuery("FROM orders ORDER BY").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow("o-1", nil, "Visitante", 10.0, "pending", "boleto", "web", time.Now()))
	mock.ExpectQuery("FROM order_items").
		WillReturnRows(sqlmock.NewRows(orderItemRowColumns))

	orders, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].UserID)
	assert.Equal(t, []models.OrderItem{}, orders[0].Items)
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestOrderRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE id = $2")).
			WithArgs("confirmed", "o-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateOrderStatus(context.Background(), "o-1", models.OrderConfirmed))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestOrderRepo(t)

		mock.ExpectExec("UPDATE orders").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateOrderStatus(context.Background(), "nope", models.OrderConfirmed)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
