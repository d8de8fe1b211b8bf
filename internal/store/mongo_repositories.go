package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// mongoUserRepository implements [UserRepository] on the "users" collection.
// Uniqueness of e-mails is enforced by the index from
// [MongoDB.EnsureIndexes].
type mongoUserRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

// NewMongoUserRepository constructs a document-backed [UserRepository].
func NewMongoUserRepository(db *MongoDB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{coll: db.collection(usersTable), logger: logger}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("error inserting user")
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return user, nil
}

func (r *mongoUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*mongoUserRepository.FindUserByEmail", bson.D{{Key: "email", Value: email}})
}

func (r *mongoUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, "*mongoUserRepository.FindUserByID", bson.D{{Key: "_id", Value: id}})
}

func (r *mongoUserRepository) findUser(ctx context.Context, funcName string, filter bson.D) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return user, nil
}

func (r *mongoUserRepository) SetUserRole(ctx context.Context, id string, role models.Role) error {
	log := logger.FromContext(ctx)

	result, err := r.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}})
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.SetUserRole").Msg("error updating role")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// mongoProductRepository implements [ProductRepository] on the "products"
// collection.
type mongoProductRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

// NewMongoProductRepository constructs a document-backed [ProductRepository].
func NewMongoProductRepository(db *MongoDB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating mongo product repository")
	return &mongoProductRepository{coll: db.collection(productsTable), logger: logger}
}

func productFilterDocument(filter models.ProductFilter) bson.D {
	doc := bson.D{}
	if filter.Category != nil {
		doc = append(doc, bson.E{Key: "category", Value: *filter.Category})
	}
	if filter.Featured != nil {
		doc = append(doc, bson.E{Key: "featured", Value: *filter.Featured})
	}
	if filter.Available != nil {
		doc = append(doc, bson.E{Key: "available", Value: *filter.Available})
	}
	return doc
}

func (r *mongoProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	cursor, err := r.coll.Find(ctx, productFilterDocument(filter), newestFirstOpts())
	if err != nil {
		log.Err(err).Str("func", "*mongoProductRepository.ListProducts").Msg("error finding products")
		return nil, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		log.Err(err).Str("func", "*mongoProductRepository.ListProducts").Msg("error decoding products")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	for i := range products {
		normalizeProduct(&products[i])
	}
	return products, nil
}

func (r *mongoProductRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	log := logger.FromContext(ctx)

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrProductNotFound
		}
		log.Err(err).Str("func", "*mongoProductRepository.GetProduct").Msg("error finding product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	normalizeProduct(&product)
	return product, nil
}

func (r *mongoProductRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	normalizeProduct(&product)
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		log.Err(err).Str("func", "*mongoProductRepository.CreateProduct").Msg("error inserting product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return product, nil
}

func (r *mongoProductRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	normalizeProduct(&product)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: product.Name},
		{Key: "description", Value: product.Description},
		{Key: "wholesale_price", Value: product.WholesalePrice},
		{Key: "retail_price", Value: product.RetailPrice},
		{Key: "category", Value: product.Category},
		{Key: "images", Value: product.Images},
		{Key: "stock", Value: product.Stock},
		{Key: "available", Value: product.Available},
		{Key: "featured", Value: product.Featured},
	}}}

	var updated models.Product
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: product.ID}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrProductNotFound
		}
		log.Err(err).Str("func", "*mongoProductRepository.UpdateProduct").Msg("error updating product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	normalizeProduct(&updated)
	return updated, nil
}

func (r *mongoProductRepository) DeleteProduct(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Err(err).Str("func", "*mongoProductRepository.DeleteProduct").Msg("error deleting product")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

func normalizeProduct(p *models.Product) {
	if p.Images == nil {
		p.Images = []string{}
	}
}

// mongoOrderRepository implements [OrderRepository] on the "orders"
// collection. Items are embedded in the order document, so a single insert
// is atomic.
type mongoOrderRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

// NewMongoOrderRepository constructs a document-backed [OrderRepository].
func NewMongoOrderRepository(db *MongoDB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating mongo order repository")
	return &mongoOrderRepository{coll: db.collection(ordersTable), logger: logger}
}

func (r *mongoOrderRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	log := logger.FromContext(ctx)

	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.CreateOrder").Msg("error inserting order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return order, nil
}

func (r *mongoOrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, "*mongoOrderRepository.ListOrdersByUser", bson.D{{Key: "user_id", Value: userID}})
}

func (r *mongoOrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, "*mongoOrderRepository.ListOrders", bson.D{})
}

func (r *mongoOrderRepository) find(ctx context.Context, funcName string, filter bson.D) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	cursor, err := r.coll.Find(ctx, filter, newestFirstOpts())
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error finding orders")
		return nil, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		log.Err(err).Str("func", funcName).Msg("error decoding orders")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	return orders, nil
}

func (r *mongoOrderRepository) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	log := logger.FromContext(ctx)

	result, err := r.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}})
	if err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.UpdateOrderStatus").Msg("error updating order status")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// mongoContactRepository implements [ContactRepository] on the "contacts"
// collection.
type mongoContactRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

// NewMongoContactRepository constructs a document-backed [ContactRepository].
func NewMongoContactRepository(db *MongoDB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating mongo contact repository")
	return &mongoContactRepository{coll: db.collection(contactsTable), logger: logger}
}

func (r *mongoContactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if _, err := r.coll.InsertOne(ctx, contact); err != nil {
		log.Err(err).Str("func", "*mongoContactRepository.CreateContact").Msg("error inserting contact")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return contact, nil
}

func (r *mongoContactRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	cursor, err := r.coll.Find(ctx, bson.D{}, newestFirstOpts())
	if err != nil {
		log.Err(err).Str("func", "*mongoContactRepository.ListContacts").Msg("error finding contacts")
		return nil, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	defer cursor.Close(ctx)

	contacts := make([]models.Contact, 0)
	if err = cursor.All(ctx, &contacts); err != nil {
		log.Err(err).Str("func", "*mongoContactRepository.ListContacts").Msg("error decoding contacts")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return contacts, nil
}
