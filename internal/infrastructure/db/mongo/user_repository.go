package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists user profile documents. A unique index on email
// turns duplicate-key failures into the 409-equivalent the provisioning
// sequence expects.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	AccountID          string             `bson:"account_id"`
	Email              string             `bson:"email"`
	FirstName          string             `bson:"first_name"`
	LastName           string             `bson:"last_name"`
	Address            string             `bson:"address"`
	City               string             `bson:"city"`
	State              string             `bson:"state"`
	PostalCode         string             `bson:"postal_code"`
	DateOfBirth        string             `bson:"date_of_birth"`
	SSN                string             `bson:"ssn"`
	PaymentCustomerID  string             `bson:"payment_customer_id"`
	PaymentCustomerURL string             `bson:"payment_customer_url"`
	CreatedAt          time.Time          `bson:"created_at"`
}

// Create inserts a new user document and returns it with the assigned ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		AccountID:          user.AccountID,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		Address:            user.Address,
		City:               user.City,
		State:              user.State,
		PostalCode:         user.PostalCode,
		DateOfBirth:        user.DateOfBirth,
		SSN:                user.SSN,
		PaymentCustomerID:  user.PaymentCustomerID,
		PaymentCustomerURL: user.PaymentCustomerURL,
		CreatedAt:          user.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByAccountID retrieves the user linked to an identity account.
func (r *UserRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes a user document by ID. Compensating action only.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("delete user: invalid id %q: %w", id, err)
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the repository relies on. The unique
// email index backs the duplicate-registration check.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "account_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:                 d.ID.Hex(),
		AccountID:          d.AccountID,
		Email:              d.Email,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Address:            d.Address,
		City:               d.City,
		State:              d.State,
		PostalCode:         d.PostalCode,
		DateOfBirth:        d.DateOfBirth,
		SSN:                d.SSN,
		PaymentCustomerID:  d.PaymentCustomerID,
		PaymentCustomerURL: d.PaymentCustomerURL,
		CreatedAt:          d.CreatedAt,
	}
}
