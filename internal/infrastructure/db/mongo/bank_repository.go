package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

const collectionBanks = "bank_accounts"

// BankRepository persists bank-account-link documents.
type BankRepository struct {
	col *mongo.Collection
}

func NewBankRepository(db *mongo.Database) *BankRepository {
	return &BankRepository{col: db.Collection(collectionBanks)}
}

type bankDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"user_id"`
	ItemID           string             `bson:"item_id"`
	AccountID        string             `bson:"account_id"`
	AccessToken      string             `bson:"access_token"`
	FundingSourceURL string             `bson:"funding_source_url"`
	ShareableID      string             `bson:"shareable_id"`
	CreatedAt        time.Time          `bson:"created_at"`
}

// Create inserts a new bank link and returns it with the assigned ID.
func (r *BankRepository) Create(ctx context.Context, link *domain.BankAccountLink) (*domain.BankAccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bankDoc{
		UserID:           link.UserID,
		ItemID:           link.ItemID,
		AccountID:        link.AccountID,
		AccessToken:      link.AccessToken,
		FundingSourceURL: link.FundingSourceURL,
		ShareableID:      link.ShareableID,
		CreatedAt:        link.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert bank link: %w", err)
	}

	created := *link
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListByUser returns all bank links owned by the given user.
func (r *BankRepository) ListByUser(ctx context.Context, userID string) ([]domain.BankAccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list bank links: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bankDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list bank links: decode: %w", err)
	}

	links := make([]domain.BankAccountLink, 0, len(docs))
	for i := range docs {
		links = append(links, *docs[i].toDomain())
	}
	return links, nil
}

// FindByID retrieves one bank link by its document ID.
func (r *BankRepository) FindByID(ctx context.Context, id string) (*domain.BankAccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBankNotFound
	}

	var doc bankDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBankNotFound
		}
		return nil, fmt.Errorf("find bank link: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByExternalAccountID resolves an aggregator account identifier to its
// link. Returns ErrBankNotFound unless exactly one document matches.
func (r *BankRepository) FindByExternalAccountID(ctx context.Context, accountID string) (*domain.BankAccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"account_id": accountID})
	if err != nil {
		return nil, fmt.Errorf("find bank link by account: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bankDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find bank link by account: decode: %w", err)
	}
	if len(docs) != 1 {
		return nil, domain.ErrBankNotFound
	}
	return docs[0].toDomain(), nil
}

// EnsureIndexes creates the indexes used by the lookup paths.
func (r *BankRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *bankDoc) toDomain() *domain.BankAccountLink {
	return &domain.BankAccountLink{
		ID:               d.ID.Hex(),
		UserID:           d.UserID,
		ItemID:           d.ItemID,
		AccountID:        d.AccountID,
		AccessToken:      d.AccessToken,
		FundingSourceURL: d.FundingSourceURL,
		ShareableID:      d.ShareableID,
		CreatedAt:        d.CreatedAt,
	}
}
