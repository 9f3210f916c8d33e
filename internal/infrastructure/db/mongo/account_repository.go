package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridianapps/account-service/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository implements ports.AccountRepository on MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique username index that backs duplicate
// detection at registration.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    string             `bson:"created_at"`
	LastLogin    string             `bson:"last_login,omitempty"`
	DisplayName  string             `bson:"display_name"`
	Status       string             `bson:"status"`
	DataHash     string             `bson:"data_hash"`
	SessionToken string             `bson:"session_token,omitempty"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		LastLogin:    d.LastLogin,
		DisplayName:  d.DisplayName,
		Status:       d.Status,
		DataHash:     d.DataHash,
		SessionToken: d.SessionToken,
	}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := accountDoc{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
		LastLogin:    account.LastLogin,
		DisplayName:  account.DisplayName,
		Status:       account.Status,
		DataHash:     account.DataHash,
		SessionToken: account.SessionToken,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	return r.setFields(ctx, id, bson.M{"display_name": displayName})
}

// UpdateCredentials writes the new password hash and its digest in one $set,
// so no observer can see a covered field without its matching digest.
func (r *AccountRepository) UpdateCredentials(ctx context.Context, id, passwordHash, dataHash string) error {
	return r.setFields(ctx, id, bson.M{
		"password_hash": passwordHash,
		"data_hash":     dataHash,
	})
}

// UpdateStatus writes the new status and its digest in one $set.
func (r *AccountRepository) UpdateStatus(ctx context.Context, id, status, dataHash string) error {
	return r.setFields(ctx, id, bson.M{
		"status":    status,
		"data_hash": dataHash,
	})
}

func (r *AccountRepository) UpdateLoginState(ctx context.Context, id, sessionToken, lastLogin string) error {
	return r.setFields(ctx, id, bson.M{
		"session_token": sessionToken,
		"last_login":    lastLogin,
	})
}

func (r *AccountRepository) ClearSessionToken(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$unset": bson.M{"session_token": ""}})
	if err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (r *AccountRepository) setFields(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
