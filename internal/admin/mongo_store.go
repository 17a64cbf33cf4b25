package admin

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const accountsCollection = "admins"

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's admins collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(accountsCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) Create(ctx context.Context, account *Account) error {
	now := time.Now()
	account.Email = NormalizeEmail(account.Email)
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.ID.IsZero() {
		account.ID = bson.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return s.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*Account, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var account Account
	if err := s.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *MongoStore) IncrementFailedLogins(ctx context.Context, id string) (int, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	var updated Account
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"failedLoginCount": 1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return updated.FailedLoginCount, nil
}

func (s *MongoStore) Lock(ctx context.Context, id string, until time.Time) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{"lockUntil": until, "updatedAt": time.Now()},
	})
}

func (s *MongoStore) RecordLogin(ctx context.Context, id, ip string, at time.Time) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"lastLoginAt":      at,
			"lastLoginIp":      ip,
			"failedLoginCount": 0,
			"updatedAt":        at,
		},
		"$unset": bson.M{"lockUntil": ""},
	})
}

func (s *MongoStore) SetPendingSecret(ctx context.Context, id, ciphertext string) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"twoFactorSecretEncrypted": ciphertext,
			"updatedAt":                time.Now(),
		},
	})
}

func (s *MongoStore) EnableTwoFactor(ctx context.Context, id string, verifiedAt time.Time, codeHashes []string, ip string) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"twoFactorEnabled":     true,
			"twoFactorVerifiedAt":  verifiedAt,
			"twoFactorBackupCodes": codeHashes,
			"lastLoginAt":          verifiedAt,
			"lastLoginIp":          ip,
			"failedLoginCount":     0,
			"updatedAt":            verifiedAt,
		},
		"$unset": bson.M{"lockUntil": ""},
	})
}

func (s *MongoStore) ConsumeBackupCode(ctx context.Context, id, hash string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	// The filter requires the hash to still be present, so of two concurrent
	// requests presenting the same code exactly one observes ModifiedCount=1.
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "twoFactorBackupCodes": hash},
		bson.M{
			"$pull": bson.M{"twoFactorBackupCodes": hash},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (s *MongoStore) UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"passwordHash":      passwordHash,
			"passwordChangedAt": changedAt,
			"updatedAt":         changedAt,
		},
	})
}

func (s *MongoStore) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
