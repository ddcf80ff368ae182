package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo bundles the document-store backed implementations of Users and
// Messages. Identifiers are ObjectID hex strings, opaque to callers.
type Mongo struct {
	client   *mongo.Client
	users    *mongo.Collection
	messages *mongo.Collection
}

// NewMongo connects, pings and prepares the collections. The unique
// email index backs the duplicate-signup check.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	m := &Mongo{
		client:   client,
		users:    db.Collection("users"),
		messages: db.Collection("messages"),
	}

	_, err = m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("mongo users index: %w", err)
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Users() Users       { return (*mongoUsers)(m) }
func (m *Mongo) Messages() Messages { return (*mongoMessages)(m) }

type mongoUsers Mongo

func (m *mongoUsers) Create(ctx context.Context, u *User) error {
	u.ID = bson.NewObjectID().Hex()
	u.CreatedAt = time.Now().UTC()
	_, err := m.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (m *mongoUsers) ByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mongoUsers) ByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mongoUsers) ListOthers(ctx context.Context, excludeID string) ([]User, error) {
	cursor, err := m.users.Find(ctx, bson.M{"_id": bson.M{"$ne": excludeID}})
	if err != nil {
		return nil, err
	}
	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type mongoMessages Mongo

func (m *mongoMessages) Insert(ctx context.Context, msg *Message) error {
	msg.ID = bson.NewObjectID().Hex()
	msg.CreatedAt = time.Now().UTC()
	_, err := m.messages.InsertOne(ctx, msg)
	return err
}

func (m *mongoMessages) Between(ctx context.Context, userA, userB string) ([]Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	}}
	cursor, err := m.messages.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	messages := []Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
