package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is a registered account. Password holds the bcrypt hash and is
// never serialized to clients.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Profile   string    `bson:"profile,omitempty" json:"profile"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Message is one direct message. At least one of Text, Image and Video
// is non-empty; messages are immutable once created.
type Message struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	SenderID   string    `bson:"sender_id" json:"senderId"`
	ReceiverID string    `bson:"receiver_id" json:"receiverId"`
	Text       string    `bson:"text,omitempty" json:"text,omitempty"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
	Video      string    `bson:"video,omitempty" json:"video,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Users is the user collection collaborator.
type Users interface {
	// Create inserts u and fills in ID and CreatedAt. A duplicate
	// email yields ErrDuplicateEmail.
	Create(ctx context.Context, u *User) error
	// ByEmail returns the user with the given email or ErrNotFound.
	ByEmail(ctx context.Context, email string) (*User, error)
	// ByID returns the user with the given identifier or ErrNotFound.
	ByID(ctx context.Context, id string) (*User, error)
	// ListOthers returns every user except excludeID.
	ListOthers(ctx context.Context, excludeID string) ([]User, error)
}

// Messages is the message collection collaborator.
type Messages interface {
	// Insert persists m and fills in ID and CreatedAt.
	Insert(ctx context.Context, m *Message) error
	// Between returns all messages exchanged between the two users,
	// in either direction, oldest first. An unknown partner simply
	// yields an empty history.
	Between(ctx context.Context, userA, userB string) ([]Message, error)
}
