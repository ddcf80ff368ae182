package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory is an in-process implementation of Users and Messages. It
// backs the test suite and storage-less development runs; data does
// not survive a restart.
type Memory struct {
	mu       sync.Mutex
	users    map[string]User
	messages []Message
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]User)}
}

func (m *Memory) Users() Users       { return (*memoryUsers)(m) }
func (m *Memory) Messages() Messages { return (*memoryMessages)(m) }

type memoryUsers Memory

func (m *memoryUsers) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.ID = bson.NewObjectID().Hex()
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}

func (m *memoryUsers) ByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryUsers) ByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) ListOthers(_ context.Context, excludeID string) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []User{}
	for _, u := range m.users {
		if u.ID != excludeID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memoryMessages Memory

func (m *memoryMessages) Insert(_ context.Context, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = bson.NewObjectID().Hex()
	msg.CreatedAt = time.Now().UTC()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *memoryMessages) Between(_ context.Context, userA, userB string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := []Message{}
	for _, msg := range m.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}
