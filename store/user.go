package store

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/models"
)

// NewUserStore create resource owner store (memory). Passwords are kept as
// bcrypt hashes.
func NewUserStore() *UserStore {
	return &UserStore{
		data: make(map[string]string),
	}
}

// UserStore user credential store (in-memory, config-driven)
type UserStore struct {
	sync.RWMutex
	data map[string]string // user id -> bcrypt password hash
}

// Set registers a user with a plain password, stored hashed.
func (us *UserStore) Set(id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	us.Lock()
	defer us.Unlock()
	us.data[id] = string(hash)
	return nil
}

// SetHashed registers a user with an already-hashed password, as loaded
// from configuration.
func (us *UserStore) SetHashed(id, passwordHash string) {
	us.Lock()
	defer us.Unlock()
	us.data[id] = passwordHash
}

// GetByID according to the ID for the user information
func (us *UserStore) GetByID(ctx context.Context, id string) (oauth2.UserInfo, error) {
	us.RLock()
	defer us.RUnlock()

	if _, ok := us.data[id]; ok {
		return &models.User{ID: id}, nil
	}
	return nil, errors.ErrInvalidGrant
}

// Validate checks the password credential and returns the user.
func (us *UserStore) Validate(ctx context.Context, username, password string) (oauth2.UserInfo, error) {
	us.RLock()
	hash, ok := us.data[username]
	us.RUnlock()

	if !ok {
		return nil, errors.ErrInvalidGrant
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, errors.ErrInvalidGrant
	}
	return &models.User{ID: username}, nil
}
