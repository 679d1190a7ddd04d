package address

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Storage keys. Saved forms live in one hash keyed by normalized CEP so a
// returning customer gets their form pre-filled from the postal code alone.
const (
	DefaultFormsKey   = "huum:checkout:addresses"
	DefaultLastZipKey = "huum:shipping:last_zipcode"
)

// ErrNotFound indicates no saved form exists for the postal code.
var ErrNotFound = errors.New("address not found")

// Form holds the customer-specific half of a delivery address. Street,
// neighborhood, city and state are never stored: they are looked up live
// from the postal code so a moved street name can't go stale here.
type Form struct {
	FullName   string `json:"fullName" validate:"required,min=3"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,min=10,max=15"`
	CEP        string `json:"cep" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Complement string `json:"complement"`
}

// Store keeps saved forms and the last quoted postal code in Redis.
type Store struct {
	R          *redis.Client
	FormsKey   string
	LastZipKey string
}

// NewStore constructs a store with default keys when none are given.
func NewStore(client *redis.Client) *Store {
	return &Store{R: client, FormsKey: DefaultFormsKey, LastZipKey: DefaultLastZipKey}
}

// Save upserts the form under its postal code.
func (s *Store) Save(ctx context.Context, zip string, form Form) error {
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return s.R.HSet(ctx, s.FormsKey, zip, data).Err()
}

// Get returns the saved form for a postal code.
func (s *Store) Get(ctx context.Context, zip string) (Form, error) {
	data, err := s.R.HGet(ctx, s.FormsKey, zip).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Form{}, ErrNotFound
		}
		return Form{}, err
	}
	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		return Form{}, err
	}
	return form, nil
}

// SetLastZip remembers the most recently quoted postal code.
func (s *Store) SetLastZip(ctx context.Context, zip string) error {
	return s.R.Set(ctx, s.LastZipKey, zip, 0).Err()
}

// LastZip returns the remembered postal code, or empty when none is set.
func (s *Store) LastZip(ctx context.Context) (string, error) {
	zip, err := s.R.Get(ctx, s.LastZipKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return zip, nil
}
