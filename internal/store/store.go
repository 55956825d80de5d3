// Package store holds the persistence primitives for ingredients, recipes and
// their composition rows. Every method accepts an optional transaction so the
// services can group several primitives into one unit of work; a nil tx runs
// against the store's own handle.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"beondiet/internal/apperr"
)

// Store bundles the three relation stores over a single database handle.
type Store struct {
	DB           *gorm.DB
	Ingredients  *Ingredients
	Recipes      *Recipes
	Compositions *Compositions
}

func New(db *gorm.DB) *Store {
	return &Store{
		DB:           db,
		Ingredients:  &Ingredients{db: db},
		Recipes:      &Recipes{db: db},
		Compositions: &Compositions{db: db},
	}
}

// InTx runs fn inside a transaction on the store's handle. Any error returned
// by fn rolls the whole unit back.
func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(fn)
}

func conn(base *gorm.DB, ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}

func translate(err error, entity, name string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("%s named %q already exists", entity, name)
	}
	return err
}
