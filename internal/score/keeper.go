// Package score keeps per-feature integer scores that survive restarts.
package score

import (
	"context"
	"fmt"

	"github.com/lyngdoh/curiouskids/internal/store"
)

// Keys used by the games.
const (
	AdditionKey       = "addition_score"
	SubtractionKey    = "subtraction_score"
	MultiplicationKey = "multiplication_score"
	DivisionKey       = "division_score"
	SpellingKey       = "spelling_score"
)

// Keeper reads and increments scores in a ScoreRepo.
// It assumes a single writer per feature.
type Keeper struct {
	repo store.ScoreRepo
}

// NewKeeper creates a Keeper backed by repo.
func NewKeeper(repo store.ScoreRepo) *Keeper {
	return &Keeper{repo: repo}
}

// Load returns the stored score for feature, or 0 if there is none.
func (k *Keeper) Load(ctx context.Context, feature string) (int, error) {
	v, _, err := k.repo.Get(ctx, feature)
	if err != nil {
		return 0, fmt.Errorf("load score: %w", err)
	}
	return v, nil
}

// Increment adds exactly one to feature's score, persists it and
// returns the new value.
func (k *Keeper) Increment(ctx context.Context, feature string) (int, error) {
	v, err := k.Load(ctx, feature)
	if err != nil {
		return 0, err
	}
	v++
	if err := k.repo.Set(ctx, feature, v); err != nil {
		return 0, fmt.Errorf("save score: %w", err)
	}
	return v, nil
}

// Reset forgets feature's score.
func (k *Keeper) Reset(ctx context.Context, feature string) error {
	return k.repo.Delete(ctx, feature)
}

// All returns every stored score ordered by feature.
func (k *Keeper) All(ctx context.Context) ([]store.Score, error) {
	return k.repo.List(ctx)
}
