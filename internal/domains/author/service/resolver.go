package service

import (
	"context"
	"fmt"
	"time"

	"bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/domains/author/repository"
	"bookmanager-backend/pkg/logger"
)

// Resolver turns requested authors into persisted author ids.
// It is bound to one repository, usually one opened on a transaction.
type Resolver struct {
	repo repository.RepositoryInterface
}

// NewResolver creates a Resolver over repo
func NewResolver(repo repository.RepositoryInterface) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveInputs validates raw inputs against today and resolves them
func (r *Resolver) ResolveInputs(ctx context.Context, inputs []model.AuthorInput, today time.Time) ([]model.AuthorID, error) {
	authors, err := model.ValidateInputs(inputs, today)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, authors)
}

// Resolve returns one id per distinct requested name. Names already stored
// reuse the stored row and keep its birth date. Missing names are created in
// one batch. Existing ids come first, then created ids.
func (r *Resolver) Resolve(ctx context.Context, authors []model.Author) ([]model.AuthorID, error) {
	requested := model.UniqueByName(authors)
	if len(requested) == 0 {
		return nil, model.ErrNoAuthorsResolved
	}

	names := make([]string, len(requested))
	for i, a := range requested {
		names[i] = a.Name
	}

	stored, err := r.repo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	// Storage may hold the same name twice; the lowest id wins
	byName := make(map[string]model.AuthorID, len(stored))
	for _, a := range stored {
		if kept, ok := byName[a.Name]; ok {
			logger.Warn("Duplicate author name in storage", map[string]interface{}{
				"name":       a.Name,
				"kept_id":    kept,
				"ignored_id": a.ID,
			})
			continue
		}
		byName[a.Name] = a.ID
	}

	ids := make([]model.AuthorID, 0, len(requested))
	var missing []model.Author
	for _, a := range requested {
		if id, ok := byName[a.Name]; ok {
			ids = append(ids, id)
			continue
		}
		missing = append(missing, a)
	}

	if len(missing) > 0 {
		created, err := r.repo.BulkCreate(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(created) != len(missing) {
			return nil, fmt.Errorf("created %d of %d authors", len(created), len(missing))
		}
		ids = append(ids, created...)

		logger.Info("Authors created", map[string]interface{}{
			"created": len(created),
			"reused":  len(requested) - len(missing),
		})
		return ids, nil
	}

	logger.Debug("All requested authors already stored")
	return ids, nil
}
