package posts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/pagination"
	"github.com/JaimeStill/lexicon/pkg/query"
	"github.com/JaimeStill/lexicon/pkg/repository"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	validator  *validation.Validator
}

// New creates a post repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "posts"),
		pagination: pagination,
		validator:  validation.New(),
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, maxBodySize)
}

func (r *repo) List(ctx context.Context, user *auth.User, req pagination.PageRequest) (*pagination.PageResult[Post], error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	page, err := req.Resolve(r.pagination)
	if err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", user.ID)

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Size, page.Offset())

	var (
		total int
		posts []Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		posts, err = repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanPost)
		if err != nil {
			return fmt.Errorf("query posts: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(posts, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, user *auth.User, id uuid.UUID) (*Post, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPost)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if p.UserID != user.ID {
		return nil, ErrForbidden
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, user *auth.User, cmd Command) (*Post, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	cmd.Normalize()
	if err := r.validator.Struct(cmd, messages); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO posts(title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING %s`, projection.Returning())

	args := []any{cmd.Title, cmd.Content, user.ID}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Post, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPost)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post created", "id", p.ID, "user_id", p.UserID)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, user *auth.User, id uuid.UUID, cmd Command) (*Post, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	cmd.Normalize()
	if err := r.validator.Struct(cmd, messages); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE posts
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING %s`, projection.Returning())

	args := []any{cmd.Title, cmd.Content, id}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Post, error) {
		if err := lockOwned(ctx, tx, id, user.ID); err != nil {
			return Post{}, err
		}
		return repository.QueryOne(ctx, tx, q, args, scanPost)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post updated", "id", p.ID)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, user *auth.User, id uuid.UUID) error {
	if err := auth.Require(user); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := lockOwned(ctx, tx, id, user.ID); err != nil {
			return struct{}{}, err
		}
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM posts WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post deleted", "id", id, "user_id", user.ID)
	return nil
}

func lockOwned(ctx context.Context, tx *sql.Tx, id, userID uuid.UUID) error {
	var owner uuid.UUID
	if err := tx.QueryRowContext(
		ctx,
		"SELECT user_id FROM posts WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&owner); err != nil {
		return err
	}

	if owner != userID {
		return ErrForbidden
	}
	return nil
}
