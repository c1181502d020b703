package prompts

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

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
		validator:  validation.New(),
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, maxBodySize)
}

func (r *repo) Search(ctx context.Context, req SearchRequest) (*pagination.PageResult[Prompt], error) {
	req.Normalize()
	page, err := req.Resolve(r.pagination)
	if err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(req.Query, "Title", "Content").
		WhereEquals("Category", req.Category)

	return r.page(ctx, qb, page)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Categories(ctx context.Context) ([]string, error) {
	q, args := query.NewBuilder(projection).BuildDistinct("Category")

	categories, err := repository.QueryMany(ctx, r.db, q, args, func(s repository.Scanner) (string, error) {
		var c string
		err := s.Scan(&c)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return categories, nil
}

func (r *repo) Mine(ctx context.Context, user *auth.User, req pagination.PageRequest) (*pagination.PageResult[Prompt], error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	page, err := req.Resolve(r.pagination)
	if err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(projection, newestSort...).
		WhereEquals("UserID", user.ID)

	return r.page(ctx, qb, page)
}

func (r *repo) Favorites(ctx context.Context, user *auth.User, req pagination.PageRequest) (*pagination.PageResult[Prompt], error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	page, err := req.Resolve(r.pagination)
	if err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereExists(favoritedBy, user.ID)

	return r.page(ctx, qb, page)
}

func (r *repo) FavoriteIDs(ctx context.Context, user *auth.User) ([]uuid.UUID, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	q := `
		SELECT prompt_id FROM prompt_favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	ids, err := repository.QueryMany(ctx, r.db, q, []any{user.ID}, func(s repository.Scanner) (uuid.UUID, error) {
		var id uuid.UUID
		err := s.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("query favorite ids: %w", err)
	}
	return ids, nil
}

func (r *repo) Create(ctx context.Context, user *auth.User, cmd CreateCommand) (*Prompt, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	cmd.Normalize()
	if err := r.validator.Struct(cmd, messages); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO prompts(title, content, category, tags, author, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, projection.Returning())

	args := []any{cmd.Title, cmd.Content, cmd.Category, cmd.Tags, user.DisplayName(), user.ID}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title, "user_id", p.UserID)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, user *auth.User, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	cmd.Normalize()
	if err := r.validator.Struct(cmd, messages); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE prompts
		SET title = $1, content = $2, category = $3, tags = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING %s`, projection.Returning())

	args := []any{cmd.Title, cmd.Content, cmd.Category, cmd.Tags, id}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		if err := lockOwned(ctx, tx, id, user.ID); err != nil {
			return Prompt{}, err
		}
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt updated", "id", p.ID, "title", p.Title)
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
			"DELETE FROM prompts WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt deleted", "id", id, "user_id", user.ID)
	return nil
}

func (r *repo) Toggle(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error) {
	return r.favorite(ctx, user, id, "favorite toggled", func(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (bool, int, error) {
		removed, err := removeFavorite(ctx, tx, userID, id)
		if err != nil {
			return false, 0, err
		}
		if removed {
			count, err := adjustCount(ctx, tx, id, -1)
			return false, count, err
		}

		if _, err := insertFavorite(ctx, tx, userID, id); err != nil {
			return false, 0, err
		}
		count, err := adjustCount(ctx, tx, id, 1)
		return true, count, err
	})
}

func (r *repo) Favorite(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error) {
	return r.favorite(ctx, user, id, "prompt favorited", func(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (bool, int, error) {
		inserted, err := insertFavorite(ctx, tx, userID, id)
		if err != nil {
			return false, 0, err
		}
		if !inserted {
			count, err := currentCount(ctx, tx, id)
			return true, count, err
		}
		count, err := adjustCount(ctx, tx, id, 1)
		return true, count, err
	})
}

func (r *repo) Unfavorite(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error) {
	return r.favorite(ctx, user, id, "prompt unfavorited", func(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (bool, int, error) {
		removed, err := removeFavorite(ctx, tx, userID, id)
		if err != nil {
			return false, 0, err
		}
		if !removed {
			count, err := currentCount(ctx, tx, id)
			return false, count, err
		}
		count, err := adjustCount(ctx, tx, id, -1)
		return false, count, err
	})
}

type favoriteFunc func(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (favorited bool, count int, err error)

// favorite runs fn in a transaction holding the prompt row lock, so the
// favorite row and favorites_count change together or not at all.
func (r *repo) favorite(ctx context.Context, user *auth.User, id uuid.UUID, msg string, fn favoriteFunc) (*FavoriteState, error) {
	if err := auth.Require(user); err != nil {
		return nil, err
	}

	state, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (FavoriteState, error) {
		if err := lockPrompt(ctx, tx, id); err != nil {
			return FavoriteState{}, err
		}

		favorited, count, err := fn(ctx, tx, user.ID)
		if err != nil {
			return FavoriteState{}, err
		}

		return FavoriteState{
			PromptID:       id,
			Favorited:      favorited,
			FavoritesCount: count,
		}, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(msg, "prompt_id", id, "user_id", user.ID, "favorited", state.Favorited, "favorites_count", state.FavoritesCount)
	return &state, nil
}

func (r *repo) page(ctx context.Context, qb *query.Builder, page pagination.Page) (*pagination.PageResult[Prompt], error) {
	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Size, page.Offset())

	var (
		total   int
		prompts []Prompt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count prompts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prompts, err = repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanPrompt)
		if err != nil {
			return fmt.Errorf("query prompts: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(prompts, total, page)
	return &result, nil
}

func lockPrompt(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	var locked uuid.UUID
	return tx.QueryRowContext(
		ctx,
		"SELECT id FROM prompts WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&locked)
}

func lockOwned(ctx context.Context, tx *sql.Tx, id, userID uuid.UUID) error {
	var owner uuid.UUID
	if err := tx.QueryRowContext(
		ctx,
		"SELECT user_id FROM prompts WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&owner); err != nil {
		return err
	}

	if owner != userID {
		return ErrForbidden
	}
	return nil
}

func insertFavorite(ctx context.Context, tx *sql.Tx, userID, promptID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(
		ctx,
		"INSERT INTO prompt_favorites(user_id, prompt_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, promptID,
	)
	if err != nil {
		return false, fmt.Errorf("insert favorite: %w", err)
	}
	return affected(res)
}

func removeFavorite(ctx context.Context, tx *sql.Tx, userID, promptID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(
		ctx,
		"DELETE FROM prompt_favorites WHERE user_id = $1 AND prompt_id = $2",
		userID, promptID,
	)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	return affected(res)
}

// adjustCount applies delta to favorites_count, flooring at zero.
func adjustCount(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta int) (int, error) {
	var count int
	err := tx.QueryRowContext(
		ctx,
		"UPDATE prompts SET favorites_count = GREATEST(favorites_count + $2, 0) WHERE id = $1 RETURNING favorites_count",
		id, delta,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("update favorites count: %w", err)
	}
	return count, nil
}

func currentCount(ctx context.Context, tx *sql.Tx, id uuid.UUID) (int, error) {
	var count int
	err := tx.QueryRowContext(
		ctx,
		"SELECT favorites_count FROM prompts WHERE id = $1",
		id,
	).Scan(&count)
	return count, err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
