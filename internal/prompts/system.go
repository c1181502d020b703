package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
// Operations acting on behalf of a caller take the caller explicitly;
// a nil user is an unauthenticated caller.
type System interface {
	Handler(maxBodySize int64) *Handler

	Search(ctx context.Context, req SearchRequest) (*pagination.PageResult[Prompt], error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Categories(ctx context.Context) ([]string, error)

	Mine(ctx context.Context, user *auth.User, page pagination.PageRequest) (*pagination.PageResult[Prompt], error)
	Favorites(ctx context.Context, user *auth.User, page pagination.PageRequest) (*pagination.PageResult[Prompt], error)
	FavoriteIDs(ctx context.Context, user *auth.User) ([]uuid.UUID, error)

	Create(ctx context.Context, user *auth.User, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, user *auth.User, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, user *auth.User, id uuid.UUID) error

	Toggle(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error)
	Favorite(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error)
	Unfavorite(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error)
}
