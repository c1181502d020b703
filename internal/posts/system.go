package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/pagination"
)

// System defines the public contract for post domain operations.
// Every operation is scoped to the explicit caller.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(ctx context.Context, user *auth.User, page pagination.PageRequest) (*pagination.PageResult[Post], error)
	Find(ctx context.Context, user *auth.User, id uuid.UUID) (*Post, error)
	Create(ctx context.Context, user *auth.User, cmd Command) (*Post, error)
	Update(ctx context.Context, user *auth.User, id uuid.UUID, cmd Command) (*Post, error)
	Delete(ctx context.Context, user *auth.User, id uuid.UUID) error
}
