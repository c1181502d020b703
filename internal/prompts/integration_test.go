package prompts_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/goleak"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/lexicon/internal/migrations"
	"github.com/JaimeStill/lexicon/internal/prompts"
	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/pagination"
)

const envTestDSN = "LEXICON_TEST_DATABASE_DSN"

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}

	if err := migrations.Up(dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newUser(name string) *auth.User {
	return &auth.User{ID: uuid.New(), Email: name + "@example.com", Name: name}
}

// uniqueCategory isolates a test's prompts from rows written by other tests.
func uniqueCategory(t *testing.T) string {
	t.Helper()
	return "test-" + uuid.NewString()[:8]
}

func createPrompt(t *testing.T, sys prompts.System, user *auth.User, category string) *prompts.Prompt {
	t.Helper()
	p, err := sys.Create(context.Background(), user, prompts.CreateCommand{
		Title:    "Prompt " + uuid.NewString()[:6],
		Content:  "Explain the change in one paragraph.",
		Category: category,
		Tags:     []string{"test"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() {
		sys.Delete(context.Background(), user, p.ID)
	})
	return p
}

func favoriteRows(t *testing.T, db *sql.DB, promptID uuid.UUID) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompt_favorites WHERE prompt_id = $1", promptID).Scan(&n); err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	return n
}

func TestIntegrationFavoriteLifecycle(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	a, b := newUser("a"), newUser("b")

	x, err := sys.Create(ctx, a, prompts.CreateCommand{
		Title:    "Prompt X",
		Content:  "Rewrite for clarity.",
		Category: uniqueCategory(t),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if x.FavoritesCount != 0 || x.Author != "a" || x.UserID != a.ID {
		t.Fatalf("created prompt: got %+v", x)
	}
	if x.Tags == nil {
		t.Error("tags should scan as an empty slice")
	}

	state, err := sys.Favorite(ctx, b, x.ID)
	if err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if diff := cmp.Diff(&prompts.FavoriteState{PromptID: x.ID, Favorited: true, FavoritesCount: 1}, state); diff != "" {
		t.Errorf("favorite state mismatch (-want +got):\n%s", diff)
	}

	ids, err := sys.FavoriteIDs(ctx, b)
	if err != nil {
		t.Fatalf("favorite ids: %v", err)
	}
	if diff := cmp.Diff([]uuid.UUID{x.ID}, ids); diff != "" {
		t.Errorf("favorite ids mismatch (-want +got):\n%s", diff)
	}

	state, err = sys.Unfavorite(ctx, b, x.ID)
	if err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if state.Favorited || state.FavoritesCount != 0 {
		t.Errorf("unfavorite state: got %+v", state)
	}

	if _, err := sys.Favorite(ctx, b, x.ID); err != nil {
		t.Fatalf("re-favorite: %v", err)
	}

	if err := sys.Delete(ctx, a, x.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := favoriteRows(t, db, x.ID); n != 0 {
		t.Errorf("favorite rows after delete: got %d, want 0", n)
	}
	if _, err := sys.Find(ctx, x.ID); !errors.Is(err, prompts.ErrNotFound) {
		t.Errorf("find after delete: got %v, want ErrNotFound", err)
	}
}

func TestIntegrationToggleTwiceRestoresState(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	owner, fan := newUser("owner"), newUser("fan")
	p := createPrompt(t, sys, owner, uniqueCategory(t))

	first, err := sys.Toggle(ctx, fan, p.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !first.Favorited || first.FavoritesCount != 1 {
		t.Errorf("first toggle: got %+v", first)
	}

	second, err := sys.Toggle(ctx, fan, p.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if second.Favorited || second.FavoritesCount != 0 {
		t.Errorf("second toggle: got %+v", second)
	}
	if n := favoriteRows(t, db, p.ID); n != 0 {
		t.Errorf("favorite rows: got %d, want 0", n)
	}
}

func TestIntegrationIdempotentFavorite(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	owner, fan := newUser("owner"), newUser("fan")
	p := createPrompt(t, sys, owner, uniqueCategory(t))

	for range 2 {
		state, err := sys.Favorite(ctx, fan, p.ID)
		if err != nil {
			t.Fatalf("favorite: %v", err)
		}
		if state.FavoritesCount != 1 {
			t.Errorf("favorite count: got %d, want 1", state.FavoritesCount)
		}
	}

	for range 2 {
		state, err := sys.Unfavorite(ctx, fan, p.ID)
		if err != nil {
			t.Fatalf("unfavorite: %v", err)
		}
		if state.FavoritesCount != 0 {
			t.Errorf("unfavorite count: got %d, want 0", state.FavoritesCount)
		}
	}
}

func TestIntegrationConcurrentTogglesKeepCounterInSync(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	owner := newUser("owner")
	p := createPrompt(t, sys, owner, uniqueCategory(t))

	fans := make([]*auth.User, 20)
	for i := range fans {
		fans[i] = newUser("fan")
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(fans)*3)
	for _, fan := range fans {
		for range 3 {
			wg.Go(func() {
				if _, err := sys.Toggle(ctx, fan, p.ID); err != nil {
					errs <- err
				}
			})
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("toggle: %v", err)
	}

	got, err := sys.Find(ctx, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	// three toggles per fan leave each fan favorited
	if got.FavoritesCount != len(fans) {
		t.Errorf("favorites_count: got %d, want %d", got.FavoritesCount, len(fans))
	}
	if rows := favoriteRows(t, db, p.ID); rows != got.FavoritesCount {
		t.Errorf("counter drift: favorites_count=%d, favorite rows=%d", got.FavoritesCount, rows)
	}
}

func TestIntegrationCounterFloorsAtZero(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	owner, fan := newUser("owner"), newUser("fan")
	p := createPrompt(t, sys, owner, uniqueCategory(t))

	if _, err := sys.Favorite(ctx, fan, p.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if _, err := db.Exec("UPDATE prompts SET favorites_count = 0 WHERE id = $1", p.ID); err != nil {
		t.Fatalf("force drift: %v", err)
	}

	state, err := sys.Unfavorite(ctx, fan, p.ID)
	if err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if state.FavoritesCount != 0 {
		t.Errorf("favorites_count: got %d, want 0", state.FavoritesCount)
	}
}

func TestIntegrationFavoriteMissingPrompt(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)

	_, err := sys.Toggle(context.Background(), newUser("fan"), uuid.New())
	if !errors.Is(err, prompts.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestIntegrationOwnership(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	owner, other := newUser("owner"), newUser("other")
	p := createPrompt(t, sys, owner, uniqueCategory(t))

	_, err := sys.Update(ctx, other, p.ID, prompts.UpdateCommand{Title: "hijacked", Content: "x", Category: "x"})
	if !errors.Is(err, prompts.ErrForbidden) {
		t.Errorf("update by non-owner: got %v, want ErrForbidden", err)
	}
	if err := sys.Delete(ctx, other, p.ID); !errors.Is(err, prompts.ErrForbidden) {
		t.Errorf("delete by non-owner: got %v, want ErrForbidden", err)
	}

	got, err := sys.Find(ctx, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("prompt changed after rejected writes (-want +got):\n%s", diff)
	}

	if err := sys.Delete(ctx, owner, uuid.New()); !errors.Is(err, prompts.ErrNotFound) {
		t.Errorf("delete missing: got %v, want ErrNotFound", err)
	}

	updated, err := sys.Update(ctx, owner, p.ID, prompts.UpdateCommand{
		Title:    "Renamed",
		Content:  p.Content,
		Category: p.Category,
		Tags:     []string{"x", "y"},
	})
	if err != nil {
		t.Fatalf("update by owner: %v", err)
	}
	if updated.Title != "Renamed" || !updated.UpdatedAt.After(p.UpdatedAt) && !updated.UpdatedAt.Equal(p.UpdatedAt) {
		t.Errorf("updated prompt: got %+v", updated)
	}
	if diff := cmp.Diff([]string{"x", "y"}, updated.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrationSearch(t *testing.T) {
	db := testDB(t)
	sys := prompts.New(db, discard(), pageConfig)
	ctx := context.Background()

	category := uniqueCategory(t)
	owner, fan := newUser("owner"), newUser("fan")

	popular := createPrompt(t, sys, owner, category)
	quiet := createPrompt(t, sys, owner, category)
	if _, err := sys.Favorite(ctx, fan, popular.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	result, err := sys.Search(ctx, prompts.SearchRequest{Category: &category})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 2 || len(result.Data) != 2 {
		t.Fatalf("search: got total=%d len=%d, want 2", result.Total, len(result.Data))
	}
	if result.Data[0].ID != popular.ID || result.Data[1].ID != quiet.ID {
		t.Errorf("order: got %v, %v; want most favorited first", result.Data[0].ID, result.Data[1].ID)
	}
	if result.Limit != 12 || result.Page != 1 {
		t.Errorf("defaults: got page=%d limit=%d", result.Page, result.Limit)
	}

	q := "%_" + uuid.NewString()
	empty, err := sys.Search(ctx, prompts.SearchRequest{Query: &q})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if empty.Total != 0 || empty.Data == nil || len(empty.Data) != 0 {
		t.Errorf("empty search: got %+v", empty)
	}

	max := 50
	if _, err := sys.Search(ctx, prompts.SearchRequest{Category: &category, PageRequest: pagination.PageRequest{Limit: &max}}); err != nil {
		t.Errorf("limit 50 should be accepted: %v", err)
	}

	favorites, err := sys.Favorites(ctx, fan, pagination.PageRequest{})
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(favorites.Data) != 1 || favorites.Data[0].ID != popular.ID {
		t.Errorf("favorites: got %+v", favorites.Data)
	}

	mine, err := sys.Mine(ctx, owner, pagination.PageRequest{})
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if mine.Total != 2 || mine.Data[0].ID != quiet.ID {
		t.Errorf("mine: want newest first, got %+v", mine.Data)
	}

	categories, err := sys.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	found := false
	for _, c := range categories {
		if c == category {
			found = true
		}
	}
	if !found {
		t.Errorf("categories missing %s", category)
	}
}
