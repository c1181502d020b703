package prompts_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/internal/prompts"
	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/pagination"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

var pageConfig = pagination.Config{DefaultPageSize: 12, MaxPageSize: 50}

// offline returns a System with no database. Every call exercised here must
// fail before any query runs.
func offline() prompts.System {
	return prompts.New(nil, discard(), pageConfig)
}

func intPtr(n int) *int { return &n }

func TestRequiresCaller(t *testing.T) {
	sys := offline()
	ctx := context.Background()
	id := uuid.New()
	cmd := prompts.CreateCommand{Title: "t", Content: "c", Category: "c"}

	calls := map[string]func() error{
		"create": func() error { _, err := sys.Create(ctx, nil, cmd); return err },
		"update": func() error {
			_, err := sys.Update(ctx, nil, id, prompts.UpdateCommand(cmd))
			return err
		},
		"delete":       func() error { return sys.Delete(ctx, nil, id) },
		"toggle":       func() error { _, err := sys.Toggle(ctx, nil, id); return err },
		"favorite":     func() error { _, err := sys.Favorite(ctx, nil, id); return err },
		"unfavorite":   func() error { _, err := sys.Unfavorite(ctx, nil, id); return err },
		"mine":         func() error { _, err := sys.Mine(ctx, nil, pagination.PageRequest{}); return err },
		"favorites":    func() error { _, err := sys.Favorites(ctx, nil, pagination.PageRequest{}); return err },
		"favorite ids": func() error { _, err := sys.FavoriteIDs(ctx, nil); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, auth.ErrUnauthenticated) {
				t.Errorf("got %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  prompts.CreateCommand
		want validation.Errors
	}{
		{
			name: "empty title",
			cmd:  prompts.CreateCommand{Title: "", Content: "c", Category: "c"},
			want: validation.Errors{"title": "Title is required"},
		},
		{
			name: "whitespace title",
			cmd:  prompts.CreateCommand{Title: "   ", Content: "c", Category: "c"},
			want: validation.Errors{"title": "Title is required"},
		},
		{
			name: "title of 201 characters",
			cmd:  prompts.CreateCommand{Title: strings.Repeat("x", 201), Content: "c", Category: "c"},
			want: validation.Errors{"title": "Title too long"},
		},
		{
			name: "blank content and category",
			cmd:  prompts.CreateCommand{Title: "t", Content: " \n\t", Category: ""},
			want: validation.Errors{
				"content":  "Content is required",
				"category": "Category is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := offline().Create(context.Background(), alice, tt.cmd)

			var got validation.Errors
			if !errors.As(err, &got) {
				t.Fatalf("got %v, want validation.Errors", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
			if status := prompts.MapHTTPStatus(err); status != 400 {
				t.Errorf("status: got %d, want 400", status)
			}
		})
	}
}

func TestUpdateValidation(t *testing.T) {
	_, err := offline().Update(context.Background(), alice, uuid.New(), prompts.UpdateCommand{
		Title:    strings.Repeat("é", 201),
		Content:  "c",
		Category: "c",
	})

	var got validation.Errors
	if !errors.As(err, &got) || got["title"] != "Title too long" {
		t.Errorf("got %v, want title too long", err)
	}
}

func TestTitleAtLimitPassesValidation(t *testing.T) {
	cmd := prompts.CreateCommand{Title: strings.Repeat("x", 200), Content: "c", Category: "c"}
	cmd.Normalize()

	if err := validation.New().Struct(cmd, nil); err != nil {
		t.Errorf("200 character title should validate, got %v", err)
	}
}

func TestPaginationBounds(t *testing.T) {
	tests := []struct {
		name  string
		page  pagination.PageRequest
		field string
	}{
		{"limit above max", pagination.PageRequest{Limit: intPtr(51)}, "limit"},
		{"zero limit", pagination.PageRequest{Limit: intPtr(0)}, "limit"},
		{"zero page", pagination.PageRequest{Page: intPtr(0)}, "page"},
		{"negative page", pagination.PageRequest{Page: intPtr(-3)}, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := offline().Search(context.Background(), prompts.SearchRequest{PageRequest: tt.page})

			var got validation.Errors
			if !errors.As(err, &got) {
				t.Fatalf("got %v, want validation.Errors", err)
			}
			if _, ok := got[tt.field]; !ok {
				t.Errorf("missing %s error in %v", tt.field, got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cmd := prompts.CreateCommand{
		Title:    "  Summarize  ",
		Content:  "  keep inner spacing  ",
		Category: " writing ",
		Tags:     []string{" a ", "", "  ", "b"},
	}
	cmd.Normalize()

	want := prompts.CreateCommand{
		Title:    "Summarize",
		Content:  "  keep inner spacing  ",
		Category: "writing",
		Tags:     []string{"a", "b"},
	}
	if diff := cmp.Diff(want, cmd); diff != "" {
		t.Errorf("normalize mismatch (-want +got):\n%s", diff)
	}

	empty := prompts.CreateCommand{}
	empty.Normalize()
	if empty.Tags == nil {
		t.Error("tags should normalize to an empty, non-nil slice")
	}
}

func TestSearchRequestNormalize(t *testing.T) {
	q, c := "  ", " writing "
	req := prompts.SearchRequest{Query: &q, Category: &c}
	req.Normalize()

	if req.Query != nil {
		t.Errorf("blank query should disable the filter, got %q", *req.Query)
	}
	if req.Category == nil || *req.Category != "writing" {
		t.Errorf("category: got %v, want writing", req.Category)
	}
}
