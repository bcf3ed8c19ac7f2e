package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"sitegen/internal/content"
	"sitegen/internal/pagination"
	"sitegen/internal/relation"
	render_mocks "sitegen/internal/render/mocks"

	"go.uber.org/mock/gomock"
)

func TestDispatcher_Content(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRenderer := render_mocks.NewMockRenderer(ctrl)
	d := NewDispatcher(mockRenderer, testSite(), nil)

	rec := &content.Record{Slug: "b", Title: "B", HTML: "<p>b</p>"}
	linker := &content.Record{Slug: "a", Title: "A"}
	rel := relation.Snapshot{BackLinks: []*content.Record{linker}, Next: linker}

	mockRenderer.EXPECT().
		Render(gomock.Any(), gomock.Any(), TemplateContent, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ io.Writer, _ string, data any) error {
			ctx, ok := data.(ContentContext)
			if !ok {
				t.Fatalf("data type = %T, want ContentContext", data)
			}
			if ctx.Content != rec || string(ctx.Body) != rec.HTML || ctx.Title != "B" {
				t.Errorf("ContentContext does not carry the record: %+v", ctx)
			}
			if len(ctx.BackLinks) != 1 || ctx.Next != linker || ctx.Previous != nil {
				t.Errorf("ContentContext relations = %+v", ctx)
			}
			if ctx.Site.Name != "Test Site" {
				t.Errorf("Site.Name = %q", ctx.Site.Name)
			}
			return nil
		})

	if err := d.Content(context.Background(), &bytes.Buffer{}, rec, rel, nil); err != nil {
		t.Fatalf("Content() error = %v", err)
	}
}

func TestDispatcher_ListPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRenderer := render_mocks.NewMockRenderer(ctrl)
	d := NewDispatcher(mockRenderer, testSite(), NewURLResolver("/site"))

	tests := []struct {
		name     string
		page     pagination.Page[*content.Record]
		wantPrev string
		wantNext string
	}{
		{
			name:     "first page",
			page:     pagination.Page[*content.Record]{Number: 1, TotalPages: 3, Next: 2},
			wantPrev: "",
			wantNext: "/site/tag-go-2.html",
		},
		{
			name:     "middle page",
			page:     pagination.Page[*content.Record]{Number: 2, TotalPages: 3, Previous: 1, Next: 3},
			wantPrev: "/site/tag-go.html",
			wantNext: "/site/tag-go-3.html",
		},
		{
			name:     "empty list",
			page:     pagination.Page[*content.Record]{},
			wantPrev: "",
			wantNext: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRenderer.EXPECT().
				Render(gomock.Any(), gomock.Any(), TemplateList, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ io.Writer, _ string, data any) error {
					ctx := data.(ListContext)
					if ctx.Pagination.PreviousPage != tt.wantPrev {
						t.Errorf("PreviousPage = %q, want %q", ctx.Pagination.PreviousPage, tt.wantPrev)
					}
					if ctx.Pagination.NextPage != tt.wantNext {
						t.Errorf("NextPage = %q, want %q", ctx.Pagination.NextPage, tt.wantNext)
					}
					if ctx.Pagination.CurrentPage < 1 || ctx.Pagination.TotalPages < 1 {
						t.Errorf("Pagination = %+v, want at least page 1 of 1", ctx.Pagination)
					}
					return nil
				})

			if err := d.List(context.Background(), &bytes.Buffer{}, "go", "tag-go", tt.page); err != nil {
				t.Fatalf("List() error = %v", err)
			}
		})
	}
}

func TestDispatcher_AuthorAndGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRenderer := render_mocks.NewMockRenderer(ctrl)
	d := NewDispatcher(mockRenderer, testSite(), nil)
	author := &content.Author{Slug: "alice", Name: "Alice"}

	gomock.InOrder(
		mockRenderer.EXPECT().
			Render(gomock.Any(), gomock.Any(), TemplateAuthor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ io.Writer, _ string, data any) error {
				ctx := data.(AuthorContext)
				if ctx.Author != author || ctx.Title != "Alice" {
					t.Errorf("AuthorContext = %+v", ctx)
				}
				return nil
			}),
		mockRenderer.EXPECT().
			Render(gomock.Any(), gomock.Any(), TemplateGroupList, gomock.Any()).
			Return(errors.New("boom")),
	)

	page := pagination.Page[*content.Record]{Number: 1, TotalPages: 1}
	if err := d.Author(context.Background(), &bytes.Buffer{}, author, "author-alice", page); err != nil {
		t.Fatalf("Author() error = %v", err)
	}
	if err := d.Groups(context.Background(), &bytes.Buffer{}, "Tags", nil); err == nil {
		t.Fatal("Groups() expected renderer error to propagate")
	}
}
