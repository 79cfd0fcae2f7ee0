// internal/app/features/blog/handler.go
package blog

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	poststore "github.com/kestrelworks/clienthub/internal/app/store/posts"
	"github.com/kestrelworks/clienthub/internal/app/system/htmlsanitize"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Posts  *poststore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(posts *poststore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Posts: posts, ErrLog: errLog, Log: logger}
}

type indexData struct {
	viewdata.BaseVM
	Posts []models.BlogPost
}

type postData struct {
	viewdata.BaseVM
	Post models.BlogPost
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /blog – published posts, newest first                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	posts, err := h.Posts.ListPublished(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "blog: list published posts", err)
		return
	}

	templates.Render(w, r, "blog_index", indexData{
		BaseVM: viewdata.NewBaseVM(r, "Blog", "/"),
		Posts:  posts,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /blog/{slug} – single published post                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderForbidden(w, r, "That post doesn't exist.", "/blog")
			return
		}
		h.ErrLog.LogDBError(w, r, "blog: load post", err)
		return
	}

	templates.Render(w, r, "blog_post", postData{
		BaseVM: viewdata.NewBaseVM(r, post.Title, "/blog"),
		Post:   *post,
	})
}

// BodyHTML re-sanitizes the stored body and marks it safe for the
// template. Sanitizing on the way out as well as in keeps old rows safe if
// the policy ever tightens.
func (d postData) BodyHTML() template.HTML {
	return htmlsanitize.SanitizeHTML(d.Post.Body)
}
