// internal/app/features/admin/posts.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	poststore "github.com/kestrelworks/clienthub/internal/app/store/posts"
	"github.com/kestrelworks/clienthub/internal/app/system/gates"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
)

type postListData struct {
	viewdata.BaseVM
	Posts []models.BlogPost
}

type postFormData struct {
	viewdata.BaseVM
	Post    *models.BlogPost
	IsNew   bool
	Errors  map[string]string
	Title   string
	Slug    string
	Summary string
	Body    string
	Author  string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/posts                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.ListAll(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: list posts", err)
		return
	}

	data := postListData{
		BaseVM: viewdata.NewBaseVM(r, "Blog posts", "/admin-dashboard"),
		Posts:  posts,
	}
	templates.Render(w, r, "admin_posts", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/posts/new                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePostNew(w http.ResponseWriter, r *http.Request) {
	data := postFormData{
		BaseVM: viewdata.NewBaseVM(r, "New post", "/admin/posts"),
		IsNew:  true,
	}
	templates.Render(w, r, "admin_post_form", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/posts                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePostCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r, "/login")
	if !res.OK {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse post form", err, "Invalid form data.", "/admin/posts")
		return
	}

	form := postFormData{
		BaseVM:  viewdata.NewBaseVM(r, "New post", "/admin/posts"),
		IsNew:   true,
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Slug:    strings.TrimSpace(r.PostFormValue("slug")),
		Summary: strings.TrimSpace(r.PostFormValue("summary")),
		Body:    r.PostFormValue("body"),
		Author:  strings.TrimSpace(r.PostFormValue("author")),
		Errors:  map[string]string{},
	}
	if form.Title == "" {
		form.Errors["title"] = "A post needs a title."
	}
	if strings.TrimSpace(form.Body) == "" {
		form.Errors["body"] = "A post needs a body."
	}
	if len(form.Errors) > 0 {
		templates.Render(w, r, "admin_post_form", form)
		return
	}
	if form.Author == "" {
		form.Author = res.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.Posts.Create(ctx, models.BlogPost{
		Slug:    form.Slug,
		Title:   form.Title,
		Summary: form.Summary,
		Body:    form.Body,
		Author:  form.Author,
	})
	if err != nil {
		if errors.Is(err, poststore.ErrSlugTaken) {
			form.Errors["slug"] = "That slug is already in use."
			templates.Render(w, r, "admin_post_form", form)
			return
		}
		h.ErrLog.LogDBError(w, r, "admin: create post", err)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/posts/{id}/edit                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePostEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "/admin/posts")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderForbidden(w, r, "That post does not exist.", "/admin/posts")
			return
		}
		h.ErrLog.LogDBError(w, r, "admin: load post", err)
		return
	}

	data := postFormData{
		BaseVM:  viewdata.NewBaseVM(r, "Edit post", "/admin/posts"),
		Post:    post,
		Title:   post.Title,
		Slug:    post.Slug,
		Summary: post.Summary,
		Body:    post.Body,
		Author:  post.Author,
	}
	templates.Render(w, r, "admin_post_form", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/posts/{id}                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "/admin/posts")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse post form", err, "Invalid form data.", "/admin/posts")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	upd := poststore.PostUpdate{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Summary: strings.TrimSpace(r.PostFormValue("summary")),
		Body:    r.PostFormValue("body"),
		Author:  strings.TrimSpace(r.PostFormValue("author")),
	}
	if err := h.Posts.Update(ctx, id, upd); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderForbidden(w, r, "That post does not exist.", "/admin/posts")
			return
		}
		h.ErrLog.LogDBError(w, r, "admin: update post", err)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/posts/{id}/publish                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePostPublish(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "/admin/posts")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse publish form", err, "Invalid form data.", "/admin/posts")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	publish := r.PostFormValue("published") == "true"
	if err := h.Posts.SetPublished(ctx, id, publish); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: set post published", err)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/posts/{id}/delete  (admin only)                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePostDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only administrators can delete posts.", "/admin/posts")
	if !res.OK {
		return
	}
	id, ok := h.pathID(w, r, "/admin/posts")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Posts.Delete(ctx, id); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: delete post", err)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}
