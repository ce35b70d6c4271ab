// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/convert"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for post operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with post endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listPosts)
	router.Get("/{identifier}", handler.getPost)

	// ## Editorial (editor-and-above)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRole(sec.RoleEditor))

		r.Post("/", handler.createPost)
		r.Route("/{id}", func(subRouter chi.Router) {
			subRouter.Patch("/", handler.updatePost)
			subRouter.Post("/publish", handler.publishPost)
			subRouter.Delete("/", handler.deletePost)
		})
	})

	return router
}

// # Post Endpoints

/*
GET /api/v1/posts.

Description: Retrieves a paginated list of posts.
Supports searching by title and filtering by status or featured flag.

Request:
  - q: string (Title search)
  - status: string (draft | published)
  - featured: bool
  - limit: int
  - page: int

Response:
  - 200: []Post: Paginated list
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query: queryParams.Get("q"),
	}

	if status := queryParams.Get("status"); status != "" {
		value := Status(status)
		filter.Status = &value
	}

	if featured := queryParams.Get("featured"); featured != "" {
		value := convert.ToBool(featured)
		filter.Featured = &value
	}

	posts, total, err := handler.service.ListPosts(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/posts/{identifier}.

Description: Retrieves a post using its ObjectID or unique slug.

Request:
  - identifier: string (ObjectID hex or slug)

Response:
  - 200: Post: Success
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	post, err := handler.service.GetPost(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
POST /api/v1/posts.

Description: Creates a post. Slugs are generated from the title when absent
and deduplicated with numeric suffixes. The new post is immediately offered
to the automatic collections.

Request (Body):
  - Post JSON object

Response:
  - 201: Post: Created object
  - 400: ErrInvalidJSON/Validation: Invalid input data
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePost(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PATCH /api/v1/posts/{id}.

Description: Updates a post and re-syncs automatic collection membership.

Request:
  - id: string (ObjectID hex)
  - body: Post (JSON)

Response:
  - 200: Post: Updated entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "id")

	v := &validate.Validator{}
	v.ObjectID("id", postID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = postID

	if err := handler.service.UpdatePost(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, input)
}

/*
POST /api/v1/posts/{id}/publish.

Description: Transitions a draft to published, stamping the publish time.

Request:
  - id: string (ObjectID hex)

Response:
  - 200: Post: The published entity
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) publishPost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "id")

	post, err := handler.service.PublishPost(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
DELETE /api/v1/posts/{id}.

Description: Soft-deletes a post and strips it from every collection.

Request:
  - id: string (ObjectID hex)

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "id")

	if err := handler.service.DeletePost(request.Context(), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
