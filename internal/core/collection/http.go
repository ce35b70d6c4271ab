// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

/*
Package collection's HTTP layer exposes the admin collection API.

# Routing Strategy

  - Public (v1): Listing and detail views (GET /collections).
  - Restricted: Creation, edits, deletion, and membership changes are
    editor-and-above.

The handler translates between the REST layer and the [Service] domain.
*/
package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for collection operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new collection [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with collection endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listCollections)
	router.Get("/{identifier}", handler.getCollection)

	// ## Editorial (editor-and-above)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRole(sec.RoleEditor))

		r.Post("/", handler.createCollection)
		r.Route("/{id}", func(subRouter chi.Router) {
			subRouter.Patch("/", handler.updateCollection)
			subRouter.Delete("/", handler.deleteCollection)
			subRouter.Route("/posts", func(posts chi.Router) {
				posts.Post("/", handler.addPost)
				posts.Delete("/{postID}", handler.removePost)
			})
		})
	})

	return router
}

// # Request Payloads

// createRequest is the JSON body for POST /collections.
type createRequest struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Type         Type   `json:"type"`
	Filter       string `json:"filter"`
	FeatureImage string `json:"feature_image"`
	Deletable    *bool  `json:"deletable"`
	PostIDs      []struct {
		ID string `json:"id"`
	} `json:"posts"`
}

// updateRequest is the JSON body for PATCH /collections/{id}. Absent fields
// are left unchanged; explicit empty strings clear the field.
type updateRequest struct {
	Title        *string `json:"title"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Type         *Type   `json:"type"`
	Filter       *string `json:"filter"`
	FeatureImage *string `json:"feature_image"`
}

// addPostRequest is the JSON body for POST /collections/{id}/posts.
type addPostRequest struct {
	ID         string         `json:"id"`
	Position   *int           `json:"position"`
	Attributes map[string]any `json:"attributes"`
}

// # Collection Endpoints

/*
GET /api/v1/collections.

Description: Retrieves a paginated list of collections.
Supports searching by title and filtering by type.

Request:
  - q: string (Title search)
  - type: string (manual | automatic)
  - limit: int
  - page: int

Response:
  - 200: []Collection: Paginated list
*/
func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query: queryParams.Get("q"),
	}

	if collectionType := queryParams.Get("type"); collectionType != "" {
		value := Type(collectionType)
		filter.Type = &value
	}

	collections, total, err := handler.service.ListCollections(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, collections, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/collections/{identifier}.

Description: Retrieves a collection using its ObjectID or unique slug.

Request:
  - identifier: string (ObjectID hex or slug)

Response:
  - 200: Collection: Success
  - 404: ErrNotFound: Collection not found
*/
func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	c, err := handler.service.GetCollection(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, c)
}

/*
POST /api/v1/collections.

Description: Creates a collection. Slugs are generated from the title when
absent and deduplicated with numeric suffixes. Automatic collections are
populated immediately from their filter.

Request (Body):
  - Collection JSON object

Response:
  - 201: Collection: Created object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: Conflict: Slug is already in use
*/
func (handler *Handler) createCollection(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	domainInput := Input{
		Title:        input.Title,
		Slug:         input.Slug,
		Description:  input.Description,
		Type:         input.Type,
		Filter:       input.Filter,
		FeatureImage: input.FeatureImage,
		Deletable:    input.Deletable,
	}
	for _, post := range input.PostIDs {
		domainInput.Posts = append(domainInput.Posts, Item{ID: post.ID})
	}

	c, err := handler.service.CreateCollection(request.Context(), domainInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, c)
}

/*
PATCH /api/v1/collections/{id}.

Description: Applies a partial update. The automatic/filter invariant is
enforced against the resulting state; a rejected edit changes nothing.

Request:
  - id: string (ObjectID hex)
  - body: Collection Partial (JSON)

Response:
  - 200: Collection: Updated entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Collection not found
  - 409: Conflict: Slug is already in use
*/
func (handler *Handler) updateCollection(writer http.ResponseWriter, request *http.Request) {
	collectionID := requestutil.Param(request, "id")

	v := &validate.Validator{}
	v.ObjectID("id", collectionID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.UpdateCollection(request.Context(), collectionID, EditInput{
		Title:        input.Title,
		Slug:         input.Slug,
		Description:  input.Description,
		Type:         input.Type,
		Filter:       input.Filter,
		FeatureImage: input.FeatureImage,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, c)
}

/*
DELETE /api/v1/collections/{id}.

Description: Soft-deletes a collection. Built-in collections flagged
non-deletable refuse with 403.

Request:
  - id: string (ObjectID hex)

Response:
  - 204: No Content: Success
  - 403: ErrForbidden: Collection cannot be deleted
  - 404: ErrNotFound: Collection not found
*/
func (handler *Handler) deleteCollection(writer http.ResponseWriter, request *http.Request) {
	collectionID := requestutil.Param(request, "id")

	if err := handler.service.DeleteCollection(request.Context(), collectionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Membership Endpoints

/*
POST /api/v1/collections/{id}/posts.

Description: Adds a post to a manual collection (optionally at a position),
or offers it to an automatic collection where the filter decides. A filter
non-match returns the unchanged collection.

Request (Body):
  - { "id": "string", "position": int?, "attributes": { ... } }

Response:
  - 200: Collection: The collection after the operation
  - 400: ErrInvalidJSON/Validation: Invalid payload
  - 404: ErrNotFound: Collection not found
*/
func (handler *Handler) addPost(writer http.ResponseWriter, request *http.Request) {
	collectionID := requestutil.Param(request, "id")

	var input addPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.ObjectID("id", input.ID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item := Item{ID: input.ID, Attributes: input.Attributes}

	c, _, err := handler.service.AddPost(request.Context(), collectionID, item, input.Position)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, c)
}

/*
DELETE /api/v1/collections/{id}/posts/{postID}.

Description: Removes a post from a collection. Absent members are a no-op.

Request:
  - id: string (Collection ObjectID hex)
  - postID: string (Post ObjectID hex)

Response:
  - 200: Collection: The collection after the removal
  - 404: ErrNotFound: Collection not found
*/
func (handler *Handler) removePost(writer http.ResponseWriter, request *http.Request) {
	collectionID := requestutil.Param(request, "id")
	postID := requestutil.Param(request, "postID")

	c, err := handler.service.RemovePost(request.Context(), collectionID, postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, c)
}
