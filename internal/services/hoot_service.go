package services

import (
	"context"
	"errors"
	"time"

	"hoot-api/dto"
	"hoot-api/internal/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrHootNotFound = errors.New("hoot not found")
	ErrForbidden    = errors.New("forbidden")
)

var validate = validator.New()

// HootStore is the persistence surface the service needs. Implemented by
// repository.HootRepository; tests plug in an in-memory fake.
type HootStore interface {
	Insert(ctx context.Context, h *models.Hoot) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Hoot, error)
	FindAllNewestFirst(ctx context.Context) ([]models.Hoot, error)
	Update(ctx context.Context, id bson.ObjectID, upd models.HootUpdate) (*models.Hoot, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
	PushComment(ctx context.Context, hootID bson.ObjectID, c *models.Comment) (bool, error)
}

// UserStore resolves author references to full users.
type UserStore interface {
	FindManyByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.User, error)
}

// HootService enforces ownership and shapes every hoot/comment response so
// the author field always carries the full profile instead of a bare id.
type HootService struct {
	Hoots HootStore
	Users UserStore
}

func NewHootService(hoots HootStore, users UserStore) *HootService {
	return &HootService{Hoots: hoots, Users: users}
}

// Create inserts a new hoot authored by the principal. Any author value a
// caller might smuggle into the payload is irrelevant: the DTO has no author
// field and the principal id is written here unconditionally.
func (s *HootService) Create(ctx context.Context, principal *models.User, req dto.CreateHootReq) (*dto.HootResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	hoot := &models.Hoot{
		Title:    req.Title,
		Text:     req.Text,
		Category: req.Category,
		Author:   principal.ID,
		Comments: []models.Comment{},
	}
	if err := s.Hoots.Insert(ctx, hoot); err != nil {
		return nil, err
	}

	// The principal's profile is already in memory from authentication, so
	// no lookup is needed to shape the response.
	resp := shapeHoot(hoot, map[bson.ObjectID]models.User{principal.ID: *principal})
	return &resp, nil
}

// List returns all hoots, newest first, with every author reference expanded.
func (s *HootService) List(ctx context.Context) ([]dto.HootResponse, error) {
	hoots, err := s.Hoots.FindAllNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.resolveAuthors(ctx, hoots)
	if err != nil {
		return nil, err
	}

	out := make([]dto.HootResponse, 0, len(hoots))
	for i := range hoots {
		out = append(out, shapeHoot(&hoots[i], users))
	}
	return out, nil
}

// Get returns one hoot with the hoot author and every comment author expanded.
func (s *HootService) Get(ctx context.Context, id bson.ObjectID) (*dto.HootResponse, error) {
	hoot, err := s.Hoots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hoot == nil {
		return nil, ErrHootNotFound
	}

	users, err := s.resolveAuthors(ctx, []models.Hoot{*hoot})
	if err != nil {
		return nil, err
	}
	resp := shapeHoot(hoot, users)
	return &resp, nil
}

// Update applies the provided fields to a hoot the principal owns. The
// ownership check runs after the not-found check so a missing hoot is
// reported as such instead of blowing up on a nil document.
func (s *HootService) Update(ctx context.Context, principal *models.User, id bson.ObjectID, req dto.UpdateHootReq) (*dto.HootResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	hoot, err := s.Hoots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hoot == nil {
		return nil, ErrHootNotFound
	}
	if hoot.Author != principal.ID {
		return nil, ErrForbidden
	}

	updated, err := s.Hoots.Update(ctx, id, models.HootUpdate{
		Title:    req.Title,
		Text:     req.Text,
		Category: req.Category,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// deleted between the load and the update
		return nil, ErrHootNotFound
	}

	users, err := s.resolveAuthors(ctx, []models.Hoot{*updated})
	if err != nil {
		return nil, err
	}
	users[principal.ID] = *principal
	resp := shapeHoot(updated, users)
	return &resp, nil
}

// Delete removes a hoot the principal owns and returns its last known state.
// Embedded comments go with the document; nothing cascades.
func (s *HootService) Delete(ctx context.Context, principal *models.User, id bson.ObjectID) (*dto.HootResponse, error) {
	hoot, err := s.Hoots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hoot == nil {
		return nil, ErrHootNotFound
	}
	if hoot.Author != principal.ID {
		return nil, ErrForbidden
	}

	ok, err := s.Hoots.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHootNotFound
	}

	users, err := s.resolveAuthors(ctx, []models.Hoot{*hoot})
	if err != nil {
		return nil, err
	}
	users[principal.ID] = *principal
	resp := shapeHoot(hoot, users)
	return &resp, nil
}

// AddComment appends a comment authored by the principal to the parent hoot.
// No ownership check: anyone authenticated may comment.
func (s *HootService) AddComment(ctx context.Context, principal *models.User, hootID bson.ObjectID, req dto.CreateCommentReq) (*dto.CommentResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        bson.NewObjectID(),
		Text:      req.Text,
		Author:    principal.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ok, err := s.Hoots.PushComment(ctx, hootID, comment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHootNotFound
	}

	resp := shapeComment(comment, map[bson.ObjectID]models.User{principal.ID: *principal})
	return &resp, nil
}

// resolveAuthors batches every author reference (hoots and their comments)
// into a single lookup.
func (s *HootService) resolveAuthors(ctx context.Context, hoots []models.Hoot) (map[bson.ObjectID]models.User, error) {
	seen := map[bson.ObjectID]struct{}{}
	var ids []bson.ObjectID
	add := func(id bson.ObjectID) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for i := range hoots {
		add(hoots[i].Author)
		for j := range hoots[i].Comments {
			add(hoots[i].Comments[j].Author)
		}
	}
	return s.Users.FindManyByIDs(ctx, ids)
}

func shapeHoot(h *models.Hoot, users map[bson.ObjectID]models.User) dto.HootResponse {
	comments := make([]dto.CommentResponse, 0, len(h.Comments))
	for i := range h.Comments {
		comments = append(comments, shapeComment(&h.Comments[i], users))
	}
	return dto.HootResponse{
		ID:        h.ID,
		Title:     h.Title,
		Text:      h.Text,
		Category:  h.Category,
		Author:    profileFor(h.Author, users),
		Comments:  comments,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func shapeComment(c *models.Comment, users map[bson.ObjectID]models.User) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		Author:    profileFor(c.Author, users),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// profileFor falls back to a bare-id profile if the referenced user no longer
// exists, so responses keep their shape.
func profileFor(id bson.ObjectID, users map[bson.ObjectID]models.User) dto.UserProfile {
	if u, ok := users[id]; ok {
		return dto.ProfileOf(&u)
	}
	return dto.UserProfile{ID: id}
}
