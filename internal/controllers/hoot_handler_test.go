package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"hoot-api/dto"
	"hoot-api/internal/controllers"
	"hoot-api/internal/middleware"
	"hoot-api/internal/models"
	"hoot-api/internal/routes"
	"hoot-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testSecret = "handler-test-secret"

// memHootStore is an in-memory stand-in for the Mongo hoot repository.
type memHootStore struct {
	mu    sync.Mutex
	hoots map[bson.ObjectID]*models.Hoot
	now   time.Time
}

func newMemHootStore() *memHootStore {
	return &memHootStore{
		hoots: map[bson.ObjectID]*models.Hoot{},
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memHootStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func cloneHoot(h *models.Hoot) *models.Hoot {
	cp := *h
	cp.Comments = append([]models.Comment{}, h.Comments...)
	return &cp
}

func (m *memHootStore) Insert(_ context.Context, h *models.Hoot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = bson.NewObjectID()
	now := m.tick()
	h.CreatedAt, h.UpdatedAt = now, now
	m.hoots[h.ID] = cloneHoot(h)
	return nil
}

func (m *memHootStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Hoot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hoots[id]; ok {
		return cloneHoot(h), nil
	}
	return nil, nil
}

func (m *memHootStore) FindAllNewestFirst(_ context.Context) ([]models.Hoot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Hoot, 0, len(m.hoots))
	for _, h := range m.hoots {
		out = append(out, *cloneHoot(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memHootStore) Update(_ context.Context, id bson.ObjectID, upd models.HootUpdate) (*models.Hoot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hoots[id]
	if !ok {
		return nil, nil
	}
	if upd.Title != nil {
		h.Title = *upd.Title
	}
	if upd.Text != nil {
		h.Text = *upd.Text
	}
	if upd.Category != nil {
		h.Category = *upd.Category
	}
	h.UpdatedAt = m.tick()
	return cloneHoot(h), nil
}

func (m *memHootStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hoots[id]; !ok {
		return false, nil
	}
	delete(m.hoots, id)
	return true, nil
}

func (m *memHootStore) PushComment(_ context.Context, hootID bson.ObjectID, c *models.Comment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hoots[hootID]
	if !ok {
		return false, nil
	}
	h.Comments = append(h.Comments, *c)
	h.UpdatedAt = m.tick()
	return true, nil
}

// memUserStore backs both the service's author lookups and the principal
// middleware.
type memUserStore struct {
	users map[bson.ObjectID]models.User
}

func (m *memUserStore) FindManyByIDs(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.User, error) {
	out := map[bson.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

type testEnv struct {
	app   *fiber.App
	alice *models.User
	bob   *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	alice := &models.User{ID: bson.NewObjectID(), Username: "alice", Email: "alice@example.com"}
	bob := &models.User{ID: bson.NewObjectID(), Username: "bob", Email: "bob@example.com"}

	users := &memUserStore{users: map[bson.ObjectID]models.User{
		alice.ID: *alice,
		bob.ID:   *bob,
	}}
	hoots := newMemHootStore()

	app := fiber.New()
	app.Use(middleware.RequireJWT(testSecret))
	app.Use(middleware.InjectPrincipal(users))
	routes.SetupHootRoutes(app, &controllers.HootHandler{Svc: services.NewHootService(hoots, users)})

	return &testEnv{app: app, alice: alice, bob: bob}
}

func (e *testEnv) token(t *testing.T, u *models.User) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": u.ID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path string, as *models.User, body any) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(t, as))
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out.Bytes()
}

func (e *testEnv) createHoot(t *testing.T, as *models.User, title string) dto.HootResponse {
	t.Helper()
	status, body := e.do(t, "POST", "/hoots", as, dto.CreateHootReq{
		Title: title, Text: "some text", Category: "News",
	})
	require.Equal(t, fiber.StatusCreated, status)
	var h dto.HootResponse
	require.NoError(t, json.Unmarshal(body, &h))
	return h
}

func TestHootsRequireAuth(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, "GET", "/hoots", nil, nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCreateHoot(t *testing.T) {
	e := newTestEnv(t)

	h := e.createHoot(t, e.alice, "first hoot")
	require.Equal(t, "first hoot", h.Title)
	require.Equal(t, e.alice.ID, h.Author.ID)
	require.Equal(t, "alice", h.Author.Username)
	require.Empty(t, h.Comments)
}

func TestCreateHootBadCategory(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, "POST", "/hoots", e.alice, dto.CreateHootReq{
		Title: "t", Text: "x", Category: "Gossip",
	})
	require.Equal(t, fiber.StatusBadRequest, status)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Contains(t, envelope, "error")
}

func TestListHootsNewestFirst(t *testing.T) {
	e := newTestEnv(t)

	for i := 0; i < 3; i++ {
		e.createHoot(t, e.alice, fmt.Sprintf("hoot %d", i))
	}

	status, body := e.do(t, "GET", "/hoots", e.bob, nil)
	require.Equal(t, fiber.StatusOK, status)

	var list []dto.HootResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 3)
	require.Equal(t, "hoot 2", list[0].Title)
	require.Equal(t, "hoot 0", list[2].Title)
}

func TestGetHootInvalidID(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, "GET", "/hoots/not-a-hex-id", e.alice, nil)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetHootNotFound(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, "GET", "/hoots/"+bson.NewObjectID().Hex(), e.alice, nil)
	require.Equal(t, fiber.StatusNotFound, status)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Equal(t, "hoot not found", envelope["error"])
}

func TestUpdateHootForbidden(t *testing.T) {
	e := newTestEnv(t)

	h := e.createHoot(t, e.alice, "mine")

	title := "stolen"
	status, body := e.do(t, "PUT", "/hoots/"+h.ID.Hex(), e.bob, dto.UpdateHootReq{Title: &title})
	require.Equal(t, fiber.StatusForbidden, status)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Contains(t, envelope, "error")

	// unchanged
	status, getBody := e.do(t, "GET", "/hoots/"+h.ID.Hex(), e.alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	var got dto.HootResponse
	require.NoError(t, json.Unmarshal(getBody, &got))
	require.Equal(t, "mine", got.Title)
}

func TestUpdateHootByOwner(t *testing.T) {
	e := newTestEnv(t)

	h := e.createHoot(t, e.alice, "before")

	title := "after"
	status, body := e.do(t, "PUT", "/hoots/"+h.ID.Hex(), e.alice, dto.UpdateHootReq{Title: &title})
	require.Equal(t, fiber.StatusOK, status)

	var got dto.HootResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "after", got.Title)
	require.Equal(t, e.alice.ID, got.Author.ID)
}

func TestDeleteHoot(t *testing.T) {
	e := newTestEnv(t)

	h := e.createHoot(t, e.alice, "ephemeral")

	status, _ := e.do(t, "DELETE", "/hoots/"+h.ID.Hex(), e.bob, nil)
	require.Equal(t, fiber.StatusForbidden, status)

	status, body := e.do(t, "DELETE", "/hoots/"+h.ID.Hex(), e.alice, nil)
	require.Equal(t, fiber.StatusOK, status)

	var got dto.HootResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "ephemeral", got.Title)

	status, _ = e.do(t, "GET", "/hoots/"+h.ID.Hex(), e.alice, nil)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestAddComment(t *testing.T) {
	e := newTestEnv(t)

	h := e.createHoot(t, e.alice, "discuss")

	status, body := e.do(t, "POST", "/hoots/"+h.ID.Hex()+"/comments", e.bob, dto.CreateCommentReq{Text: "hot take"})
	require.Equal(t, fiber.StatusCreated, status)

	var c dto.CommentResponse
	require.NoError(t, json.Unmarshal(body, &c))
	require.Equal(t, "hot take", c.Text)
	require.Equal(t, e.bob.ID, c.Author.ID)
	require.Equal(t, "bob", c.Author.Username)

	status, getBody := e.do(t, "GET", "/hoots/"+h.ID.Hex(), e.alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	var got dto.HootResponse
	require.NoError(t, json.Unmarshal(getBody, &got))
	require.Len(t, got.Comments, 1)
	require.Equal(t, "bob", got.Comments[0].Author.Username)
}

func TestAddCommentMissingHoot(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, "POST", "/hoots/"+bson.NewObjectID().Hex()+"/comments", e.bob, dto.CreateCommentReq{Text: "x"})
	require.Equal(t, fiber.StatusNotFound, status)
}
