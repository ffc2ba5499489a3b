package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"hoot-api/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func bsonNewID() bson.ObjectID { return bson.NewObjectID() }

// fakeHootStore mimics the Mongo repository over a map. Timestamps are
// strictly increasing per insert so ordering assertions are deterministic.
type fakeHootStore struct {
	mu    sync.Mutex
	hoots map[bson.ObjectID]*models.Hoot
	now   time.Time
}

func newFakeHootStore() *fakeHootStore {
	return &fakeHootStore{
		hoots: map[bson.ObjectID]*models.Hoot{},
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeHootStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func copyHoot(h *models.Hoot) *models.Hoot {
	cp := *h
	cp.Comments = append([]models.Comment{}, h.Comments...)
	return &cp
}

func (f *fakeHootStore) Insert(_ context.Context, h *models.Hoot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	h.ID = bson.NewObjectID()
	now := f.tick()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Comments == nil {
		h.Comments = []models.Comment{}
	}
	f.hoots[h.ID] = copyHoot(h)
	return nil
}

func (f *fakeHootStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Hoot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.hoots[id]
	if !ok {
		return nil, nil
	}
	return copyHoot(h), nil
}

func (f *fakeHootStore) FindAllNewestFirst(_ context.Context) ([]models.Hoot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Hoot, 0, len(f.hoots))
	for _, h := range f.hoots {
		out = append(out, *copyHoot(h))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (f *fakeHootStore) Update(_ context.Context, id bson.ObjectID, upd models.HootUpdate) (*models.Hoot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.hoots[id]
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
	h.UpdatedAt = f.tick()
	return copyHoot(h), nil
}

func (f *fakeHootStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.hoots[id]; !ok {
		return false, nil
	}
	delete(f.hoots, id)
	return true, nil
}

func (f *fakeHootStore) PushComment(_ context.Context, hootID bson.ObjectID, c *models.Comment) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.hoots[hootID]
	if !ok {
		return false, nil
	}
	h.Comments = append(h.Comments, *c)
	h.UpdatedAt = f.tick()
	return true, nil
}

// stored returns the raw stored document for assertions on persisted state.
func (f *fakeHootStore) stored(id bson.ObjectID) *models.Hoot {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.hoots[id]
	if !ok {
		return nil
	}
	return copyHoot(h)
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[bson.ObjectID]models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[bson.ObjectID]models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = bson.NewObjectID()
		}
		f.users[u.ID] = *u
	}
	return f
}

func (f *fakeUserStore) FindManyByIDs(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[bson.ObjectID]models.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u.ID = bson.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.ID] = *u
	return nil
}
