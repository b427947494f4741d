package service_test

import (
	"context"
	"sort"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/repo"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type memStore struct {
	users  map[string]model.User
	labels map[uint]model.Label
	tasks  map[uint]model.Task
	nextID uint

	saveStatusesErr error
	// racer is inserted right before the next CreateUser, as if another
	// registration committed between the lookup and the insert.
	racer *model.User
	lastList        model.ListParams
	savedStatuses   int
	txCount         int
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]model.User{},
		labels: map[uint]model.Label{},
		tasks:  map[uint]model.Task{},
	}
}

func (m *memStore) WithTx(_ context.Context, fn func(tx repo.Store) error) error {
	m.txCount++
	return fn(m)
}

func (m *memStore) CreateUser(_ context.Context, u *model.User) error {
	if m.racer != nil {
		m.users[m.racer.ID] = *m.racer
		m.racer = nil
	}
	for _, v := range m.users {
		if v.Username == u.Username || v.Email == u.Email {
			return customErrors.ErrAlreadyExists
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return model.User{}, customErrors.ErrNotFound
	}
	return u, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	for _, v := range m.users {
		if v.Username == username {
			return v, nil
		}
	}
	return model.User{}, customErrors.ErrNotFound
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, v := range m.users {
		if v.Email == email {
			return v, nil
		}
	}
	return model.User{}, customErrors.ErrNotFound
}

func (m *memStore) FindUserByUsernameOrEmail(_ context.Context, username, email string) (model.User, error) {
	for _, v := range m.users {
		if v.Username == username || v.Email == email {
			return v, nil
		}
	}
	return model.User{}, customErrors.ErrNotFound
}

func (m *memStore) UpdateUser(_ context.Context, u *model.User) error {
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return customErrors.ErrNotFound
	}
	delete(m.users, id)
	for k, l := range m.labels {
		if l.UserID == id {
			delete(m.labels, k)
		}
	}
	for k, t := range m.tasks {
		if t.UserID == id {
			delete(m.tasks, k)
		}
	}
	return nil
}

func (m *memStore) CreateLabel(_ context.Context, l *model.Label) error {
	m.nextID++
	l.ID = m.nextID
	m.labels[l.ID] = *l
	return nil
}

func (m *memStore) GetLabel(_ context.Context, userID string, id uint) (model.Label, error) {
	l, ok := m.labels[id]
	if !ok || l.UserID != userID {
		return model.Label{}, customErrors.ErrNotFound
	}
	return l, nil
}

func (m *memStore) ListLabels(_ context.Context, userID string, p model.ListParams) ([]model.Label, error) {
	m.lastList = p
	var out []model.Label
	for _, l := range m.labels {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateLabel(_ context.Context, l *model.Label) error {
	m.labels[l.ID] = *l
	return nil
}

func (m *memStore) DeleteLabel(_ context.Context, userID string, id uint) error {
	l, ok := m.labels[id]
	if !ok || l.UserID != userID {
		return customErrors.ErrNotFound
	}
	delete(m.labels, id)
	for k, t := range m.tasks {
		if t.LabelID != nil && *t.LabelID == id {
			t.LabelID = nil
			m.tasks[k] = t
		}
	}
	return nil
}

func (m *memStore) CreateTask(_ context.Context, t *model.Task) error {
	m.nextID++
	t.ID = m.nextID
	m.tasks[t.ID] = *t
	return nil
}

func (m *memStore) GetTask(_ context.Context, userID string, id uint) (model.Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, customErrors.ErrNotFound
	}
	return t, nil
}

func (m *memStore) ListTasks(_ context.Context, userID string, p model.ListParams) ([]model.Task, error) {
	m.lastList = p
	var out []model.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateTask(_ context.Context, t *model.Task) error {
	m.tasks[t.ID] = *t
	return nil
}

func (m *memStore) SaveStatuses(_ context.Context, tasks []model.Task) error {
	if m.saveStatusesErr != nil {
		return m.saveStatusesErr
	}
	for _, t := range tasks {
		stored := m.tasks[t.ID]
		stored.Status = t.Status
		m.tasks[t.ID] = stored
		m.savedStatuses++
	}
	return nil
}

func (m *memStore) DeleteTask(_ context.Context, userID string, id uint) error {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return customErrors.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

// plainHasher keeps service tests fast; argon2id is covered in its own package.
type plainHasher struct{}

func (plainHasher) Hash(raw string) (string, error) { return "h:" + raw, nil }
func (plainHasher) Verify(raw, digest string) bool  { return digest == "h:"+raw }
