package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"eduxchange/internal/domain/account"
	"eduxchange/internal/domain/profile"
	domain "eduxchange/internal/domain/resource"
	"eduxchange/internal/infrastructure/mq"
)

// memResources mimics the resources table, including its atomic counters.
type memResources struct {
	mu        sync.Mutex
	rows      map[domain.ID]*domain.Resource
	now       func() time.Time
	createErr error
	calls     int
}

func newMemResources() *memResources {
	t := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return &memResources{
		rows: make(map[domain.ID]*domain.Resource),
		now: func() time.Time {
			t = t.Add(time.Second)
			return t
		},
	}
}

func clone(r *domain.Resource) *domain.Resource {
	c := *r
	c.Tags = append(domain.Tags(nil), r.Tags...)
	return &c
}

func (m *memResources) CreateResource(_ context.Context, req *domain.Resource) (*domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	r := clone(req)
	r.ID = uuid.New()
	r.CreatedAt = m.now()
	r.UpdatedAt = r.CreatedAt
	m.rows[r.ID] = r
	return clone(r), nil
}

func (m *memResources) FetchResourceByID(_ context.Context, id domain.ID) (*domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return clone(r), nil
}

func (m *memResources) FetchUserResources(_ context.Context, userID uuid.UUID, typ *domain.Type) (domain.Resources, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out domain.Resources
	for _, r := range m.rows {
		if r.UserID != userID || (typ != nil && r.Type != *typ) {
			continue
		}
		out = append(out, clone(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memResources) UpdateResource(_ context.Context, req *domain.Resource) (*domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	r, ok := m.rows[req.ID]
	if !ok || r.UserID != req.UserID {
		return nil, nil
	}
	r.Title = req.Title
	r.Description = req.Description
	r.Subject = req.Subject
	r.CourseCode = req.CourseCode
	r.ExternalLink = req.ExternalLink
	r.IsPublic = req.IsPublic
	r.Tags = append(domain.Tags(nil), req.Tags...)
	r.UpdatedAt = m.now()
	return clone(r), nil
}

func (m *memResources) DeleteResource(_ context.Context, id domain.ID, userID uuid.UUID) (*domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	delete(m.rows, id)
	return r, nil
}

func (m *memResources) bump(id domain.ID, viewer uuid.UUID, field func(r *domain.Resource)) *domain.Resource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	r, ok := m.rows[id]
	if !ok || !r.VisibleTo(viewer) {
		return nil
	}
	field(r)
	return clone(r)
}

func (m *memResources) IncrementViewCount(_ context.Context, id domain.ID, viewer uuid.UUID) (*domain.Resource, error) {
	return m.bump(id, viewer, func(r *domain.Resource) { r.ViewCount++ }), nil
}

func (m *memResources) IncrementDownloadCount(_ context.Context, id domain.ID, viewer uuid.UUID) (*domain.Resource, error) {
	return m.bump(id, viewer, func(r *domain.Resource) { r.DownloadCount++ }), nil
}

func (m *memResources) CountUserResources(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rows {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeObjects struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	types     map[string]string
	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{blobs: map[string][]byte{}, types: map[string]string{}}
}

const fakeBase = "https://cdn.test/resources/"

func (f *fakeObjects) Upload(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjects) PublicURL(key string) string { return fakeBase + key }

func (f *fakeObjects) KeyFromURL(u string) (string, bool) {
	if len(u) <= len(fakeBase) || u[:len(fakeBase)] != fakeBase {
		return "", false
	}
	return u[len(fakeBase):], true
}

type fakePublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (f *fakePublisher) Publish(_ context.Context, e mq.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakePublisher) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Action
	}
	return out
}

type fakeAccounts struct {
	byEmail   map[string]*account.Account
	createErr error
}

func newFakeAccounts() *fakeAccounts { return &fakeAccounts{byEmail: map[string]*account.Account{}} }

func (f *fakeAccounts) CreateAccount(_ context.Context, email, hash string) (*account.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[email]; ok {
		return nil, errors.New("duplicate")
	}
	a := &account.Account{ID: uuid.New(), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	f.byEmail[email] = a
	return a, nil
}

func (f *fakeAccounts) FetchAccountByEmail(_ context.Context, email string) (*account.Account, error) {
	return f.byEmail[email], nil
}

func (f *fakeAccounts) FetchAccountByID(_ context.Context, id account.ID) (*account.Account, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

type fakeProfiles struct {
	rows      map[profile.ID]profile.Profile
	upsertErr error
}

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{rows: map[profile.ID]profile.Profile{}} }

func (f *fakeProfiles) FetchProfileByID(_ context.Context, id profile.ID) (*profile.Profile, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfiles) UpsertProfile(_ context.Context, req profile.Profile) (*profile.Profile, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.rows[req.ID] = req
	return &req, nil
}

// newFileHeader builds a real multipart file header. An empty contentType
// keeps the writer's application/octet-stream default.
func newFileHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}
