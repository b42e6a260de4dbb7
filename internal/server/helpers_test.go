package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/brand-ad-studio/internal/adcopy"
	"github.com/jonathan/brand-ad-studio/internal/batch"
	"github.com/jonathan/brand-ad-studio/internal/config"
	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/guidelines"
	"github.com/jonathan/brand-ad-studio/internal/imagegen"
	"github.com/jonathan/brand-ad-studio/internal/server/ratelimit"
	"github.com/jonathan/brand-ad-studio/internal/storage"
	"github.com/jonathan/brand-ad-studio/internal/types"
	"github.com/jonathan/brand-ad-studio/internal/uploads"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memStore is an in-memory Store
type memStore struct {
	mu           sync.Mutex
	brands       map[uuid.UUID]*types.Brand
	guidelines   map[uuid.UUID]*types.BrandGuideline
	instructions map[uuid.UUID]*types.BrandInstructions
	assets       map[uuid.UUID]*types.Asset
	admins       map[string]*types.Admin
	hashes       map[string]string
	pingErr      error
}

func newMemStore() *memStore {
	return &memStore{
		brands:       map[uuid.UUID]*types.Brand{},
		guidelines:   map[uuid.UUID]*types.BrandGuideline{},
		instructions: map[uuid.UUID]*types.BrandInstructions{},
		assets:       map[uuid.UUID]*types.Asset{},
		admins:       map[string]*types.Admin{},
		hashes:       map[string]string{},
	}
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) CreateBrand(_ context.Context, b *types.Brand) (*types.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *b
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.brands[c.ID] = &c
	return &c, nil
}

func (m *memStore) GetBrand(_ context.Context, id uuid.UUID) (*types.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brands[id], nil
}

func (m *memStore) ListBrands(context.Context) ([]types.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Brand
	for _, b := range m.brands {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memStore) UpdateBrand(_ context.Context, b *types.Brand) (*types.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[b.ID]; !ok {
		return nil, db.ErrBrandNotFound
	}
	c := *b
	m.brands[b.ID] = &c
	return &c, nil
}

func (m *memStore) DeleteBrand(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[id]; !ok {
		return db.ErrBrandNotFound
	}
	delete(m.brands, id)
	delete(m.guidelines, id)
	delete(m.instructions, id)
	return nil
}

func (m *memStore) GetGuideline(_ context.Context, brandID uuid.UUID) (*types.BrandGuideline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guidelines[brandID]
	if !ok {
		return nil, nil
	}
	c := *g
	return &c, nil
}

func (m *memStore) SaveGuideline(_ context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *g
	c.Version = 1
	if prev, ok := m.guidelines[g.BrandID]; ok {
		c.Version = prev.Version + 1
	}
	m.guidelines[g.BrandID] = &c
	return &c, nil
}

func (m *memStore) UpdateGuideline(_ context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.guidelines[g.BrandID]
	if !ok {
		return nil, db.ErrGuidelineNotFound
	}
	c := *g
	c.Version = prev.Version + 1
	m.guidelines[g.BrandID] = &c
	return &c, nil
}

func (m *memStore) DeleteGuideline(_ context.Context, brandID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.guidelines[brandID]; !ok {
		return db.ErrGuidelineNotFound
	}
	delete(m.guidelines, brandID)
	return nil
}

func (m *memStore) GetOrCreateInstructions(_ context.Context, brandID uuid.UUID) (*types.BrandInstructions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.instructions[brandID]
	if !ok {
		in = db.DefaultInstructions(brandID)
		m.instructions[brandID] = in
	}
	c := *in
	return &c, nil
}

func (m *memStore) SaveInstructions(_ context.Context, in *types.BrandInstructions) (*types.BrandInstructions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *in
	c.Version++
	m.instructions[in.BrandID] = &c
	return &c, nil
}

func (m *memStore) CreateAsset(_ context.Context, a *types.Asset) (*types.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *a
	c.ID = uuid.New()
	m.assets[c.ID] = &c
	return &c, nil
}

func (m *memStore) ListAssets(_ context.Context, brandID uuid.UUID, kind types.AssetKind) ([]types.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Asset
	for _, a := range m.assets {
		if a.BrandID == brandID && (kind == "" || a.Kind == kind) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) GetAsset(_ context.Context, id uuid.UUID) (*types.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assets[id], nil
}

func (m *memStore) DeleteAsset(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[id]; !ok {
		return db.ErrAssetNotFound
	}
	delete(m.assets, id)
	return nil
}

func (m *memStore) CreateAdmin(_ context.Context, email, name, hash string) (*types.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[email]; ok {
		return nil, db.ErrAdminExists
	}
	a := &types.Admin{ID: uuid.New(), Email: email, Name: name, CreatedAt: time.Now()}
	m.admins[email] = a
	m.hashes[email] = hash
	return a, nil
}

func (m *memStore) GetAdminByEmail(_ context.Context, email string) (*types.Admin, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admins[email], m.hashes[email], nil
}

func (m *memStore) addBrand(name string) *types.Brand {
	b, _ := m.CreateBrand(context.Background(), &types.Brand{Name: name, PrimaryColor: "#8B1538"})
	return b
}

// fakeCopy records the resolved prompt and returns a fixed result
type fakeCopy struct {
	result     *adcopy.Result
	err        error
	lastPrompt string
	lastCtx    *types.GenerationContext
}

func (f *fakeCopy) Generate(_ context.Context, gc *types.GenerationContext, task types.TaskType, userPrompt string) (*adcopy.Result, error) {
	f.lastPrompt = userPrompt
	f.lastCtx = gc
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &adcopy.Result{TaskType: task, Text: "ok", State: adcopy.StateValid, Attempts: 1}, nil
}

// fakeImages returns one image per call, failing on the calls listed in failOn
type fakeImages struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	failOn  map[int]bool
	err     error
}

func (f *fakeImages) Generate(_ context.Context, prompt string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	if f.failOn[f.calls] {
		return nil, &imagegen.APIError{Message: "boom", StatusCode: 500}
	}
	return []string{"data:image/png;base64,AAAA"}, nil
}

type fakeExtractor struct {
	text string
}

func (f *fakeExtractor) ExtractText(_ context.Context, r io.Reader, _ string) (string, error) {
	_, _ = io.ReadAll(r)
	return f.text, nil
}

func (f *fakeExtractor) SummarizeDesign(_ context.Context, r io.Reader, _ string) (string, error) {
	_, _ = io.ReadAll(r)
	return "", nil
}

type testEnv struct {
	handler http.Handler
	store   *memStore
	copy    *fakeCopy
	images  *fakeImages
	objects *storage.MemoryStore
	jwt     *JWTService
	auth    *AuthService
}

type envOption func(*Deps)

func withLimiter(cfg *ratelimit.Config) envOption {
	return func(d *Deps) { d.Limiter = ratelimit.NewLimiter(cfg) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	store := newMemStore()
	copyGen := &fakeCopy{}
	images := &fakeImages{failOn: map[int]bool{}}
	objects := storage.NewMemoryStore()
	parser := guidelines.NewParser(nil, nil)
	noSleep := func(context.Context, time.Duration) error { return nil }
	jwtService := NewJWTService(&config.JWTConfig{Secret: testSecret, Issuer: "test", Expiration: time.Hour})
	auth := NewAuthService(store, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})

	deps := Deps{
		Store:   store,
		Copy:    copyGen,
		Images:  images,
		Batch:   batch.New(images, noSleep, nil),
		Parser:  parser,
		Uploads: uploads.NewService(store, objects, &fakeExtractor{text: "Primary Colors: #8B1538\nFont: Lato"}, parser, uploads.NewMemoryTracker(), nil),
		Objects: objects,
		Auth:    auth,
		JWT:     jwtService,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	s, err := New(Options{Port: 0}, deps)
	require.NoError(t, err)
	t.Cleanup(s.deps.Limiter.Stop)

	return &testEnv{
		handler: s.Handler(),
		store:   store,
		copy:    copyGen,
		images:  images,
		objects: objects,
		jwt:     jwtService,
		auth:    auth,
	}
}

// adminToken provisions an admin and returns a valid bearer token
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	admin, err := e.auth.CreateAdmin(context.Background(), "ops@example.com", "Ops", "correct horse")
	require.NoError(t, err)
	token, err := e.jwt.GenerateToken(admin)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.RemoteAddr = "192.0.2.1:1234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
