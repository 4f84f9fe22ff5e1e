package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slugpad/slugpad/internal/database"
	"github.com/slugpad/slugpad/internal/dedup"
	"github.com/slugpad/slugpad/internal/document"
	"github.com/slugpad/slugpad/internal/notes"
	"github.com/slugpad/slugpad/internal/session"
	"github.com/slugpad/slugpad/internal/slug"
	"github.com/slugpad/slugpad/internal/theme"
)

var serverDatabaseCounter atomic.Int64

const testQuietPeriod = 20 * time.Millisecond

type testHarness struct {
	handler http.Handler
	store   *notes.Store
	manager *session.Manager
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:server_test_%d?mode=memory&cache=shared", serverDatabaseCounter.Add(1))
	db, err := database.OpenSQLite(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	store, err := notes.NewStore(notes.StoreConfig{
		Database:   db,
		IDProvider: notes.NewUUIDProvider(),
		Themes:     theme.NewPalette(theme.PaletteConfig{}),
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	registry := dedup.NewRegistry(dedup.RegistryConfig{})
	manager, err := session.NewManager(session.ManagerConfig{
		Gateway:     store,
		Registry:    registry,
		QuietPeriod: testQuietPeriod,
		SavedFlash:  40 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("create session manager: %v", err)
	}
	t.Cleanup(manager.Close)

	handler, err := NewHTTPHandler(Dependencies{
		Sessions: manager,
		Notes:    store,
		Slugs:    slug.NewGenerator(slug.GeneratorConfig{}),
	})
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}

	return &testHarness{handler: handler, store: store, manager: manager}
}

func (h *testHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeView(t *testing.T, recorder *httptest.ResponseRecorder) noteViewPayload {
	t.Helper()
	var view noteViewPayload
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view payload: %v (body %q)", err, recorder.Body.String())
	}
	return view
}

func TestNewHTTPHandlerValidatesDependencies(t *testing.T) {
	harness := newTestHarness(t)

	cases := []struct {
		name string
		deps Dependencies
	}{
		{name: "missing sessions", deps: Dependencies{Notes: harness.store, Slugs: slug.NewGenerator(slug.GeneratorConfig{})}},
		{name: "missing notes", deps: Dependencies{Sessions: harness.manager, Slugs: slug.NewGenerator(slug.GeneratorConfig{})}},
		{name: "missing slugs", deps: Dependencies{Sessions: harness.manager, Notes: harness.store}},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NewHTTPHandler(testCase.deps); err == nil {
				t.Fatal("expected constructor error")
			}
		})
	}
}

func TestHomeRedirectsToGeneratedSlug(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodGet, "/", nil)
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", recorder.Code)
	}
	location := recorder.Header().Get("Location")
	if matched := regexp.MustCompile(`^/[a-z]+-[a-z]+$`).MatchString(location); !matched {
		t.Fatalf("unexpected redirect target %q", location)
	}
}

func TestNoteViewRejectsInvalidSlug(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodGet, "/Not-A-Slug", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestNoteViewCreatesMissingNote(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodGet, "/quiet-river", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %q)", recorder.Code, recorder.Body.String())
	}
	view := decodeView(t, recorder)
	if view.Phase != string(session.PhaseReady) {
		t.Fatalf("expected ready phase, got %q", view.Phase)
	}
	if view.Note == nil || view.Note.Slug != "quiet-river" {
		t.Fatalf("expected created note in view, got %+v", view.Note)
	}
	if !theme.Known(view.Theme) {
		t.Fatalf("expected a palette theme, got %q", view.Theme)
	}

	stored, found := harness.store.GetNote(context.Background(), mustSlug(t, "quiet-river"))
	if !found {
		t.Fatal("expected note row after first view")
	}
	content, err := stored.Content()
	if err != nil {
		t.Fatalf("decode stored content: %v", err)
	}
	if !document.Equal(content, document.Empty()) {
		t.Fatalf("expected canonical empty document, got %+v", content)
	}
}

func TestUpdateContentPersistsAfterQuietPeriod(t *testing.T) {
	harness := newTestHarness(t)

	edited := document.Node{
		Type: document.TypeDoc,
		Content: []document.Node{{
			Type:    document.TypeParagraph,
			Content: []document.Node{{Type: "text", Text: "hello from the editor"}},
		}},
	}
	raw, err := document.Encode(edited)
	if err != nil {
		t.Fatalf("encode content: %v", err)
	}

	recorder := harness.do(t, http.MethodPut, "/notes/quiet-river/content",
		map[string]json.RawMessage{"content": raw})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %q)", recorder.Code, recorder.Body.String())
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		stored, found := harness.store.GetNote(context.Background(), mustSlug(t, "quiet-river"))
		if found && strings.Contains(stored.ContentJSON, "hello from the editor") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("edit never persisted")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestUpdateContentRejectsMalformedBody(t *testing.T) {
	harness := newTestHarness(t)

	request := httptest.NewRequest(http.MethodPut, "/notes/quiet-river/content",
		strings.NewReader("{not json"))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	harness.handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestUpdateContentRejectsNonDocumentRoot(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodPut, "/notes/quiet-river/content",
		map[string]any{"content": map[string]any{"type": "paragraph"}})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestUpdateThemeValidatesPalette(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodPut, "/notes/quiet-river/theme",
		map[string]string{"theme": "neon-chartreuse"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown theme, got %d", recorder.Code)
	}
}

func TestUpdateThemeAppliesAndPersists(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodPut, "/notes/quiet-river/theme",
		map[string]string{"theme": "midnight"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %q)", recorder.Code, recorder.Body.String())
	}
	view := decodeView(t, recorder)
	if view.Theme != "midnight" {
		t.Fatalf("expected midnight in view, got %q", view.Theme)
	}

	stored, found := harness.store.GetNote(context.Background(), mustSlug(t, "quiet-river"))
	if !found {
		t.Fatal("expected note row")
	}
	if stored.Theme != "midnight" {
		t.Fatalf("expected persisted theme midnight, got %q", stored.Theme)
	}
}

// themeFailingGateway serves loads normally but rejects theme writes.
type themeFailingGateway struct {
	note notes.Note
}

func (g *themeFailingGateway) GetNote(ctx context.Context, slug notes.Slug) (*notes.Note, bool) {
	copied := g.note
	return &copied, true
}

func (g *themeFailingGateway) CreateNote(ctx context.Context, slug notes.Slug) (*notes.Note, error) {
	copied := g.note
	return &copied, nil
}

func (g *themeFailingGateway) UpdateNote(ctx context.Context, slug notes.Slug, content document.Node) (*notes.Note, error) {
	copied := g.note
	return &copied, nil
}

func (g *themeFailingGateway) UpdateLastAccessed(ctx context.Context, slug notes.Slug) {}

func (g *themeFailingGateway) UpdateTheme(ctx context.Context, slug notes.Slug, themeName string) (*notes.Note, error) {
	return nil, errors.New("theme write rejected")
}

func TestUpdateThemePersistFailureStillAnswersOK(t *testing.T) {
	gin.SetMode(gin.TestMode)

	raw, err := document.Encode(document.Empty())
	if err != nil {
		t.Fatalf("encode empty document: %v", err)
	}
	gateway := &themeFailingGateway{note: notes.Note{
		ID:          "note-1",
		Slug:        "quiet-river",
		ContentJSON: string(raw),
		Theme:       "default",
	}}

	manager, err := session.NewManager(session.ManagerConfig{
		Gateway:     gateway,
		Registry:    dedup.NewRegistry(dedup.RegistryConfig{}),
		QuietPeriod: testQuietPeriod,
		SavedFlash:  40 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("create session manager: %v", err)
	}
	t.Cleanup(manager.Close)

	handler, err := NewHTTPHandler(Dependencies{
		Sessions: manager,
		Notes:    gateway,
		Slugs:    slug.NewGenerator(slug.GeneratorConfig{}),
	})
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}

	body, err := json.Marshal(map[string]string{"theme": "midnight"})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	request := httptest.NewRequest(http.MethodPut, "/notes/quiet-river/theme", bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 despite persist failure, got %d (body %q)", recorder.Code, recorder.Body.String())
	}
	view := decodeView(t, recorder)
	if view.Theme != "midnight" {
		t.Fatalf("expected optimistic theme to survive, got %q", view.Theme)
	}
	if view.Error == "" {
		t.Fatal("expected persist error in view payload")
	}
}

func TestMetaForMissingNote(t *testing.T) {
	harness := newTestHarness(t)

	recorder := harness.do(t, http.MethodGet, "/notes/never-created/meta", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var meta metaResponsePayload
	if err := json.Unmarshal(recorder.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode meta payload: %v", err)
	}
	if meta.Title != "never-created | Slugpad" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Indexable {
		t.Fatal("missing note must not be indexable")
	}
}

func TestMetaExtractsTitleFromContent(t *testing.T) {
	harness := newTestHarness(t)

	created, err := harness.store.CreateNote(context.Background(), mustSlug(t, "quiet-river"))
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	content := document.Node{
		Type: document.TypeDoc,
		Content: []document.Node{
			{
				Type:    document.TypeHeading,
				Content: []document.Node{{Type: "text", Text: "Grocery List"}},
			},
			{
				Type:    document.TypeParagraph,
				Content: []document.Node{{Type: "text", Text: "apples and oranges"}},
			},
		},
	}
	if _, err := harness.store.UpdateNote(context.Background(), mustSlug(t, created.Slug), content); err != nil {
		t.Fatalf("update note: %v", err)
	}

	recorder := harness.do(t, http.MethodGet, "/notes/quiet-river/meta", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var meta metaResponsePayload
	if err := json.Unmarshal(recorder.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode meta payload: %v", err)
	}
	if meta.Title != "Grocery List" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if !strings.Contains(meta.Description, "apples") {
		t.Fatalf("unexpected description %q", meta.Description)
	}
	if !meta.Indexable {
		t.Fatal("existing note should be indexable")
	}
}

func mustSlug(t *testing.T, raw string) notes.Slug {
	t.Helper()
	parsed, err := notes.NewSlug(raw)
	if err != nil {
		t.Fatalf("parse slug %q: %v", raw, err)
	}
	return parsed
}
