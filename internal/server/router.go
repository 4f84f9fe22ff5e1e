package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slugpad/slugpad/internal/document"
	"github.com/slugpad/slugpad/internal/notes"
	"github.com/slugpad/slugpad/internal/session"
	"github.com/slugpad/slugpad/internal/theme"
)

var (
	errMissingSessionManager = errors.New("session manager dependency required")
	errMissingNoteReader     = errors.New("note reader dependency required")
	errMissingSlugGenerator  = errors.New("slug generator dependency required")
)

// SlugGenerator produces fresh memorable slugs for the landing redirect.
type SlugGenerator interface {
	Generate() string
}

// NoteReader provides read-only note access for the metadata endpoint.
type NoteReader interface {
	GetNote(ctx context.Context, slug notes.Slug) (*notes.Note, bool)
}

// Dependencies lists what the HTTP surface needs to operate.
type Dependencies struct {
	Sessions *session.Manager
	Notes    NoteReader
	Slugs    SlugGenerator
	Logger   *zap.Logger
}

// NewHTTPHandler wires the route surface: the landing redirect, the note
// view (which creates the note on first access), content and theme updates,
// and link-preview metadata.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Sessions == nil {
		return nil, errMissingSessionManager
	}
	if deps.Notes == nil {
		return nil, errMissingNoteReader
	}
	if deps.Slugs == nil {
		return nil, errMissingSlugGenerator
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		sessions: deps.Sessions,
		notes:    deps.Notes,
		slugs:    deps.Slugs,
		logger:   logger,
	}

	router.GET("/", handler.handleHome)
	router.GET("/:slug", handler.handleNoteView)
	router.PUT("/notes/:slug/content", handler.handleUpdateContent)
	router.PUT("/notes/:slug/theme", handler.handleUpdateTheme)
	router.GET("/notes/:slug/meta", handler.handleNoteMeta)

	return router, nil
}

type httpHandler struct {
	sessions *session.Manager
	notes    NoteReader
	slugs    SlugGenerator
	logger   *zap.Logger
}

type notePayload struct {
	ID                  string          `json:"id"`
	Slug                string          `json:"slug"`
	Content             json.RawMessage `json:"content"`
	Theme               string          `json:"theme"`
	CreatedAtSeconds    int64           `json:"created_at_s"`
	UpdatedAtSeconds    int64           `json:"updated_at_s"`
	LastAccessedSeconds int64           `json:"last_accessed_s"`
}

type noteViewPayload struct {
	Slug      string          `json:"slug"`
	Phase     string          `json:"phase"`
	Note      *notePayload    `json:"note,omitempty"`
	Content   json.RawMessage `json:"content"`
	Theme     string          `json:"theme"`
	IsSaving  bool            `json:"is_saving"`
	ShowSaved bool            `json:"show_saved"`
	Error     string          `json:"error,omitempty"`
}

func (h *httpHandler) handleHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+h.slugs.Generate())
}

func (h *httpHandler) handleNoteView(c *gin.Context) {
	slug, ok := h.parseSlug(c)
	if !ok {
		return
	}

	sess := h.sessions.Acquire(slug)
	if err := sess.WaitReady(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load_interrupted"})
		return
	}

	h.renderView(c, sess)
}

type contentRequestPayload struct {
	Content json.RawMessage `json:"content"`
}

func (h *httpHandler) handleUpdateContent(c *gin.Context) {
	slug, ok := h.parseSlug(c)
	if !ok {
		return
	}

	var request contentRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil || len(request.Content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	content, err := document.Decode(request.Content)
	if err != nil || content.Type != document.TypeDoc {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_content"})
		return
	}

	sess := h.sessions.Acquire(slug)
	if err := sess.WaitReady(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load_interrupted"})
		return
	}

	sess.UpdateContent(content)
	h.renderView(c, sess)
}

type themeRequestPayload struct {
	Theme string `json:"theme"`
}

// handleUpdateTheme applies a theme choice to the session. The theme is
// applied optimistically, so a failed persist still answers 200 with the
// error carried in the view payload; only an unknown theme name or an
// unparseable body yields a 4xx.
func (h *httpHandler) handleUpdateTheme(c *gin.Context) {
	slug, ok := h.parseSlug(c)
	if !ok {
		return
	}

	var request themeRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil || request.Theme == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if !theme.Known(request.Theme) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_theme"})
		return
	}

	sess := h.sessions.Acquire(slug)
	if err := sess.WaitReady(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load_interrupted"})
		return
	}

	// The visual theme is already applied on the client; a persistence
	// failure surfaces in the session error, not as a request failure.
	if err := sess.UpdateTheme(c.Request.Context(), request.Theme); err != nil {
		h.logger.Warn("theme persist failed",
			zap.String("slug", slug.String()),
			zap.Error(err))
	}
	h.renderView(c, sess)
}

type metaResponsePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Indexable   bool   `json:"indexable"`
}

func (h *httpHandler) handleNoteMeta(c *gin.Context) {
	slug, ok := h.parseSlug(c)
	if !ok {
		return
	}

	note, found := h.notes.GetNote(c.Request.Context(), slug)
	if !found {
		c.JSON(http.StatusOK, metaResponsePayload{
			Title:       fmt.Sprintf("%s | Slugpad", slug.String()),
			Description: document.Description(document.Node{}),
			Indexable:   false,
		})
		return
	}

	content, err := note.Content()
	if err != nil {
		h.logger.Error("stored note content is malformed",
			zap.String("slug", slug.String()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed_note"})
		return
	}

	title := document.ExtractTitle(content)
	if title == "" {
		title = fmt.Sprintf("Note: %s", slug.String())
	}

	c.JSON(http.StatusOK, metaResponsePayload{
		Title:       title,
		Description: document.Description(content),
		Indexable:   true,
	})
}

func (h *httpHandler) parseSlug(c *gin.Context) (notes.Slug, bool) {
	slug, err := notes.NewSlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_slug"})
		return "", false
	}
	return slug, true
}

func (h *httpHandler) renderView(c *gin.Context, sess *session.Session) {
	snapshot := sess.Snapshot()

	contentJSON, err := document.Encode(snapshot.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode_failed"})
		return
	}

	view := noteViewPayload{
		Slug:      snapshot.Slug,
		Phase:     string(snapshot.Phase),
		Content:   contentJSON,
		Theme:     snapshot.Theme,
		IsSaving:  snapshot.IsSaving,
		ShowSaved: snapshot.ShowSaved,
		Error:     snapshot.ErrorMessage,
	}
	if snapshot.Note != nil {
		view.Note = &notePayload{
			ID:                  snapshot.Note.ID,
			Slug:                snapshot.Note.Slug,
			Content:             json.RawMessage(snapshot.Note.ContentJSON),
			Theme:               snapshot.Note.Theme,
			CreatedAtSeconds:    snapshot.Note.CreatedAtSeconds,
			UpdatedAtSeconds:    snapshot.Note.UpdatedAtSeconds,
			LastAccessedSeconds: snapshot.Note.LastAccessedSeconds,
		}
	}

	c.JSON(http.StatusOK, view)
}
