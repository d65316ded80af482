// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package testinfra

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/bienestar/internal/models"
)

// Capture is one request received by the fake API.
type Capture struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Failure makes matching requests fail with Status and Body. Times is the
// number of requests to fail; zero fails until Recover is called.
type Failure struct {
	Status int
	Body   string
	Times  int
}

// FakeAPI is an in-memory Bienestar API served over httptest. It keeps
// forum posts, replies, quotes, suggestions and accounts so tests can
// observe both the requests a client sends and the state they leave behind.
type FakeAPI struct {
	Server *httptest.Server

	mu          sync.Mutex
	captures    []Capture
	failures    map[string]*Failure
	holds       map[string]chan struct{}
	seq         int64
	epoch       time.Time
	posts       []models.ForumPost
	replies     map[string][]models.ForumReply
	quotes      []models.DailyQuote
	featuredID  string
	suggestions []models.Suggestion
	users       map[string]string
	tokens      map[string]string
	statsBody   []byte
	prediction  models.PredictionResult
}

// NewFakeAPI starts a fake API. It is closed automatically when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		failures:   make(map[string]*Failure),
		holds:      make(map[string]chan struct{}),
		epoch:      time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
		replies:    make(map[string][]models.ForumReply),
		users:      make(map[string]string),
		tokens:     make(map[string]string),
		statsBody:  []byte(`{"total_registros":0}`),
		prediction: models.PredictionResult{Prediction: 0, Probability: 0.12, Message: "Bajo riesgo de depresión (Probabilidad: 0.12)"},
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Close)
	return f
}

// URL returns the base URL of the fake API.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Close releases any held requests and shuts the server down.
func (f *FakeAPI) Close() {
	f.mu.Lock()
	for key, ch := range f.holds {
		close(ch)
		delete(f.holds, key)
	}
	f.mu.Unlock()
	f.Server.Close()
}

func (f *FakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(f.capture, f.inject)

	r.Post("/api/predict", f.handlePredict)
	r.Post("/api/metrics", f.handleMetrics)
	r.Get("/api/stats", f.handleStats)

	r.Get("/api/frase-dia", f.handleToday)
	r.Get("/api/frases", f.handleListQuotes)
	r.Post("/api/frases", f.handleCreateQuote)
	r.Delete("/api/frases/{id}", f.handleDeleteQuote)
	r.Post("/api/frases/{id}/destacar", f.handleFeatureQuote)

	r.Get("/api/sugerencias", f.handleListSuggestions)
	r.Post("/api/sugerencias", f.handleCreateSuggestion)

	r.Get("/api/foro/publicaciones", f.handleListPosts)
	r.Post("/api/foro/publicaciones", f.handleCreatePost)
	r.Get("/api/foro/publicaciones/{id}/respuestas", f.handleListReplies)
	r.Post("/api/foro/publicaciones/{id}/respuestas", f.handleCreateReply)
	r.Post("/api/foro/publicaciones/{id}/reaccion", f.handleReact)

	r.Post("/api/register", f.handleRegister)
	r.Post("/api/login", f.handleLogin)
	return r
}

// ---------------------------------------------------------------------------
// Request capture and fault injection
// ---------------------------------------------------------------------------

func (f *FakeAPI) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.captures = append(f.captures, Capture{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		f.mu.Lock()
		hold := f.holds[key]
		f.mu.Unlock()
		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		f.mu.Lock()
		failure, ok := f.failures[key]
		var status int
		var body string
		if ok {
			status, body = failure.Status, failure.Body
			if failure.Times > 0 {
				failure.Times--
				if failure.Times == 0 {
					delete(f.failures, key)
				}
			}
		}
		f.mu.Unlock()

		if ok {
			if strings.HasPrefix(strings.TrimSpace(body), "{") {
				w.Header().Set("Content-Type", "application/json")
			}
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes requests to method and path fail as described by failure.
func (f *FakeAPI) Fail(method, path string, failure Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fc := failure
	f.failures[method+" "+path] = &fc
}

// Recover removes an injected failure.
func (f *FakeAPI) Recover(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, method+" "+path)
}

// Hold blocks requests to method and path until the returned release
// function is called. Release is safe to call more than once.
func (f *FakeAPI) Hold(method, path string) (release func()) {
	key := method + " " + path
	ch := make(chan struct{})

	f.mu.Lock()
	f.holds[key] = ch
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if f.holds[key] == ch {
				delete(f.holds, key)
				close(ch)
			}
			f.mu.Unlock()
		})
	}
}

// Captures returns a copy of every captured request.
func (f *FakeAPI) Captures() []Capture {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Capture, len(f.captures))
	copy(out, f.captures)
	return out
}

// Count returns how many requests hit method and path.
func (f *FakeAPI) Count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.captures {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Requests returns the captured requests for method and path.
func (f *FakeAPI) Requests(method, path string) []Capture {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Capture
	for _, c := range f.captures {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears captured requests. Stored data is kept.
func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captures = nil
}

// ---------------------------------------------------------------------------
// Seeding
// ---------------------------------------------------------------------------

// SetStats sets the raw JSON body served by GET /api/stats.
func (f *FakeAPI) SetStats(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsBody = []byte(body)
}

// SetPrediction sets the result served by POST /api/predict.
func (f *FakeAPI) SetPrediction(result models.PredictionResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prediction = result
}

// AddPost seeds a forum post and returns it.
func (f *FakeAPI) AddPost(contenido string, likes int) models.ForumPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := models.ForumPost{ID: f.nextID("post"), Contenido: contenido, Timestamp: f.nextTimestamp(), Likes: likes}
	f.posts = append(f.posts, post)
	return post
}

// AddQuote seeds a quote and returns it.
func (f *FakeAPI) AddQuote(contenido string) models.DailyQuote {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := models.DailyQuote{ID: f.nextID("frase"), Contenido: contenido, Timestamp: f.nextTimestamp()}
	f.quotes = append(f.quotes, q)
	return q
}

// AddUser seeds an account.
func (f *FakeAPI) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// SetLikes overwrites a post's like count, standing in for reactions from
// other users.
func (f *FakeAPI) SetLikes(id string, likes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx := f.postIndex(id); idx >= 0 {
		f.posts[idx].Likes = likes
	}
}

// Post returns the stored post with id.
func (f *FakeAPI) Post(id string) (models.ForumPost, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.ForumPost{}, false
}

// Quotes returns the stored quotes in list order.
func (f *FakeAPI) Quotes() []models.DailyQuote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderedQuotes()
}

// Suggestions returns the stored suggestions in insertion order.
func (f *FakeAPI) Suggestions() []models.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Suggestion, len(f.suggestions))
	copy(out, f.suggestions)
	return out
}

func (f *FakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *FakeAPI) nextTimestamp() int64 {
	f.seq++
	return f.epoch.Add(time.Duration(f.seq) * time.Second).UnixMilli()
}

// orderedQuotes lists quotes newest first with the featured quote leading.
func (f *FakeAPI) orderedQuotes() []models.DailyQuote {
	out := make([]models.DailyQuote, len(f.quotes))
	copy(out, f.quotes)
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].ID == f.featuredID) != (out[j].ID == f.featuredID) {
			return out[i].ID == f.featuredID
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorBody{Error: msg})
}

func decodeBody(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func (f *FakeAPI) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictionRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	f.mu.Lock()
	result := f.prediction
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, result)
}

func (f *FakeAPI) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var event models.TelemetryEvent
	if !decodeBody(r, &event) || event.EventType == "" {
		writeError(w, http.StatusBadRequest, "eventType requerido")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *FakeAPI) handleStats(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	body := f.statsBody
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (f *FakeAPI) handleToday(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.quotes) == 0 {
		writeJSON(w, http.StatusOK, models.MessageResponse{Mensaje: "Aún no hay frases registradas"})
		return
	}
	for _, q := range f.quotes {
		if q.ID == f.featuredID {
			writeJSON(w, http.StatusOK, q)
			return
		}
	}
	writeJSON(w, http.StatusOK, f.quotes[len(f.quotes)-1])
}

func (f *FakeAPI) handleListQuotes(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.orderedQuotes())
}

func (f *FakeAPI) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req models.NewQuoteRequest
	if !decodeBody(r, &req) || strings.TrimSpace(req.Contenido) == "" {
		writeError(w, http.StatusBadRequest, "El contenido de la frase no puede estar vacío")
		return
	}
	f.mu.Lock()
	q := models.DailyQuote{ID: f.nextID("frase"), Contenido: strings.TrimSpace(req.Contenido), Timestamp: f.nextTimestamp()}
	f.quotes = append(f.quotes, q)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, q)
}

func (f *FakeAPI) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, q := range f.quotes {
		if q.ID == id {
			f.quotes = append(f.quotes[:i], f.quotes[i+1:]...)
			if f.featuredID == id {
				f.featuredID = ""
			}
			writeJSON(w, http.StatusOK, models.MessageResponse{Mensaje: "Frase eliminada"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Frase no encontrada")
}

func (f *FakeAPI) handleFeatureQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quotes {
		if q.ID == id {
			f.featuredID = id
			writeJSON(w, http.StatusOK, models.FeatureResponse{Mensaje: "Frase marcada como frase del día.", Frase: q})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Frase no encontrada")
}

func (f *FakeAPI) handleListSuggestions(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Suggestion, len(f.suggestions))
	copy(out, f.suggestions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) handleCreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req models.NewSuggestionRequest
	if !decodeBody(r, &req) || strings.TrimSpace(req.Texto) == "" {
		writeError(w, http.StatusBadRequest, "El texto de la sugerencia no puede estar vacío")
		return
	}
	categoria := req.Categoria
	switch categoria {
	case models.CategoryBug, models.CategoryRecommendation, models.CategoryComplaint:
	default:
		categoria = models.CategoryRecommendation
	}
	f.mu.Lock()
	s := models.Suggestion{ID: f.nextID("sug"), Categoria: categoria, Texto: strings.TrimSpace(req.Texto), Timestamp: f.nextTimestamp()}
	f.suggestions = append(f.suggestions, s)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, models.SuggestionCreated{Mensaje: "Sugerencia guardada correctamente", Sugerencia: s})
}

func (f *FakeAPI) handleListPosts(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("orden")
	f.mu.Lock()
	posts := make([]models.ForumPost, len(f.posts))
	copy(posts, f.posts)
	f.mu.Unlock()

	if order == models.OrderPopular {
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].Likes != posts[j].Likes {
				return posts[i].Likes > posts[j].Likes
			}
			return posts[i].RespuestasCount > posts[j].RespuestasCount
		})
	} else {
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Timestamp > posts[j].Timestamp })
	}
	writeJSON(w, http.StatusOK, models.PostList{Publicaciones: posts, Total: len(posts)})
}

func (f *FakeAPI) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.NewPostRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	contenido := strings.TrimSpace(req.Contenido)
	switch {
	case contenido == "":
		writeError(w, http.StatusBadRequest, "El contenido no puede estar vacío")
		return
	case len([]rune(contenido)) > models.MaxPostLength:
		writeError(w, http.StatusBadRequest, "El contenido excede el límite de 500 caracteres")
		return
	}
	f.mu.Lock()
	post := models.ForumPost{ID: f.nextID("post"), Contenido: contenido, Timestamp: f.nextTimestamp()}
	f.posts = append(f.posts, post)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, models.CreatedResponse{ID: post.ID, Mensaje: "Publicación creada exitosamente", Timestamp: post.Timestamp})
}

func (f *FakeAPI) postIndex(id string) int {
	for i, p := range f.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) handleListReplies(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postIndex(id) < 0 {
		writeError(w, http.StatusNotFound, "Publicación no encontrada")
		return
	}
	replies := make([]models.ForumReply, len(f.replies[id]))
	copy(replies, f.replies[id])
	sort.SliceStable(replies, func(i, j int) bool { return replies[i].Timestamp > replies[j].Timestamp })
	writeJSON(w, http.StatusOK, models.ReplyList{Respuestas: replies, Total: len(replies)})
}

func (f *FakeAPI) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req models.NewReplyRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	contenido := strings.TrimSpace(req.Contenido)
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.postIndex(id)
	switch {
	case idx < 0:
		writeError(w, http.StatusNotFound, "Publicación no encontrada")
		return
	case contenido == "":
		writeError(w, http.StatusBadRequest, "El contenido no puede estar vacío")
		return
	case len([]rune(contenido)) > models.MaxReplyLength:
		writeError(w, http.StatusBadRequest, "El contenido excede el límite de 300 caracteres")
		return
	}
	reply := models.ForumReply{ID: f.nextID("resp"), Contenido: contenido, Timestamp: f.nextTimestamp()}
	f.replies[id] = append(f.replies[id], reply)
	f.posts[idx].RespuestasCount++
	writeJSON(w, http.StatusCreated, models.CreatedResponse{ID: reply.ID, Mensaje: "Respuesta creada exitosamente"})
}

func (f *FakeAPI) handleReact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req models.ReactionRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.Tipo == "" {
		req.Tipo = models.ReactionLike
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.postIndex(id)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "Publicación no encontrada")
		return
	}
	if req.Tipo != models.ReactionLike {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Mensaje: "Tipo de reacción no soportado"})
		return
	}
	f.posts[idx].Likes++
	writeJSON(w, http.StatusOK, models.ReactionResponse{Mensaje: "Reacción agregada exitosamente", Likes: f.posts[idx].Likes})
}

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeBody(r, &creds) || creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "El nombre de usuario y la contraseña son obligatorios")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[creds.Username]; exists {
		writeError(w, http.StatusBadRequest, "El nombre de usuario ya está registrado")
		return
	}
	f.users[creds.Username] = creds.Password
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Usuario registrado con éxito"})
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeBody(r, &creds) || creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "El nombre de usuario y la contraseña son obligatorios")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[creds.Username]
	switch {
	case !ok:
		writeError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	case stored != creds.Password:
		writeError(w, http.StatusUnauthorized, "Contraseña incorrecta")
		return
	}
	token := f.nextID("token")
	f.tokens[token] = creds.Username
	writeJSON(w, http.StatusOK, models.LoginResponse{Message: "Login exitoso", Token: token, Username: creds.Username})
}
