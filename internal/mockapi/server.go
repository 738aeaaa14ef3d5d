// Package mockapi is an in-memory implementation of the user-directory backend.
//
// Tests use it the way the browser suite used a mocked service worker; `userdir mock-server`
// serves it for local experiments.
package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"userdir-cli/internal/logging"
	"userdir-cli/internal/model"
)

const DefaultPageSize = 3

// Route keys for Count.
const (
	RouteSignUp    = "POST /users"
	RouteActivate  = "POST /users/token"
	RouteListUsers = "GET /users"
	RouteGetUser   = "GET /users/{id}"
	RouteLogin     = "POST /auth"
)

type user struct {
	ID       int64
	Username string
	Email    string
	Hash     []byte
	Image    *string
	Active   bool
}

func (u *user) summary() model.UserSummary {
	return model.UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Image: u.Image}
}

type signUpBody struct {
	Username string `json:"username" validate:"required,min=4,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Option func(*Server)

func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = logging.OrNop(l) }
}

// WithBcryptCost lowers hashing cost in tests.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.cost = cost }
}

type Server struct {
	log      logging.Logger
	validate *validator.Validate
	cost     int

	mu       sync.Mutex
	users    []*user
	nextID   int64
	tokens   map[string]int64
	pageSize int
	counts   map[string]int
	langs    []string
	bodies   map[string][]byte
	hold     chan struct{}
}

func New(opts ...Option) *Server {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	s := &Server{
		log:      logging.Nop(),
		validate: v,
		cost:     bcrypt.DefaultCost,
		nextID:   1,
		tokens:   map[string]int64{},
		pageSize: DefaultPageSize,
		counts:   map[string]int{},
		bodies:   map[string][]byte{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler routes /api/1.0/*.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api/1.0", func(r chi.Router) {
		r.Post("/users", s.counted(RouteSignUp, s.handleSignUp))
		r.Post("/users/token/{token}", s.counted(RouteActivate, s.handleActivate))
		r.Get("/users", s.counted(RouteListUsers, s.handleListUsers))
		r.Get("/users/{id}", s.counted(RouteGetUser, s.handleGetUser))
		r.Post("/auth", s.counted(RouteLogin, s.handleLogin))
	})
	return r
}

// Seed adds n active users user1..userN with password "P4ssword".
func (s *Server) Seed(n int) {
	for i := 1; i <= n; i++ {
		_, _ = s.AddUser(fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@mail.com", i), "P4ssword", true)
	}
}

// AddUser stores a user and returns its id.
func (s *Server) AddUser(username, email, password string, active bool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{ID: s.nextID, Username: username, Email: email, Hash: hash, Active: active}
	s.nextID++
	s.users = append(s.users, u)
	return u.ID, nil
}

// SetImage sets a profile image path for user id.
func (s *Server) SetImage(id int64, image string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findLocked(id); u != nil {
		img := image
		u.Image = &img
	}
}

// AddActivationToken binds token to the (inactive) user with email.
func (s *Server) AddActivationToken(token, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			s.tokens[token] = u.ID
			return nil
		}
	}
	return errors.New("mockapi: no such user")
}

// TokenFor returns the pending activation token of email.
func (s *Server) TokenFor(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, id := range s.tokens {
		if u := s.findLocked(id); u != nil && strings.EqualFold(u.Email, email) {
			return tok, true
		}
	}
	return "", false
}

// Count reports how many requests hit route (see Route* constants).
func (s *Server) Count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[route]
}

// LastBody returns the last raw request body received on route.
func (s *Server) LastBody(route string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.bodies[route]...)
}

// Languages returns the Accept-Language values seen, oldest first.
func (s *Server) Languages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.langs...)
}

// Hold makes every subsequent request block (after being counted) until release is called.
func (s *Server) Hold() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.hold == ch {
				s.hold = nil
			}
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) counted(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw []byte
		if r.Body != nil {
			raw, _ = readAll(r)
		}
		s.mu.Lock()
		s.counts[route]++
		s.langs = append(s.langs, r.Header.Get("Accept-Language"))
		s.bodies[route] = raw
		hold := s.hold
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		r = withBody(r, raw)
		s.log.Debugw("mockapi request", "route", route, "lang", r.Header.Get("Accept-Language"))
		h(w, r)
	}
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	var body signUpBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": msg(lang, "request.malformed")})
		return
	}

	fieldErrs := map[string]string{}
	if err := s.validate.Struct(body); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				fieldErrs[fe.Field()] = msg(lang, fe.Field()+"."+validationKind(fe.Tag()))
			}
		}
	}
	if _, ok := fieldErrs["password"]; !ok && !passwordPatternOK(body.Password) {
		fieldErrs["password"] = msg(lang, "password.pattern")
	}
	if _, ok := fieldErrs["email"]; !ok && s.emailInUse(body.Email) {
		fieldErrs["email"] = msg(lang, "email.inUse")
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message":          msg(lang, "validation.failure"),
			"validationErrors": fieldErrs,
		})
		return
	}

	id, err := s.AddUser(body.Username, body.Email, body.Password, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": err.Error()})
		return
	}
	s.mu.Lock()
	s.tokens[uuid.NewString()] = id
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": msg(lang, "user.created")})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	token := chi.URLParam(r, "token")

	s.mu.Lock()
	id, ok := s.tokens[token]
	var u *user
	if ok {
		u = s.findLocked(id)
	}
	if u != nil {
		u.Active = true
		delete(s.tokens, token)
	}
	s.mu.Unlock()

	if u == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": msg(lang, "activation.failure")})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg(lang, "account.activated")})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}
	s.mu.Lock()
	size := s.pageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 && v <= 100 {
		size = v
	}
	active := make([]model.UserSummary, 0, len(s.users))
	for _, u := range s.users {
		if u.Active {
			active = append(active, u.summary())
		}
	}
	s.mu.Unlock()

	totalPages := (len(active) + size - 1) / size
	start := page * size
	if start > len(active) {
		start = len(active)
	}
	end := start + size
	if end > len(active) {
		end = len(active)
	}
	writeJSON(w, http.StatusOK, model.PageResult{
		Items:      active[start:end],
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var u *user
	if err == nil {
		s.mu.Lock()
		if found := s.findLocked(id); found != nil && found.Active {
			cp := *found
			u = &cp
		}
		s.mu.Unlock()
	}
	if u == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": msg(lang, "user.notFound")})
		return
	}
	writeJSON(w, http.StatusOK, u.summary())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": msg(lang, "auth.failure")})
		return
	}

	s.mu.Lock()
	var u *user
	for _, cand := range s.users {
		if strings.EqualFold(cand.Email, strings.TrimSpace(creds.Email)) {
			cp := *cand
			u = &cp
			break
		}
	}
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.Hash, []byte(creds.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": msg(lang, "auth.failure")})
		return
	}
	if !u.Active {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": msg(lang, "auth.inactive")})
		return
	}
	writeJSON(w, http.StatusOK, model.Identity{ID: u.ID, Username: u.Username})
}

func (s *Server) findLocked(id int64) *user {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Server) emailInUse(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

func validationKind(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "email":
		return "invalid"
	default:
		return "size"
	}
}

func passwordPatternOK(p string) bool {
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
