package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	applog "finview/internal/log"
	appweb "finview/web"
)

// Deps bundles the backend services and the session store the server
// renders pages from.
type Deps struct {
	Auth         AuthService
	Categories   CategoryService
	Transactions TransactionService
	Dashboard    DashboardService
	Reports      ReportService
	Sessions     SessionReader
	Logger       *applog.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	logger    *applog.Logger

	auth         AuthService
	categories   CategoryService
	transactions TransactionService
	dashboard    DashboardService
	reports      ReportService
	sessions     SessionReader

	notices      *noticeStore
	loginLimiter *rateLimiter
	shutdownOnce sync.Once

	now func() time.Time
}

// Simple in-memory rate limiter for credential endpoints.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	limit        int
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter(limit int) *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		limit:       limit,
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes.
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter once a minute has passed.
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= rl.limit
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	logger := deps.Logger
	if logger == nil {
		logger = applog.New("info", applog.ComponentHTTP)
	}

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      applog.Middleware(logger)(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:       logger,
		auth:         deps.Auth,
		categories:   deps.Categories,
		transactions: deps.Transactions,
		dashboard:    deps.Dashboard,
		reports:      deps.Reports,
		sessions:     deps.Sessions,
		notices:      newNoticeStore(),
		loginLimiter: newRateLimiter(10),
		now:          time.Now,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Error("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("/register", s.withSecurityHeaders(s.handleRegister))
	mux.HandleFunc("/logout", s.withSecurityHeaders(s.requireAuth(s.handleLogout)))

	mux.HandleFunc("/dashboard", s.withSecurityHeaders(s.requireAuth(s.handleDashboard)))

	mux.HandleFunc("/transactions", s.withSecurityHeaders(s.requireAuth(s.handleTransactions)))
	mux.HandleFunc("/transactions/save", s.withSecurityHeaders(s.requireAuth(s.handleTransactionSave)))
	mux.HandleFunc("/transactions/delete", s.withSecurityHeaders(s.requireAuth(s.handleTransactionDelete)))

	mux.HandleFunc("/categories", s.withSecurityHeaders(s.requireAuth(s.handleCategories)))
	mux.HandleFunc("/categories/save", s.withSecurityHeaders(s.requireAuth(s.handleCategorySave)))
	mux.HandleFunc("/categories/delete", s.withSecurityHeaders(s.requireAuth(s.handleCategoryDelete)))

	mux.HandleFunc("/reports", s.withSecurityHeaders(s.requireAuth(s.handleReports)))
	mux.HandleFunc("/reports/export", s.withSecurityHeaders(s.requireAuth(s.handleReportExport)))

	mux.HandleFunc("/profile", s.withSecurityHeaders(s.requireAuth(s.handleProfile)))
	mux.HandleFunc("/profile/update", s.withSecurityHeaders(s.requireAuth(s.handleProfileUpdate)))
	mux.HandleFunc("/profile/password", s.withSecurityHeaders(s.requireAuth(s.handlePasswordChange)))

	return s
}

// Shutdown stops the login rate limiter cleanup goroutine and then shuts
// down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.loginLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers and request completion
// logging to a handler.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		// Throttle credential submissions per client.
		if r.Method == http.MethodPost && (r.URL.Path == "/login" || r.URL.Path == "/register") {
			if !s.loginLimiter.allow(clientIP) {
				applog.FromContext(r.Context()).Warn("Rate limit exceeded",
					applog.FieldPath, r.URL.Path, "client_ip", clientIP)
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		applog.FromContext(r.Context()).Info("Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// requireAuth redirects to the login page when no session is stored.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.IsAuthenticated() {
			redirectToLogin(w, r)
			return
		}
		next(w, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex routes the bare root to the dashboard for signed-in users
// and the login page otherwise.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.sessions.IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	redirectToLogin(w, r)
}

// render executes a full page template, logging and degrading to a 500
// when execution fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		applog.FromContext(r.Context()).Error("Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		applog.FromContext(r.Context()).Error("Template execution failed",
			applog.FieldError, err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// base builds the shared page chrome: title, active nav entry, the
// session user's name and the page's transient notice, if still live.
func (s *Server) base(title, active string) basePage {
	b := basePage{Title: title, Active: active, Notice: s.notices.Active(active)}
	if sess, err := s.sessions.Current(); err == nil && sess != nil {
		b.UserName = sess.User.Name
	}
	return b
}
