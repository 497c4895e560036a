package http

import (
	"net/http"

	"finview/internal/api"
	"finview/internal/forms"
	applog "finview/internal/log"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.sessions.IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	page := authPage{
		Title:  "Sign In",
		Values: map[string]string{},
	}
	page.Values["notice"] = s.notices.Active("login")

	if r.Method == http.MethodGet {
		s.render(w, r, "login.html", page)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		page.Error = "Invalid form submission"
		s.render(w, r, "login.html", page)
		return
	}

	form := forms.Login{
		Email:    sanitizeInput(r.Form.Get("email")),
		Password: r.Form.Get("password"),
	}
	page.Values["email"] = form.Email

	if errs := form.Validate(); errs != nil {
		page.Errors = errs
		s.render(w, r, "login.html", page)
		return
	}

	sess, err := s.auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		applog.FromContext(r.Context()).Warn("Login failed",
			applog.FieldOperation, applog.OpLogin, applog.FieldError, err)
		page.Error = failureMessage(err, "Login failed. Please check your credentials.")
		s.render(w, r, "login.html", page)
		return
	}

	applog.FromContext(r.Context()).Info("User signed in",
		applog.FieldOperation, applog.OpLogin, applog.FieldUserEmail, sess.User.Email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.sessions.IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	page := authPage{
		Title:  "Create Account",
		Values: map[string]string{},
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "register.html", page)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		page.Error = "Invalid form submission"
		s.render(w, r, "register.html", page)
		return
	}

	form := forms.Register{
		Name:     sanitizeInput(r.Form.Get("name")),
		Email:    sanitizeInput(r.Form.Get("email")),
		Password: r.Form.Get("password"),
	}
	page.Values["name"] = form.Name
	page.Values["email"] = form.Email

	if errs := form.Validate(); errs != nil {
		page.Errors = errs
		s.render(w, r, "register.html", page)
		return
	}

	if _, err := s.auth.Register(r.Context(), form.Name, form.Email, form.Password); err != nil {
		page.Error = failureMessage(err, "Registration failed. Please try again.")
		s.render(w, r, "register.html", page)
		return
	}

	// The new credential is not stored; the user signs in explicitly.
	s.notices.Set("login", "Account created. Please sign in.")
	redirectToLogin(w, r)
}

// handleLogout shows a confirmation page on GET and clears the session
// on confirmed POST.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := confirmPage{
			basePage:  s.base("Sign Out", "profile"),
			Heading:   "Sign out?",
			Detail:    "You will need to sign in again to see your finances.",
			Action:    "/logout",
			CancelURL: "/profile",
		}
		s.render(w, r, "confirm.html", page)
	case http.MethodPost:
		if err := s.auth.Logout(); err != nil {
			applog.FromContext(r.Context()).Error("Logout failed",
				applog.FieldOperation, applog.OpLogout, applog.FieldError, err)
		}
		redirectToLogin(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// expireSession drops the stored session after the backend rejected its
// token, sending the user back to the login page. Returns true when the
// error was an auth failure.
func (s *Server) expireSession(w http.ResponseWriter, r *http.Request, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	applog.FromContext(r.Context()).Warn("Session rejected by backend", applog.FieldError, err)
	_ = s.auth.Logout()
	redirectToLogin(w, r)
	return true
}
