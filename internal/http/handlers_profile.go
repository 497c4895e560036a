package http

import (
	"net/http"

	"finview/internal/forms"
	applog "finview/internal/log"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	page := profilePage{basePage: s.base("Profile", "profile")}
	page.Tab = r.URL.Query().Get("tab")
	if page.Tab != "password" {
		page.Tab = "profile"
	}

	if sess, err := s.sessions.Current(); err == nil && sess != nil {
		page.Name = sess.User.Name
		page.Email = sess.User.Email
	}

	s.render(w, r, "profile.html", page)
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	form := forms.Profile{
		Name:  sanitizeInput(r.Form.Get("name")),
		Email: sanitizeInput(r.Form.Get("email")),
	}

	page := profilePage{basePage: s.base("Profile", "profile")}
	page.Tab = "profile"
	page.Name = form.Name
	page.Email = form.Email

	if errs := form.Validate(); errs != nil {
		page.ProfileErrors = errs
		s.render(w, r, "profile.html", page)
		return
	}

	token := ""
	if sess, err := s.sessions.Current(); err == nil && sess != nil {
		token = sess.Token
	}

	if _, err := s.auth.UpdateProfile(r.Context(), token, form.Name, form.Email); err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Profile update failed",
			applog.FieldOperation, applog.OpUpdate, applog.FieldError, err)
		page.Error = failureMessage(err, "Failed to update profile")
		s.render(w, r, "profile.html", page)
		return
	}

	s.notices.Set("profile", "Profile updated successfully")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile?tab=password", http.StatusSeeOther)
		return
	}

	form := forms.Password{
		Current: r.Form.Get("currentPassword"),
		New:     r.Form.Get("newPassword"),
		Confirm: r.Form.Get("confirmPassword"),
	}

	page := profilePage{basePage: s.base("Profile", "profile")}
	page.Tab = "password"
	if sess, err := s.sessions.Current(); err == nil && sess != nil {
		page.Name = sess.User.Name
		page.Email = sess.User.Email
	}

	if errs := form.Validate(); errs != nil {
		page.ProfileErrors = errs
		s.render(w, r, "profile.html", page)
		return
	}

	if err := s.auth.ChangePassword(r.Context(), form.Current, form.New); err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Password change failed",
			applog.FieldOperation, applog.OpUpdate, applog.FieldError, err)
		page.PasswordError = failureMessage(err, "Failed to change password")
		s.render(w, r, "profile.html", page)
		return
	}

	s.notices.Set("profile", "Password changed successfully")
	http.Redirect(w, r, "/profile?tab=password", http.StatusSeeOther)
}
