package http

import (
	"net/http"

	"finview/internal/core"
	"finview/internal/forms"
	applog "finview/internal/log"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	page := categoriesPage{basePage: s.base("Categories", "categories")}

	cats, err := s.categories.List(r.Context())
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Category list failed",
			applog.FieldOperation, applog.OpList, applog.FieldError, err)
		page.Error = failureMessage(err, "Failed to load categories")
		s.render(w, r, "categories.html", page)
		return
	}

	income, expense := core.PartitionCategories(cats)
	page.Income = newCategoryRows(income)
	page.Expense = newCategoryRows(expense)

	q := r.URL.Query()
	switch {
	case q.Get("new") != "":
		page.Form = categoryForm{Open: true, Type: string(core.Expense)}
	case q.Get("edit") != "":
		for _, c := range cats {
			if c.ID == q.Get("edit") {
				page.Form = categoryForm{Open: true, ID: c.ID, Name: c.Name, Type: string(c.Type)}
				break
			}
		}
	}

	s.render(w, r, "categories.html", page)
}

// handleCategorySave creates or updates a category depending on whether
// the hidden id field is set.
func (s *Server) handleCategorySave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	form := forms.Category{
		Name: sanitizeInput(r.Form.Get("name")),
		Type: sanitizeInput(r.Form.Get("type")),
	}

	if errs := form.Validate(); errs != nil {
		s.renderCategoriesWithForm(w, r, categoryForm{
			Open: true, ID: id, Name: form.Name, Type: form.Type, Errors: errs,
		}, "")
		return
	}

	var err error
	if id == "" {
		_, err = s.categories.Create(r.Context(), form.Draft())
	} else {
		_, err = s.categories.Update(r.Context(), id, form.Draft())
	}
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Category save failed",
			applog.FieldEntityID, id, applog.FieldError, err)
		s.renderCategoriesWithForm(w, r, categoryForm{
			Open: true, ID: id, Name: form.Name, Type: form.Type,
		}, failureMessage(err, "Failed to save category"))
		return
	}

	if id == "" {
		s.notices.Set("categories", "Category added successfully")
	} else {
		s.notices.Set("categories", "Category updated successfully")
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// handleCategoryDelete renders a confirmation page on GET; the delete
// itself only happens on a confirmed POST.
func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id := sanitizeInput(r.URL.Query().Get("id"))
		if id == "" {
			http.Redirect(w, r, "/categories", http.StatusSeeOther)
			return
		}
		detail := "This will remove the category."
		if cats, err := s.categories.List(r.Context()); err == nil {
			for _, c := range cats {
				if c.ID == id {
					detail = "This will remove the category \"" + c.Name + "\"."
					break
				}
			}
		}
		page := confirmPage{
			basePage:  s.base("Delete Category", "categories"),
			Heading:   "Delete this category?",
			Detail:    detail,
			Action:    "/categories/delete",
			CancelURL: "/categories",
			ID:        id,
		}
		s.render(w, r, "confirm.html", page)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/categories", http.StatusSeeOther)
			return
		}
		id := sanitizeInput(r.Form.Get("id"))
		if id == "" || r.Form.Get("confirm") != "1" {
			http.Redirect(w, r, "/categories", http.StatusSeeOther)
			return
		}
		if err := s.categories.Delete(r.Context(), id); err != nil {
			if s.expireSession(w, r, err) {
				return
			}
			applog.FromContext(r.Context()).Error("Category delete failed",
				applog.FieldOperation, applog.OpDelete, applog.FieldEntityID, id, applog.FieldError, err)
			s.renderCategoriesWithForm(w, r, categoryForm{}, failureMessage(err, "Failed to delete category"))
			return
		}
		s.notices.Set("categories", "Category deleted successfully")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// renderCategoriesWithForm re-renders the categories page keeping the
// submitted form values and any error banner.
func (s *Server) renderCategoriesWithForm(w http.ResponseWriter, r *http.Request, form categoryForm, banner string) {
	page := categoriesPage{basePage: s.base("Categories", "categories"), Form: form}
	page.Error = banner

	if cats, err := s.categories.List(r.Context()); err == nil {
		income, expense := core.PartitionCategories(cats)
		page.Income = newCategoryRows(income)
		page.Expense = newCategoryRows(expense)
	}
	s.render(w, r, "categories.html", page)
}
