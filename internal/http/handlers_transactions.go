package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"finview/internal/core"
	"finview/internal/forms"
	applog "finview/internal/log"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	filter := filterFromQuery(r)
	page := transactionsPage{
		basePage: s.base("Transactions", "transactions"),
		Filter:   filterToValues(filter),
	}

	var txs []core.Transaction
	var cats []core.Category
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		txs, err = s.transactions.List(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Transaction list failed",
			applog.FieldOperation, applog.OpList, applog.FieldError, err)
		page.Error = failureMessage(err, "Failed to load transactions")
		s.render(w, r, "transactions.html", page)
		return
	}

	// The backend already filters, but an older backend may ignore some
	// params; applying the same filter locally keeps the page honest.
	txs = filter.Apply(txs)

	page.Rows = make([]transactionRow, 0, len(txs))
	for _, t := range txs {
		page.Rows = append(page.Rows, newTransactionRow(t))
	}
	page.Categories = cats
	page.Income, page.Expense = core.PartitionCategories(cats)

	q := r.URL.Query()
	switch {
	case q.Get("new") != "":
		page.Form = transactionForm{
			Open: true,
			Date: core.Today().ISO(),
			Type: string(core.Expense),
		}
	case q.Get("edit") != "":
		for _, t := range txs {
			if t.ID == q.Get("edit") {
				page.Form = transactionForm{
					Open:       true,
					ID:         t.ID,
					Date:       t.Date.ISO(),
					CategoryID: t.CategoryID,
					Type:       string(t.Type),
					Amount:     t.Amount.String(),
					Note:       t.Note,
				}
				break
			}
		}
	}

	s.render(w, r, "transactions.html", page)
}

func (s *Server) handleTransactionSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	form := forms.Transaction{
		Date:       sanitizeInput(r.Form.Get("date")),
		CategoryID: sanitizeInput(r.Form.Get("categoryId")),
		Type:       sanitizeInput(r.Form.Get("type")),
		Amount:     sanitizeInput(r.Form.Get("amount")),
		Note:       sanitizeInput(r.Form.Get("note")),
	}

	if errs := form.Validate(); errs != nil {
		s.renderTransactionsWithForm(w, r, transactionForm{
			Open: true, ID: id, Date: form.Date, CategoryID: form.CategoryID,
			Type: form.Type, Amount: form.Amount, Note: form.Note, Errors: errs,
		}, "")
		return
	}

	var err error
	if id == "" {
		_, err = s.transactions.Create(r.Context(), form.Draft())
	} else {
		_, err = s.transactions.Update(r.Context(), id, form.Draft())
	}
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Transaction save failed",
			applog.FieldEntityID, id, applog.FieldError, err)
		s.renderTransactionsWithForm(w, r, transactionForm{
			Open: true, ID: id, Date: form.Date, CategoryID: form.CategoryID,
			Type: form.Type, Amount: form.Amount, Note: form.Note,
		}, failureMessage(err, "Failed to save transaction"))
		return
	}

	if id == "" {
		s.notices.Set("transactions", "Transaction added successfully")
	} else {
		s.notices.Set("transactions", "Transaction updated successfully")
	}
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id := sanitizeInput(r.URL.Query().Get("id"))
		if id == "" {
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		detail := "This will remove the transaction permanently."
		if txs, err := s.transactions.List(r.Context(), core.Filter{}); err == nil {
			for _, t := range txs {
				if t.ID == id {
					detail = "This will remove the " + t.Category + " entry of " +
						core.FormatINR(t.Amount) + " on " + t.Date.Display() + "."
					break
				}
			}
		}
		page := confirmPage{
			basePage:  s.base("Delete Transaction", "transactions"),
			Heading:   "Delete this transaction?",
			Detail:    detail,
			Action:    "/transactions/delete",
			CancelURL: "/transactions",
			ID:        id,
		}
		s.render(w, r, "confirm.html", page)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		id := sanitizeInput(r.Form.Get("id"))
		if id == "" || r.Form.Get("confirm") != "1" {
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		if err := s.transactions.Delete(r.Context(), id); err != nil {
			if s.expireSession(w, r, err) {
				return
			}
			applog.FromContext(r.Context()).Error("Transaction delete failed",
				applog.FieldOperation, applog.OpDelete, applog.FieldEntityID, id, applog.FieldError, err)
			s.renderTransactionsWithForm(w, r, transactionForm{},
				failureMessage(err, "Failed to delete transaction"))
			return
		}
		s.notices.Set("transactions", "Transaction deleted successfully")
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderTransactionsWithForm(w http.ResponseWriter, r *http.Request, form transactionForm, banner string) {
	page := transactionsPage{
		basePage: s.base("Transactions", "transactions"),
		Form:     form,
	}
	page.Error = banner

	var txs []core.Transaction
	var cats []core.Category
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		txs, err = s.transactions.List(ctx, core.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.List(ctx)
		return err
	})
	if err := g.Wait(); err == nil {
		page.Rows = make([]transactionRow, 0, len(txs))
		for _, t := range txs {
			page.Rows = append(page.Rows, newTransactionRow(t))
		}
		page.Categories = cats
		page.Income, page.Expense = core.PartitionCategories(cats)
	}
	s.render(w, r, "transactions.html", page)
}
