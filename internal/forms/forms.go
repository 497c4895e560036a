// Package forms validates user-submitted drafts before anything reaches the
// network. Each form exposes Validate() returning field-scoped messages; an
// empty result means the draft may be sent.
package forms

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"finview/internal/core"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	// Report errors under the form field name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	eng := en.New()
	uni := ut.New(eng, eng)
	var found bool
	translator, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		log.Fatal(err)
	}
}

type (
	Login struct {
		Email    string `form:"email" validate:"required,email"`
		Password string `form:"password" validate:"required"`
	}

	Register struct {
		Name     string `form:"name" validate:"required,min=2"`
		Email    string `form:"email" validate:"required,email"`
		Password string `form:"password" validate:"required,min=6"`
	}

	Category struct {
		Name string `form:"name" validate:"required,min=2"`
		Type string `form:"type" validate:"required,oneof=income expense"`
	}

	Transaction struct {
		Date       string `form:"date" validate:"required"`
		CategoryID string `form:"categoryId" validate:"required"`
		Type       string `form:"type" validate:"required,oneof=income expense"`
		Amount     string `form:"amount" validate:"required"`
		Note       string `form:"note" validate:"omitempty,max=200"`
	}

	Profile struct {
		Name  string `form:"name" validate:"required,min=2"`
		Email string `form:"email" validate:"required,email"`
	}

	Password struct {
		Current string `form:"currentPassword" validate:"required"`
		New     string `form:"newPassword" validate:"required,min=6"`
		Confirm string `form:"confirmPassword" validate:"required,eqfield=New"`
	}
)

func (f Login) Validate() map[string]string    { return check(f) }
func (f Register) Validate() map[string]string { return check(f) }
func (f Category) Validate() map[string]string { return check(f) }
func (f Profile) Validate() map[string]string  { return check(f) }

func (f Password) Validate() map[string]string {
	errs := check(f)
	if errs != nil && errs["confirmPassword"] != "" && f.Confirm != "" {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return finish(errs)
}

func (f Transaction) Validate() map[string]string {
	errs := check(f)
	if errs == nil {
		errs = map[string]string{}
	}
	if _, bad := errs["date"]; !bad && f.Date != "" {
		if _, err := core.ParseDate(f.Date); err != nil {
			errs["date"] = "Date must be a valid date"
		}
	}
	if _, bad := errs["amount"]; !bad && f.Amount != "" {
		if _, err := core.ParseAmount(f.Amount); err != nil {
			errs["amount"] = "Amount must be greater than 0"
		}
	}
	return finish(errs)
}

// Draft converts a validated transaction form into the wire draft.
func (f Transaction) Draft() core.TransactionDraft {
	date, _ := core.ParseDate(f.Date)
	amount, _ := core.ParseAmount(f.Amount)
	return core.TransactionDraft{
		Date:       date,
		CategoryID: f.CategoryID,
		Type:       core.EntryType(f.Type),
		Amount:     amount,
		Note:       strings.TrimSpace(f.Note),
	}
}

// Draft converts a validated category form into the wire draft.
func (f Category) Draft() core.CategoryDraft {
	return core.CategoryDraft{
		Name: strings.TrimSpace(f.Name),
		Type: core.EntryType(f.Type),
	}
}

func check(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	out := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		out[fe.Field()] = fe.Translate(translator)
	}
	return out
}

func finish(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
