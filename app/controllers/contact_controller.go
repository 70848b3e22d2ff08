package controllers

import (
	"fmt"
	"html/template"
	"net/http"

	"gazette/app/forms"

	"go.uber.org/zap"
)

// ContactController handles the contact and person form pages
type ContactController struct {
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewContactController creates a new ContactController
func NewContactController(basePath string, log *zap.Logger) *ContactController {
	return &ContactController{
		templates: loadTemplates(basePath),
		log:       log,
	}
}

type formPage struct {
	Form   interface{}
	Errors forms.Errors
}

// Contact renders the contact form on GET and processes it on POST
func (cc *ContactController) Contact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		cc.render(w, r, "contact", formPage{Form: &forms.ContactForm{}})
		return
	}

	form, errs := forms.ParseContact(r)
	if errs.HasErrors() {
		sendFieldErrors(w, r, cc.templates["contact"], formPage{Form: form, Errors: errs}, errs)
		return
	}

	cc.log.Info("validated form data",
		zap.String("name", form.Name),
		zap.String("email", form.Email),
		zap.String("message", form.Message),
	)

	if wantsJSON(r) {
		sendJSON(w, map[string]string{"message": "Thank you for your message."})
		return
	}
	fmt.Fprint(w, "Thank you for your message.")
}

// Person renders the person form on GET and processes it on POST
func (cc *ContactController) Person(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		cc.render(w, r, "person", formPage{Form: &forms.PersonForm{}})
		return
	}

	form, errs := forms.ParsePerson(r)
	if errs.HasErrors() {
		sendFieldErrors(w, r, cc.templates["person"], formPage{Form: form, Errors: errs}, errs)
		return
	}

	cc.log.Info("person data received",
		zap.String("name", form.Name),
		zap.String("location", form.Location),
		zap.Int("age", form.Age),
	)

	if wantsJSON(r) {
		sendJSON(w, form)
		return
	}
	fmt.Fprint(w, "Person data saved.")
}

func (cc *ContactController) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if err := cc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
