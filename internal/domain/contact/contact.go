// Package contact holds the public contact form, its validation and the
// WhatsApp deep link.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Method is the channel the visitor wants an answer on
type Method string

// Contact methods
const (
	MethodWhatsApp Method = "whatsapp"
	MethodEmail    Method = "email"
)

// Form is the contact form submitted to the backend
type Form struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Email       string `json:"email,omitempty" form:"email" validate:"omitempty,email,max=254"`
	PhoneNumber string `json:"phoneNumber,omitempty" form:"phoneNumber" validate:"omitempty,max=20"`
	Subject     string `json:"subject" form:"subject" validate:"required,max=200"`
	Message     string `json:"message" form:"message" validate:"required,max=5000"`
	Method      Method `json:"contactMethod" form:"contactMethod" validate:"oneof=whatsapp email"`
}

// Normalize trims every field and defaults the method to WhatsApp
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
	f.Method = Method(strings.ToLower(strings.TrimSpace(string(f.Method))))
	if f.Method == "" {
		f.Method = MethodWhatsApp
	}
}

// Receipt is the backend's answer to a submission
type Receipt struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ContactID     int64  `json:"contactId"`
	WhatsAppSent  bool   `json:"whatsappSent"`
	EmailSent     bool   `json:"emailSent"`
	PrimaryMethod string `json:"primaryMethod"`
	ResponseTime  string `json:"responseTime"`
	Timestamp     string `json:"timestamp"`
}

// ValidationError lists the offending fields by their form names
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid contact form: " + strings.Join(names, ", ")
}

// Validator checks contact forms
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator reporting json field names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(methodFields, Form{})
	return &Validator{validate: v}
}

// methodFields requires the field the chosen method answers on
func methodFields(sl validator.StructLevel) {
	f := sl.Current().Interface().(Form)
	switch f.Method {
	case MethodWhatsApp:
		if f.PhoneNumber == "" {
			sl.ReportError(f.PhoneNumber, "phoneNumber", "PhoneNumber", "required", "")
		}
	case MethodEmail:
		if f.Email == "" {
			sl.ReportError(f.Email, "email", "Email", "required", "")
		}
	}
}

// Validate normalizes f and checks it. The returned error is a
// *ValidationError when fields are invalid.
func (v *Validator) Validate(f *Form) error {
	f.Normalize()

	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate contact form: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return "Choose WhatsApp or email"
	default:
		return "Invalid value"
	}
}

// WhatsAppLink builds a wa.me chat URL pre-filled with the form content.
// Only the digits of number are kept.
func WhatsAppLink(number string, f Form) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	var text strings.Builder
	if f.Name != "" {
		fmt.Fprintf(&text, "Hello, my name is %s.\n", f.Name)
	}
	if f.Subject != "" {
		fmt.Fprintf(&text, "Subject: %s\n", f.Subject)
	}
	if f.Message != "" {
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(f.Message)
	}

	link := "https://wa.me/" + digits.String()
	if text.Len() == 0 {
		return link
	}
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(text.String()), "+", "%20")
}
