// Package validation holds the user-record input rules. The server rules
// guard the API; the form rules mirror the lighter checks the client runs
// before it ever touches the network.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLen  = 100
	MaxEmailLen = 100
	MaxPhoneLen = 20
)

var (
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe      = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

// Messages shared with the HTTP layer.
const (
	MsgRequired     = "Name and email are required"
	MsgInvalidEmail = "Invalid email format"
	MsgInvalidName  = "Name can only contain letters and spaces"
	MsgInvalidPhone = "Phone can only contain numbers and phone characters"
	MsgInvalidID    = "Invalid user ID"
)

// serverUser is what the API accepts. Emails are ASCII only so that
// case-insensitive uniqueness folds the same way on every store.
type serverUser struct {
	Name  string `json:"name" validate:"required,max=100,personname"`
	Email string `json:"email" validate:"required,max=100,ascii,email"`
	Phone string `json:"phone" validate:"omitempty,max=20,phonechars"`
}

// clientForm is what the form checks locally.
type clientForm struct {
	Name  string `json:"name" validate:"required,personname"`
	Email string `json:"email" validate:"required,contains=@,contains=."`
	Phone string `json:"phone" validate:"omitempty,phonechars"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "phonechars", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// FieldError is a single failed rule, already rendered for humans.
type FieldError struct {
	Field   string
	Message string
}

// Error reports one or more invalid fields. It matches common.ErrValidation.
type Error struct {
	Fields  []FieldError
	Summary string
}

func (e *Error) Error() string { return e.Summary }

func (e *Error) Unwrap() error { return common.ErrValidation }

// Message returns the message for field, or "" when the field passed.
func (e *Error) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Invalid builds a single-field validation error.
func Invalid(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}, Summary: message}
}

// ValidateUser applies the API rules to already trimmed input.
func ValidateUser(name, email, phone string) error {
	err := validate.Struct(serverUser{Name: name, Email: email, Phone: phone})
	if err == nil {
		return nil
	}

	fields, required := collect(err, serverMessage)
	summary := fields[0].Message
	if required {
		summary = MsgRequired
	}
	return &Error{Fields: fields, Summary: summary}
}

// ValidateForm applies the client-side form rules to already trimmed input.
func ValidateForm(name, email, phone string) error {
	err := validate.Struct(clientForm{Name: name, Email: email, Phone: phone})
	if err == nil {
		return nil
	}

	fields, _ := collect(err, formMessage)
	return &Error{Fields: fields, Summary: fields[0].Message}
}

// ParseID accepts positive decimal integers only.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid("id", MsgInvalidID)
	}
	return id, nil
}

func collect(err error, render func(field, tag string) string) ([]FieldError, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Only reachable on programmer error (bad struct passed in).
		panic(err)
	}

	fields := make([]FieldError, 0, len(ve))
	required := false
	for _, fe := range ve {
		if fe.Tag() == "required" {
			required = true
		}
		fields = append(fields, FieldError{Field: fe.Field(), Message: render(fe.Field(), fe.Tag())})
	}
	return fields, required
}

func serverMessage(field, tag string) string {
	switch field + "." + tag {
	case "name.required":
		return "Name is required"
	case "email.required":
		return "Email is required"
	case "name.personname":
		return MsgInvalidName
	case "email.email", "email.ascii":
		return MsgInvalidEmail
	case "phone.phonechars":
		return MsgInvalidPhone
	case "name.max":
		return "Name must be at most " + strconv.Itoa(MaxNameLen) + " characters"
	case "email.max":
		return "Email must be at most " + strconv.Itoa(MaxEmailLen) + " characters"
	case "phone.max":
		return "Phone must be at most " + strconv.Itoa(MaxPhoneLen) + " characters"
	}
	return "Invalid " + field
}

func formMessage(field, tag string) string {
	switch field + "." + tag {
	case "name.required":
		return "Name is required"
	case "name.personname":
		return MsgInvalidName
	case "email.required":
		return "Email is required"
	case "email.contains":
		return "Please enter a valid email"
	case "phone.phonechars":
		return MsgInvalidPhone
	}
	return "Invalid " + field
}
