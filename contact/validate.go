package contact

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"tickethub-cli/model"
)

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

var fieldOrder = []string{"Name", "Email", "Phone", "Subject", "Message"}

// ValidationError carries the first failing field and the message shown to
// the user for it.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return v.Message
}

// Validator checks a submission before it is added to the Book.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Normalize trims every field, as the form does before validating.
func Normalize(s model.ContactSubmission) model.ContactSubmission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	return s
}

// Validate reports the first invalid field in form order.
func (v *Validator) Validate(s model.ContactSubmission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate submission")
	}

	failed := map[string]string{}
	for _, fe := range fieldErrs {
		failed[fe.Field()] = fe.Tag()
	}
	for _, field := range fieldOrder {
		tag, ok := failed[field]
		if !ok {
			continue
		}
		return ValidationError{Field: field, Message: message(field, tag)}
	}
	return errors.Wrap(err, "validate submission")
}

// ValidateField checks one field by name, for prompts that validate as the
// user types.
func (v *Validator) ValidateField(field string, value string) error {
	var s model.ContactSubmission
	switch field {
	case "Name":
		s.Name = value
	case "Email":
		s.Email = value
	case "Phone":
		s.Phone = value
	case "Subject":
		s.Subject = value
	case "Message":
		s.Message = value
	default:
		return errors.Newf("unknown field %q", field)
	}
	err := v.validate.StructPartial(Normalize(s), field)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return ValidationError{Field: field, Message: message(field, fieldErrs[0].Tag())}
	}
	return errors.Wrap(err, "validate field")
}

func message(field string, tag string) string {
	switch field {
	case "Name":
		return "Please enter your name"
	case "Email":
		if tag == "required" {
			return "Please enter your email"
		}
		return "Please enter a valid email address"
	case "Phone":
		if tag == "required" {
			return "Please enter your phone number"
		}
		return "Phone number must be 10 digits"
	case "Subject":
		return "Please enter a subject"
	case "Message":
		return "Please enter your message"
	default:
		return field + " is invalid"
	}
}
