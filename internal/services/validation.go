package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
)

var (
	nameRe        = regexp.MustCompile(`^[A-Za-z\x{0621}-\x{064A}\s]+$`)
	emailRe       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe       = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	codeRe        = regexp.MustCompile(`^\d{6}$`)
	upperRe       = regexp.MustCompile(`[A-Z]`)
	lowerRe       = regexp.MustCompile(`[a-z]`)
	digitRe       = regexp.MustCompile(`\d`)
	specialCharRe = regexp.MustCompile(`[@#$%*]`)
)

// ValidationError reports the first input rule that failed.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	rules := map[string]*regexp.Regexp{
		"personname":  nameRe,
		"simpleemail": emailRe,
		"phone":       phoneRe,
		"pwupper":     upperRe,
		"pwlower":     lowerRe,
		"pwdigit":     digitRe,
		"pwspecial":   specialCharRe,
	}
	for tag, re := range rules {
		_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
}

type registrationForm struct {
	FirstName string `json:"firstName" validate:"min=3,max=15,personname"`
	LastName  string `json:"lastName" validate:"min=3,max=15,personname"`
	Email     string `json:"email" validate:"simpleemail"`
	Phone     string `json:"phone" validate:"phone"`
	Password  string `json:"password" validate:"min=8,max=15,pwupper,pwlower,pwdigit,pwspecial"`
}

type emailForm struct {
	Email string `json:"email" validate:"simpleemail"`
}

type passwordForm struct {
	Password string `json:"password" validate:"min=8,max=15,pwupper,pwlower,pwdigit,pwspecial"`
}

// check runs the struct rules and converts the first failure into a
// *ValidationError.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Rule:    fe.Tag(),
		Message: ruleMessage(fe.Field(), fe.Tag()),
	}
}

func ruleMessage(field, rule string) string {
	switch field {
	case "firstName", "lastName":
		switch rule {
		case "min":
			return "Name must be at least 3 characters"
		case "max":
			return "Name must not exceed 15 characters"
		}
		return "Name must contain only letters"
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number with country code"
	case "password":
		switch rule {
		case "min":
			return "Password must be at least 8 characters"
		case "max":
			return "Password must not exceed 15 characters"
		}
		return "Password must contain uppercase, lowercase, numbers, and special characters"
	}
	return field + " is invalid"
}

// ValidatePassword applies the password rules on their own, for callers
// that want to check a password before submitting it.
func ValidatePassword(password string) error {
	return check(passwordForm{Password: password})
}

func ValidateEmail(email string) error {
	return check(emailForm{Email: email})
}

func validCode(code string) bool {
	return codeRe.MatchString(code)
}
