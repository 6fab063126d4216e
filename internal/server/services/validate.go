package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate   = newValidator()
	namePolicy = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

type credentialsInput struct {
	UserName string `json:"username" validate:"required,min=3,max=16"`
	Password string `json:"password" validate:"required,min=8,max=60"`
}

type folderNameInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

type fileNameInput struct {
	Name string `json:"name" validate:"required"`
}

// validateStruct runs the validator and converts its output into a
// *common.ValidationError with one entry per rejected field.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &common.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, common.FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

// cleanFolderName trims name, strips markup and escapes HTML through a
// strict policy, then validates the result.
func cleanFolderName(name string) (string, error) {
	clean := strings.TrimSpace(namePolicy.Sanitize(strings.TrimSpace(name)))
	if err := validateStruct(folderNameInput{Name: clean}); err != nil {
		return "", err
	}
	return clean, nil
}

// checkFileName accepts any valid UTF-8 name that is not blank. The name is
// stored as given, surrounding spaces included.
func checkFileName(name string) error {
	if !utf8.ValidString(name) {
		return common.NewValidationError("name", "must be valid UTF-8")
	}
	return validateStruct(fileNameInput{Name: strings.TrimSpace(name)})
}
