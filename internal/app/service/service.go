package service

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidInput    = "Invalid input"
	msgNothingToUpdate = "Nothing to update"
	msgLabelNotFound   = "Label not found"
	msgTaskNotFound    = "Task not found"
)

var hexColor6 = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NewValidator returns a validator that reports fields by their json name
// and knows the hexcolor6 tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColor6.MatchString(fl.Field().String())
	})
	return v
}

func validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return customErrors.NewInvalidArgument(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return customErrors.NewValidation(msgInvalidInput, fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "email":
		return "must be a valid email address"
	case "hexcolor6":
		return "must be # followed by 6 hex digits"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}

// orderBy parses "<column>-<asc|desc>" against an allow-list mapping public
// names to storage columns.
func orderBy(raw, fallback string, columns map[string]string) (string, bool, error) {
	if raw == "" {
		raw = fallback
	}

	name, dir, ok := strings.Cut(raw, "-")
	column, known := columns[name]
	if !ok || !known || (dir != "asc" && dir != "desc") {
		return "", false, customErrors.NewValidation(msgInvalidInput, map[string]string{
			"order_by": "must be <column>-<asc|desc> with column one of: " + strings.Join(sortedKeys(columns), ", "),
		})
	}
	return column, dir == "desc", nil
}

func listParams(v *validator.Validate, q dto.ListQuery, fallback string, columns map[string]string) (model.ListParams, error) {
	if err := validate(v, q); err != nil {
		return model.ListParams{}, err
	}

	column, desc, err := orderBy(q.OrderBy, fallback, columns)
	if err != nil {
		return model.ListParams{}, err
	}

	return model.ListParams{Limit: q.PageSize, Offset: q.Page, Column: column, Desc: desc}, nil
}

// notFoundAs replaces a bare not-found from the store with a client message.
func notFoundAs(err error, msg string) error {
	if customErrors.IsNotFound(err) {
		return customErrors.NewNotFound(msg)
	}
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
