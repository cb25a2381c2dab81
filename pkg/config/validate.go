package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// validate is a singleton validator instance reporting yaml field names
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks field ranges with struct tags and then the rules that
// depend on the selected source type
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, formatValidationError(err))
	}

	cv := newFieldChecker("source")
	switch c.Source.Type {
	case SourceFile:
		cv.required("path", c.Source.Path)
	case SourceS3:
		cv.required("s3.bucket", c.Source.S3.Bucket).
			required("s3.key", c.Source.S3.Key).
			pairedWith("s3.access_key_id", c.Source.S3.AccessKeyID, "s3.secret_access_key", c.Source.S3.SecretAccessKey)
	case SourcePostgres:
		cv.required("postgres.dsn", c.Source.Postgres.DSN).
			required("postgres.query", c.Source.Postgres.Query)
	}
	if err := cv.err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		param := e.Param()

		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, param))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s], got %q", field, param, e.Value()))
		case "hostname_port":
			msgs = append(msgs, fmt.Sprintf("%s: must be host:port, got %q", field, e.Value()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s: must be a URL, got %q", field, e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// fieldChecker collects cross-field validation errors rather than failing
// on the first one
type fieldChecker struct {
	prefix string
	errs   []error
}

func newFieldChecker(prefix string) *fieldChecker {
	return &fieldChecker{prefix: prefix}
}

func (fc *fieldChecker) required(field, value string) *fieldChecker {
	if strings.TrimSpace(value) == "" {
		fc.errs = append(fc.errs, fmt.Errorf("%s.%s: field is required", fc.prefix, field))
	}
	return fc
}

// pairedWith requires that both values are set or both are empty
func (fc *fieldChecker) pairedWith(field, value, other, otherValue string) *fieldChecker {
	if (value == "") != (otherValue == "") {
		fc.errs = append(fc.errs, fmt.Errorf("%s.%s and %s.%s must be set together", fc.prefix, field, fc.prefix, other))
	}
	return fc
}

func (fc *fieldChecker) err() error {
	return errors.Join(fc.errs...)
}
