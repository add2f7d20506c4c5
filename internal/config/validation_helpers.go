package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

// convertValidationError normalizes validator errors into quill validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return qerrors.NewValidationError(field, msg, err)
	}

	return qerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName drops the root struct from the namespace, which the tag
// name func has already rendered with YAML keys.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}
