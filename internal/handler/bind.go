package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body"

// bindJSON decodes the body into out and writes a 400 on failure.
// Binding tag failures name the offending JSON field; anything else
// (bad syntax, wrong types, empty body) is reported as an invalid body.
func bindJSON(c *gin.Context, out interface{}) bool {
	err := c.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	logger.Log.Warn("Request body rejected",
		zap.String("route", c.FullPath()),
		zap.String("ip", c.ClientIP()),
		zap.Error(err),
	)
	respondError(c, apperror.Validation(bindErrorMessage(err, out)))
	return false
}

func bindErrorMessage(err error, out interface{}) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return jsonFieldName(out, fe.StructField()) + " " + validationMessage(fe.Tag(), fe.Param())
	}
	return msgInvalidBody
}

// jsonFieldName maps a struct field to the name clients send.
func jsonFieldName(out interface{}, structField string) string {
	t := reflect.TypeOf(out)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}

	sf, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return structField
	}
	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}

var errInvalidID = errors.New("invalid id")

// parseOptionalID accepts the id shapes browser forms produce: a JSON
// number, a numeric string, or "" / null / absent for no value.
func parseOptionalID(raw json.RawMessage) (*uint, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, errInvalidID
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	} else {
		text = string(raw)
	}

	return parseID(text)
}

// parseID parses a positive integer identifier.
func parseID(text string) (*uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil || n == 0 || n > math.MaxUint32 {
		return nil, errInvalidID
	}
	id := uint(n)
	return &id, nil
}
