// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "diwan/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// JSONOptions tunes ParseJSON; the zero value means a required body of at most 1MB with unknown fields allowed
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

var strict = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

type checker struct {
	v  *validator.Validate
	tr ut.Translator
}

var (
	once sync.Once
	chk  checker
)

// tag, pattern, and message for the civic tags
var customTags = []struct {
	tag string
	re  *regexp.Regexp
	msg string
}{
	{"handle", regexp.MustCompile(`^@[A-Za-z0-9_.]{1,30}$`), "{0} must be an @handle"},
	{"slug", regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`), "{0} must be a lowercase slug"},
}

func get() checker {
	once.Do(func() {
		loc := en.New()
		tr, _ := ut.New(loc, loc).GetTranslator("en")
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = entrans.RegisterDefaultTranslations(v, tr)

		translate(v, tr, "min", "{0} must be at least {1}")
		translate(v, tr, "max", "{0} must be at most {1}")
		for _, c := range customTags {
			re := c.re
			_ = v.RegisterValidation(c.tag, func(fl validator.FieldLevel) bool { return re.MatchString(fl.Field().String()) })
			translate(v, tr, c.tag, c.msg)
		}
		chk = checker{v: v, tr: tr}
	})
	return chk
}

// jsonName reports fields by their json name so messages match the wire
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func translate(v *validator.Validate, tr ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, tr,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Check validates v and returns the first failing field with a readable message
// msg is empty when v is valid
func Check(v any) (field, msg string) {
	c := get()
	err := c.v.Struct(v)
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(c.tr)
	}
	return "", err.Error()
}

// ParseJSON decodes the body into T and validates it
// failures are ErrorCodeJSON for malformed input and ErrorCodeValidation with a field otherwise
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := strict
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() { _ = r.Body.Close() }()

	body := io.Reader(r.Body)
	if !o.AllowEmptyBody {
		first := make([]byte, 1)
		if n, _ := r.Body.Read(first); n == 0 {
			return zero, perr.JSONErrf("empty body")
		}
		body = io.MultiReader(bytes.NewReader(first), r.Body)
	}
	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if field, msg := Check(dst); msg != "" {
		return zero, perr.WithField(perr.Validationf("%s", msg), field)
	}
	return dst, nil
}
