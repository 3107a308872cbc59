package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"

	"github.com/go-playground/validator/v10"
)

// ParseQuery fills T from URL query parameters named by `query` struct tags,
// validates it and maps failures to project errors. Supported kinds are
// string, bool, signed and unsigned ints and floats
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Internalf("bind: ParseQuery needs a struct, got %s", rv.Kind())
	}

	q := r.URL.Query()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		raw, ok := q[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(rv.Field(i), strings.TrimSpace(raw[0])); err != nil {
			return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s: %v", name, err), name)
		}
	}

	if err := Get().Validator.Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.Internalf("validation error")
		}
		field, msg := FirstViolation(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return dst, nil
}

func setField(f reflect.Value, s string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(s)
	case reflect.Bool:
		if s == "" {
			f.SetBool(true) // bare ?flag
			return nil
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return errBadValue("a boolean")
		}
		f.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(s, 10, f.Type().Bits())
		if err != nil {
			return errBadValue("an integer")
		}
		f.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(s, 10, f.Type().Bits())
		if err != nil {
			return errBadValue("a non-negative integer")
		}
		f.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(s, f.Type().Bits())
		if err != nil {
			return errBadValue("a number")
		}
		f.SetFloat(v)
	default:
		return errBadValue("a supported scalar")
	}
	return nil
}

type errBadValue string

func (e errBadValue) Error() string { return "must be " + string(e) }
