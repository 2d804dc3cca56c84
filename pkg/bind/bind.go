// Package bind decodes and validates request input into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/saborexpress/config"
	"github.com/shashiranjanraj/saborexpress/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 1 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return validationErrors(dest), nil
}

// Query fills the string, int and bool fields of dest from the URL query,
// keyed by each field's json name, then runs validation.
// Returns (nil, err) when a value cannot be converted.
func Query(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, errors.New("bind: Query needs a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()
	q := r.URL.Query()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" || !q.Has(name) {
			continue
		}
		raw := q.Get(name)
		fv := rv.Field(i)

		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int64, reflect.Int32:
			n, perr := strconv.ParseInt(raw, 10, 64)
			if perr != nil {
				return nil, fmt.Errorf("invalid query parameter %s: %w", name, perr)
			}
			fv.SetInt(n)
		case reflect.Bool:
			b, perr := strconv.ParseBool(raw)
			if perr != nil {
				return nil, fmt.Errorf("invalid query parameter %s: %w", name, perr)
			}
			fv.SetBool(b)
		}
	}

	return validationErrors(dest), nil
}

func validationErrors(dest interface{}) map[string]string {
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs
	}
	return nil
}
