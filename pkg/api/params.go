package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mwantia/cookbook/pkg/errors"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// listValues parses the raw query of r. Pairs are split on '&' only, so a
// literal ';' inside a filter is kept. Values are form-decoded except sort,
// which is read verbatim so a '+' direction suffix is not turned into a space.
func listValues(r *http.Request) (url.Values, error) {
	values := url.Values{}
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, malformedQuery(rawKey, err)
		}

		unescape := url.QueryUnescape
		if key == "sort" {
			unescape = url.PathUnescape
		}
		value, err := unescape(rawValue)
		if err != nil {
			return nil, malformedQuery(key, err)
		}
		values.Add(key, value)
	}
	return values, nil
}

func malformedQuery(name string, err error) error {
	return errors.NewWithContext(errors.ErrCodeValidation,
		fmt.Sprintf(`Query parameter "%s" is not correctly encoded.`, name),
		map[string]any{
			"parameter": name,
			"error":     err.Error(),
		})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewWithContext(errors.ErrCodeValidation,
			"Value should be convertible to an integer",
			map[string]any{
				"parameter": name,
				"value":     raw,
			})
	}
	return id, nil
}

// decodeBody reads a JSON body into v and validates it.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := r.Body
	if s.cfg.MaxRequestBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Validation("Request body exceeds %d bytes.", tooLarge.Limit)
		}
		return errors.NewWithContext(errors.ErrCodeValidation, "Request body is not valid JSON.",
			map[string]any{
				"error": err.Error(),
			})
	}

	if err := s.validate.Struct(v); err != nil {
		var invalid validator.ValidationErrors
		if !stderrors.As(err, &invalid) {
			return fmt.Errorf("failed to validate request body: %w", err)
		}

		fields := make(map[string]any, len(invalid))
		for _, fe := range invalid {
			fields[fieldPath(fe.Namespace())] = fe.Tag()
		}
		return errors.NewWithContext(errors.ErrCodeValidation, "Request body failed validation.",
			map[string]any{
				"fields": fields,
			})
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
