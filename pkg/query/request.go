package query

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mwantia/cookbook/pkg/errors"
)

// Request is a listing request as the caller sent it.
type Request struct {
	Filter string
	Sort   string
	Limit  int
	Page   int
}

// Defaults fill in parameters the caller left out.
type Defaults struct {
	Sort  string
	Limit int
	Page  int
}

var DefaultRequest = Defaults{
	Sort:  "id+",
	Limit: 5,
	Page:  0,
}

// ParseRequest reads filter, sort, limit and page from query parameters.
// Bounds are checked by the Translator.
func ParseRequest(values url.Values, def Defaults) (Request, error) {
	req := Request{
		Filter: values.Get("filter"),
		Sort:   values.Get("sort"),
		Limit:  def.Limit,
		Page:   def.Page,
	}
	if req.Sort == "" {
		req.Sort = def.Sort
	}

	var err error
	if req.Limit, err = intParam(values, "limit", def.Limit); err != nil {
		return Request{}, err
	}
	if req.Page, err = intParam(values, "page", def.Page); err != nil {
		return Request{}, err
	}
	return req, nil
}

func intParam(values url.Values, name string, def int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewWithContext(errors.ErrCodeValidation,
			fmt.Sprintf(`Query parameter "%s" must be an integer.`, name),
			map[string]any{
				"parameter": name,
				"value":     raw,
			})
	}
	return v, nil
}
