package family

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// FiltersFromQuery decodes family filters from query parameters. Attribute
// filters use attr=name:value and ranges use range=name:min-max.
func FiltersFromQuery(query url.Values) (Filters, error) {
	f := Filters{}
	if err := decoder.Decode(&f, query); err != nil {
		return f, err
	}
	for _, v := range query["attr"] {
		name, value, found := strings.Cut(v, ":")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !found || name == "" || value == "" {
			continue
		}
		if f.Attributes == nil {
			f.Attributes = map[string][]string{}
		}
		f.Attributes[name] = append(f.Attributes[name], value)
	}
	for _, v := range query["range"] {
		name, bounds, found := strings.Cut(v, ":")
		if !found {
			continue
		}
		low, high, found := strings.Cut(bounds, "-")
		if !found {
			continue
		}
		minValue, errMin := strconv.ParseFloat(strings.TrimSpace(low), 64)
		maxValue, errMax := strconv.ParseFloat(strings.TrimSpace(high), 64)
		if errMin != nil || errMax != nil {
			continue
		}
		if f.Ranges == nil {
			f.Ranges = map[string]Range{}
		}
		f.Ranges[strings.TrimSpace(name)] = Range{Min: minValue, Max: maxValue}
	}
	return f, nil
}
