package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/routerservice/internal/errors"
	"github.com/vango-dev/routerservice/pkg/routerservice"
)

// routeArgs converts command-line arguments into the positional arguments
// of a service call. Plain arguments are string models, matching the
// snapshot. An argument that starts with "{" is decoded as a JSON object,
// so a trailing {"queryParams": {...}} is read as options. When query is
// non-empty an Options value is appended, which turns a trailing JSON
// object back into a model.
func routeArgs(args []string, query map[string]string) ([]any, error) {
	out := make([]any, 0, len(args)+1)
	for _, arg := range args {
		if !strings.HasPrefix(strings.TrimSpace(arg), "{") {
			out = append(out, arg)
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(arg), &obj); err != nil {
			return nil, errors.New("R300").
				WithDetail("Argument " + strconv.Quote(arg) + " is not a JSON object").
				WithExample(`routerctl url blog.post 42 '{"queryParams":{"sort":"asc"}}'`).
				Wrap(err)
		}
		out = append(out, jsonModel(obj))
	}

	if len(query) > 0 {
		qp := make(routerservice.QueryParams, len(query))
		for k, v := range query {
			qp[k] = v
		}
		out = append(out, routerservice.Options{QueryParams: qp})
	}
	return out, nil
}

// jsonArgs converts decoded JSON values into positional arguments. Objects
// are kept as maps; every other value becomes a string model.
func jsonArgs(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if obj, ok := v.(map[string]any); ok {
			out = append(out, jsonModel(obj))
			continue
		}
		out = append(out, scalarString(v))
	}
	return out
}

// jsonModel stringifies the values of a "queryParams" bag so they compare
// equal to snapshot values.
func jsonModel(obj map[string]any) map[string]any {
	bag, ok := obj["queryParams"].(map[string]any)
	if !ok {
		return obj
	}
	qp := make(map[string]any, len(bag))
	for k, v := range bag {
		qp[k] = scalarString(v)
	}
	obj["queryParams"] = qp
	return obj
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// jsonString renders v as compact JSON for terminal output.
func jsonString(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
