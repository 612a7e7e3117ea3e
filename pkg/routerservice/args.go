package routerservice

import "reflect"

// queryParamsKey is the map key that marks a trailing map argument as an
// options bag.
const queryParamsKey = "queryParams"

// Options is the trailing options argument accepted by Navigate,
// NavigateReplacing, IsActive and GenerateURL.
type Options struct {
	QueryParams QueryParams
}

// RouteQueryParams implements QueryParamsCarrier.
func (o Options) RouteQueryParams() QueryParams {
	return o.QueryParams
}

// QueryParamsCarrier is implemented by values that carry a query parameter
// bag. When such a value is the last positional argument it is consumed as
// options, even if the caller meant it as a model.
type QueryParamsCarrier interface {
	RouteQueryParams() QueryParams
}

// ExtractRouteArgs splits the arguments that follow a route name into route
// models and a query parameter bag. Only the last argument is inspected; it
// is consumed as options when it is an Options value, a QueryParamsCarrier,
// or a map owning a "queryParams" key. Every other argument is a model.
//
// The returned models never alias rest and the bag is never nil.
func ExtractRouteArgs(rest []any) (models []any, qp QueryParams) {
	if len(rest) == 0 {
		return []any{}, QueryParams{}
	}

	last := rest[len(rest)-1]
	bag, ok := optionsBag(last)
	if !ok {
		return append([]any{}, rest...), QueryParams{}
	}
	return append([]any{}, rest[:len(rest)-1]...), bag
}

// optionsBag reports whether v is shaped like an options argument and
// returns its query parameters. A nil value, including a typed nil
// pointer, is never options.
func optionsBag(v any) (QueryParams, bool) {
	if isNilPointer(v) {
		return nil, false
	}
	switch o := v.(type) {
	case nil:
		return nil, false
	case *Options:
		return normalizeBag(o.QueryParams), true
	case Options:
		return normalizeBag(o.QueryParams), true
	case QueryParamsCarrier:
		return normalizeBag(o.RouteQueryParams()), true
	case map[string]any:
		return bagFromMap(o)
	case QueryParams:
		return bagFromMap(o)
	default:
		return nil, false
	}
}

func bagFromMap(m map[string]any) (QueryParams, bool) {
	raw, ok := m[queryParamsKey]
	if !ok {
		return nil, false
	}
	switch bag := raw.(type) {
	case QueryParams:
		return normalizeBag(bag), true
	case map[string]any:
		return normalizeBag(bag), true
	case map[string]string:
		out := make(QueryParams, len(bag))
		for k, v := range bag {
			out[k] = v
		}
		return out, true
	default:
		// An owned key with no usable bag still marks the options argument.
		return QueryParams{}, true
	}
}

func normalizeBag(q QueryParams) QueryParams {
	if q == nil {
		return QueryParams{}
	}
	return q
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
