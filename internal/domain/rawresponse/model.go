package rawresponse

import "time"

// RawResponse is one provider response exactly as it was fetched.
// Rows are never updated; a refetch appends a new row.
type RawResponse struct {
	ID            int64
	Endpoint      string
	RequestParams map[string]any
	ResponseData  []byte
	FetchedAt     time.Time
}

// Param returns the request parameter as a string, or "" when it is absent.
func (r RawResponse) Param(key string) string {
	v, ok := r.RequestParams[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatFloatParam(t)
	case int:
		return formatIntParam(int64(t))
	case int64:
		return formatIntParam(t)
	default:
		return ""
	}
}
