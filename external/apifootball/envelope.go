package apifootball

import (
	"fmt"
	"sort"
	"strings"
)

// envelope is the common wrapper of every api-football v3 response.
// errors is [] when empty and an object keyed by field otherwise.
type envelope struct {
	Errors  any `json:"errors"`
	Results int `json:"results"`
	Paging  struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	} `json:"paging"`
}

func (e envelope) errorMessages() ([]string, bool) {
	switch v := e.Errors.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		messages := make([]string, 0, len(keys))
		rateLimited := false
		for _, k := range keys {
			if isRateLimitKey(k) {
				rateLimited = true
			}
			messages = append(messages, fmt.Sprintf("%s: %v", k, v[k]))
		}
		return messages, rateLimited
	case []any:
		messages := make([]string, 0, len(v))
		rateLimited := false
		for _, item := range v {
			text := fmt.Sprint(item)
			if strings.Contains(strings.ToLower(text), "too many requests") {
				rateLimited = true
			}
			messages = append(messages, text)
		}
		return messages, rateLimited
	default:
		return nil, false
	}
}

func isRateLimitKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "ratelimit", "requests":
		return true
	}
	return false
}
