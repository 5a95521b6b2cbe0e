package app

import (
	"net/url"
	"strings"
)

const preparedBinaryResultParam = "disable_prepared_binary_result"

// normalizeDBURL asks lib/pq to skip binary results for prepared statements,
// which poolers in transaction mode cannot serve. Both URL and key=value DSNs
// are accepted; an explicit setting is left alone.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "://") {
		if strings.Contains(trimmed, preparedBinaryResultParam+"=") {
			return raw
		}
		return trimmed + " " + preparedBinaryResultParam + "=yes"
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get(preparedBinaryResultParam) == "" {
		query.Set(preparedBinaryResultParam, "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
