package client

import (
	"net/url"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/http/common"
)

// encodeRules encodes the names of opt-in validation rules as query string.
func encodeRules(rules []string) string {
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule = strings.TrimSpace(rule); rule != "" {
			names = append(names, rule)
		}
	}

	if len(names) == 0 {
		return ""
	}

	values := make(url.Values)
	values.Add(common.QueryRules, strings.Join(names, ","))
	return "?" + values.Encode()
}

func resolve(path string, id string) string {
	return strings.Replace(path, "{id}", url.PathEscape(id), 1)
}
