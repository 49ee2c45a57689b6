package localize

import (
	"net/url"
	"strings"

	"github.com/valpere/localize/internal/config"
)

// ActiveTranslationsFilter restricts a resource download to phrases that
// have at least one active translation.
const ActiveTranslationsFilter = "has-active-translations"

const (
	ActionPhrases   = "phrases"
	ActionResources = "resources"
	ActionStats     = "stats"
)

// Headers returns the header set sent with every request.
func Headers(cfg config.Config) map[string]string {
	return map[string]string{
		"Content-Type":  cfg.ContentType,
		"Accept":        cfg.Accept,
		"Authorization": cfg.Authorization,
	}
}

// ProjectURL is the base URL of the configured project, without a trailing slash.
func ProjectURL(cfg config.Config) string {
	return strings.TrimSuffix(cfg.BaseURL, "/") + "/" + cfg.ProjectKey
}

// EndpointURL joins the project URL with an action segment and, when params
// is non-empty, an encoded query string.
func EndpointURL(cfg config.Config, action string, params url.Values) string {
	u := ProjectURL(cfg) + "/" + action
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// ResourceURL builds the download URL for a resource file. The parameter
// order is fixed, so the query is assembled by hand instead of through
// url.Values, which sorts keys.
func ResourceURL(cfg config.Config, format, language string) string {
	q := "format=" + url.QueryEscape(strings.ToUpper(format)) +
		"&language=" + url.QueryEscape(strings.ToLower(language)) +
		"&filter=" + ActiveTranslationsFilter
	return EndpointURL(cfg, ActionResources, nil) + "?" + q
}

func StatsURL(cfg config.Config) string {
	return EndpointURL(cfg, ActionStats, nil)
}
