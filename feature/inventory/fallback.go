package inventory

import (
	"fmt"
	"strings"
)

// FallbackRule assigns devices of a company to a site when the asset has no
// location. A rule applies when Keyword is contained in the lower-cased company name.
type FallbackRule struct {
	Keyword string
	Site    string
}

// ParseFallbackRules parses "keyword=Site Name" pairs separated by commas.
func ParseFallbackRules(raw string) ([]FallbackRule, error) {
	var rules []FallbackRule
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyword, site, ok := strings.Cut(part, "=")
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		site = strings.TrimSpace(site)
		if !ok || keyword == "" || site == "" {
			return nil, fmt.Errorf("invalid fallback site rule %q, expected keyword=Site Name", part)
		}
		rules = append(rules, FallbackRule{Keyword: keyword, Site: site})
	}
	return rules, nil
}

// matchFallback returns the site name of the first rule matching company.
func matchFallback(rules []FallbackRule, company string) (string, bool) {
	lower := strings.ToLower(company)
	for _, rule := range rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Site, true
		}
	}
	return "", false
}
