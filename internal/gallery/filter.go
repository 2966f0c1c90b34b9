package gallery

import "strings"

// ListOptions narrows List. Empty fields match everything.
type ListOptions struct {
	Email     string
	Themes    []string
	Filters   []string
	FreeWords string
	// Limit keeps only the newest entries.
	Limit int
}

func containsExact(hay []string, needle string) bool {
	for _, h := range hay {
		if h == needle {
			return true
		}
	}
	return false
}

func (o ListOptions) match(e Entry) bool {
	if o.Email != "" && !strings.EqualFold(e.Email, o.Email) {
		return false
	}
	if len(o.Themes) > 0 && !containsExact(o.Themes, e.Theme) {
		return false
	}
	if len(o.Filters) > 0 && !containsExact(o.Filters, e.Filter) {
		return false
	}
	if o.FreeWords != "" {
		hay := strings.ToLower(strings.Join([]string{e.Email, e.Theme, e.Filter, e.Layout}, " "))
		for _, k := range strings.Fields(o.FreeWords) {
			if !strings.Contains(hay, strings.ToLower(k)) {
				return false
			}
		}
	}
	return true
}
