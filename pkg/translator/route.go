package translator

import "strings"

// Route is the deterministic classification of a request, used as the
// fallback when the LLM path is unavailable or its output is rejected. The
// LLM path's own output is not checked against it.
type Route struct {
	Domain     string
	Team       string
	RouteClass string
}

// GeneralRoute is returned when no keyword rule matches.
var GeneralRoute = Route{Domain: "General", Team: "General", RouteClass: "general_question"}

// keywordRoute is one rule in the ordered routing table: the first rule
// whose any keyword appears in the lowercased request text wins. Ordered
// most-specific-first so e.g. "cpu temperature" hits temperature before the
// more general cpu_info rule.
type keywordRoute struct {
	keywords []string
	route    Route
}

var routeTable = []keywordRoute{
	{
		keywords: []string{"temperature", "thermal", "how hot", " temp "},
		route:    Route{Domain: "performance", Team: "Performance", RouteClass: "cpu_temperature"},
	},
	{
		keywords: []string{"memory", "ram", "swap"},
		route:    Route{Domain: "performance", Team: "Performance", RouteClass: "memory_usage"},
	},
	{
		keywords: []string{"cores", "cpu model", "architecture", "processor", "how many cpu", "cpu"},
		route:    Route{Domain: "performance", Team: "Performance", RouteClass: "cpu_info"},
	},
	{
		keywords: []string{"disk", "storage", "partition", "how much space"},
		route:    Route{Domain: "storage", Team: "Storage", RouteClass: "disk_usage"},
	},
	{
		keywords: []string{"sound card", "audio device", "audio", "speaker", "microphone"},
		route:    Route{Domain: "audio", Team: "Audio", RouteClass: "audio_hardware"},
	},
	{
		keywords: []string{"wifi", "wi-fi", "wireless", "dns", "network", "internet", "ethernet"},
		route:    Route{Domain: "network", Team: "Network", RouteClass: "network_status"},
	},
	{
		keywords: []string{"do i have", "is installed", "installed?", "have i got"},
		route:    Route{Domain: "packages", Team: "Packages", RouteClass: "package_check"},
	},
	{
		keywords: []string{"errors", "problems", "what's wrong", "how is my computer", "system health", "failed service", "crash"},
		route:    Route{Domain: "system", Team: "System", RouteClass: "system_health"},
	},
}

// ClassifyRoute applies the deterministic keyword table to userText and
// returns the first matching route, or GeneralRoute if nothing matches.
func ClassifyRoute(userText string) Route {
	lower := strings.ToLower(userText)
	for _, kr := range routeTable {
		for _, kw := range kr.keywords {
			if strings.Contains(lower, kw) {
				return kr.route
			}
		}
	}
	return GeneralRoute
}
