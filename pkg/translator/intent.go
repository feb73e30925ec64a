package translator

import (
	"strings"

	"github.com/jjgarcianorway/anna/pkg/ticket"
)

// requestKeywords mark a ticket intended to change system state.
var requestKeywords = []string{
	"install", "remove", "uninstall", "update", "upgrade",
	"enable", "disable", "start ", "stop ", "restart", "reboot", "reload",
}

// investigateKeywords mark a ticket that wants a diagnosis, not a fact.
var investigateKeywords = []string{
	"why", "investigate", "debug", "diagnose", "troubleshoot", "figure out",
}

// ClassifyIntent applies a keyword heuristic to userText. Request keywords
// take priority over investigate keywords: "please restart the service and
// figure out why it keeps failing" is a Request, and so is "why did the
// update fail", since "update" is itself a request keyword. Anything
// matching neither defaults to Question, the safest and most common case.
func ClassifyIntent(userText string) ticket.Intent {
	lower := strings.ToLower(userText)

	for _, kw := range requestKeywords {
		if strings.Contains(lower, kw) {
			return ticket.IntentRequest
		}
	}
	for _, kw := range investigateKeywords {
		if strings.Contains(lower, kw) {
			return ticket.IntentInvestigate
		}
	}
	return ticket.IntentQuestion
}
