package agent

import "strings"

// Classification is the triage disposition of an inbound message.
type Classification string

const (
	Manual    Classification = "MANUAL"
	Automated Classification = "AUTOMATED"
)

// automationKeywords trigger the AUTOMATED disposition. Matching is by
// substring, not word boundary, so "automatically" also matches "auto".
var automationKeywords = []string{
	"automated",
	"auto",
	"runbook",
	"playbook",
	"block",
	"isolate",
	"disable",
	"quarantine",
}

// Classify maps free text to a disposition. Pure and total: empty input is
// MANUAL.
func Classify(message string) Classification {
	normalized := strings.ToLower(message)
	for _, keyword := range automationKeywords {
		if strings.Contains(normalized, keyword) {
			return Automated
		}
	}
	return Manual
}

// classificationText is the fallback reply when the chat collaborator
// returns no text.
func classificationText(c Classification) string {
	if c == Automated {
		return "Caso clasificado como AUTOMATED. Creando ticket para aprobacion."
	}
	return "Caso clasificado como MANUAL. Se requiere revision humana."
}
