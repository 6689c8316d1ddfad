package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    Classification
	}{
		{"block the host", Automated},
		{"please ISOLATE host-9", Automated},
		{"run the playbook for this", Automated},
		{"quarantine the endpoint now", Automated},
		{"this will happen automatically", Automated}, // substring match on "auto"
		{"please help me reset my password", Manual},
		{"necesito ayuda con mi cuenta", Manual},
		{"", Manual},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.message), "message: %q", tc.message)
	}
}

func TestParseTicketID(t *testing.T) {
	cases := []struct {
		message string
		want    int
	}{
		{"ticket #77 needs action", 77},
		{"ticket_id=42", 42},
		{"revisar el ticket 123 por favor", 123},
		{"host-9 is down", 0}, // digits glued to letters are not an id
		{"no id here", 0},
		{"", 0},
		{"#007", 7},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseTicketID(tc.message), "message: %q", tc.message)
	}
}
