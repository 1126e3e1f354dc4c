package errors

import (
	"bytes"
	"text/template"
)

// DefaultLocale is the locale of the built-in user messages.
const DefaultLocale = "en-US"

var userMessages = map[Code]string{
	CodeUnknown:               "An unexpected error occurred.",
	CodeEventNameEmpty:        "Event name is required.",
	CodeEventTimestampInvalid: "Event timestamp {{.timestamp}} is not a valid RFC 3339 time.",
	CodeEventIDInvalid:        "Event id must be a positive number.",
	CodeNotFound:              "Event{{with .id}} {{.}}{{end}} was not found.",
	CodeStoreUnavailable:      "Events are temporarily unavailable. Please try again.",
	CodeRateLimited:           "Too many requests. Please slow down.",
}

// UserMessage renders the user-facing message for code.
// Unknown codes render as the code itself.
func UserMessage(code Code, metadata map[string]string) string {
	text, ok := userMessages[code]
	if !ok {
		return string(code)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	tmpl, err := template.New("msg").Option("missingkey=zero").Parse(text)
	if err != nil {
		return text
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return text
	}
	return buf.String()
}
