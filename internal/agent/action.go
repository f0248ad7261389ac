package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The model replies with free text, not a structured tool call. The contract
// here is deliberately narrow: recognize exactly three call shapes by
// substring, extract exactly their fields, and fail closed on anything else.

type ActionKind int

const (
	ActionNotRecognized ActionKind = iota
	ActionBalanceLookup
	ActionSubmit
	ActionSendEmail
)

func (k ActionKind) String() string {
	switch k {
	case ActionBalanceLookup:
		return "get_leave_balance"
	case ActionSubmit:
		return "submit_leave_application"
	case ActionSendEmail:
		return "send_email"
	default:
		return "not_recognized"
	}
}

type Action struct {
	Kind       ActionKind
	Raw        string
	EmployeeID string
	Days       int
	Subject    string
	Body       string
}

// ExtractionError marks output that matched a call shape but omitted a field
// the pattern requires. The loop converts it into a clean halt.
type ExtractionError struct {
	Call  string
	Field string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract %s from %s call", e.Field, e.Call)
}

var (
	fencePattern      = regexp.MustCompile("(?m)^```[a-zA-Z_]*$")
	employeeIDPattern = regexp.MustCompile(`employee_id='(.*?)'`)
	daysPattern       = regexp.MustCompile(`days_requested=(\d+)`)
	subjectPattern    = regexp.MustCompile(`subject='(.*?)'`)
	bodyPattern       = regexp.MustCompile(`body='(.*?)'`)
)

// Normalize strips markdown code fences and stray backticks so the output
// looks like a bare call string.
func Normalize(raw string) string {
	s := fencePattern.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "`", "")
	return strings.TrimSpace(s)
}

// ParseAction matches the normalized output against the three recognized call
// shapes. Unmatched output is a NotRecognized action, not an error; a matched
// shape with a missing required field is an ExtractionError.
func ParseAction(raw string) (Action, error) {
	s := Normalize(raw)

	switch {
	case strings.Contains(s, "get_leave_balance"):
		id, ok := extract(employeeIDPattern, s)
		if !ok {
			return Action{}, &ExtractionError{Call: "get_leave_balance", Field: "employee_id"}
		}
		return Action{Kind: ActionBalanceLookup, Raw: s, EmployeeID: id}, nil

	case strings.Contains(s, "submit_leave_application"):
		id, ok := extract(employeeIDPattern, s)
		if !ok {
			return Action{}, &ExtractionError{Call: "submit_leave_application", Field: "employee_id"}
		}
		daysStr, ok := extract(daysPattern, s)
		if !ok {
			return Action{}, &ExtractionError{Call: "submit_leave_application", Field: "days_requested"}
		}
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return Action{}, &ExtractionError{Call: "submit_leave_application", Field: "days_requested"}
		}
		return Action{Kind: ActionSubmit, Raw: s, EmployeeID: id, Days: days}, nil

	case strings.Contains(s, "send_email"):
		subject, ok := extract(subjectPattern, s)
		if !ok {
			return Action{}, &ExtractionError{Call: "send_email", Field: "subject"}
		}
		body, ok := extract(bodyPattern, s)
		if !ok {
			return Action{}, &ExtractionError{Call: "send_email", Field: "body"}
		}
		return Action{Kind: ActionSendEmail, Raw: s, Subject: subject, Body: body}, nil

	default:
		return Action{Kind: ActionNotRecognized, Raw: s}, nil
	}
}

func extract(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}
