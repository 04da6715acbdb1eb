// Package commitmsg parses and validates commit messages against the
// convention consumed by the commit skill:
//
//	<type>[(scope)][!]: <message>
//
// with the type drawn from a fixed set. The first line is the subject;
// anything after a blank line is the free-form body.
package commitmsg

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// types is the fixed set of allowed commit types.
var types = []string{"feat", "fix", "docs", "refactor", "chore", "test", "style", "perf", "ci", "misc"}

var typeSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}()

// subjectRe captures type, optional scope, optional breaking marker, and
// the message of a conventional subject line.
var subjectRe = regexp.MustCompile(`^([a-z]+)(?:\(([^)]+)\))?(!)?: (.+)$`)

// Message is a parsed commit message.
type Message struct {
	Type     string // one of Types()
	Scope    string // optional scope inside parentheses
	Breaking bool   // "!" after the type/scope
	Subject  string // text after the colon on the first line
	Body     string // everything after the first blank line
}

// Types returns the allowed commit types.
func Types() []string {
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// Parse parses a full commit message. The returned error describes the
// first structural problem found.
func Parse(raw string) (*Message, error) {
	raw = strings.TrimRight(raw, "\n")
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("commit message is empty")
	}

	subject, body, _ := strings.Cut(raw, "\n")

	m := subjectRe.FindStringSubmatch(subject)
	if m == nil {
		return nil, errors.Errorf("subject '%s' does not match '<type>[(scope)]: <message>'", subject)
	}

	msg := &Message{
		Type:     m[1],
		Scope:    m[2],
		Breaking: m[3] == "!",
		Subject:  m[4],
		Body:     strings.TrimLeft(body, "\n"),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Validate checks the parsed message for convention conformance.
func (m *Message) Validate() error {
	if _, ok := typeSet[m.Type]; !ok {
		return errors.Errorf("unknown commit type '%s' (allowed: %s)", m.Type, strings.Join(types, ", "))
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("commit subject is empty")
	}
	if strings.HasSuffix(m.Subject, ".") {
		return errors.New("commit subject must not end with a period")
	}
	if m.Scope != "" && strings.TrimSpace(m.Scope) == "" {
		return errors.New("commit scope is blank")
	}
	return nil
}

// String renders the message back in convention form.
func (m *Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Type)
	if m.Scope != "" {
		sb.WriteString("(" + m.Scope + ")")
	}
	if m.Breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": " + m.Subject)
	if m.Body != "" {
		sb.WriteString("\n\n" + m.Body)
	}
	return sb.String()
}
