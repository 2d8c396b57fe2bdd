package syslogmsg

import "regexp"

// rfc3164Pattern matches the legacy BSD syslog header:
// Mmm DD HH:MM:SS HOSTNAME MSG
var rfc3164Pattern = regexp.MustCompile(
	`^([A-Z][a-z]{2}) +(\d{1,2}) (\d{2}:\d{2}:\d{2}) (\S+) ([\s\S]*)$`,
)

// rfc3164TagPattern pulls the optional "TAG:" or "TAG[PID]:" prefix off
// the start of a 3164 MSG field.
var rfc3164TagPattern = regexp.MustCompile(`^([A-Za-z0-9_./-]+(?:\[\d+\])?):\s*([\s\S]*)$`)

// parseRFC3164 attempts the RFC 3164 grammar against body. On success
// it returns captures for TIMESTAMP, HOSTNAME, MSG, and, when the MSG
// carries a "tag:" prefix as most 3164 producers emit, TAG.
func parseRFC3164(body string) (Captures, bool) {
	m := rfc3164Pattern.FindStringSubmatch(body)
	if m == nil {
		return nil, false
	}

	caps := newCaptures()
	caps.Set("TIMESTAMP", m[1]+" "+m[2]+" "+m[3])
	caps.Set("HOSTNAME", m[4])
	msg := m[5]

	if tm := rfc3164TagPattern.FindStringSubmatch(msg); tm != nil {
		caps.Set("TAG", tm[1])
		msg = tm[2]
	}
	caps.Set("MSG", msg)

	return caps, true
}
