package syslogmsg

import "regexp"

// rfc5424Pattern matches the RFC 5424 structured header:
// VERSION SP TIMESTAMP SP HOSTNAME SP APP-NAME SP PROCID SP MSGID SP SD [SP MSG]
// Any of TIMESTAMP/HOSTNAME/APP-NAME/PROCID/MSGID may be "-" meaning
// absent. SD is either "-" or one or more bracketed groups; the nested
// structured-data grammar is not parsed field-by-field, only captured
// as a whole.
var rfc5424Pattern = regexp.MustCompile(
	`^(\d+) (\S+) (\S+) (\S+) (\S+) (\S+) (-|(?:\[[^\]]*\])+)(?: ([\s\S]*))?$`,
)

// parseRFC5424 attempts the RFC 5424 grammar against body (everything
// after the closing '>' of the PRI). On success it returns captures for
// VER, TIMESTAMP, HOSTNAME, APPNAME, PROCID, MSGID, SD (only if present)
// and MSG.
func parseRFC5424(body string) (Captures, bool) {
	m := rfc5424Pattern.FindStringSubmatch(body)
	if m == nil {
		return nil, false
	}

	caps := newCaptures()
	caps.Set("VER", m[1])
	setIfPresent(caps, "TIMESTAMP", m[2])
	setIfPresent(caps, "HOSTNAME", m[3])
	setIfPresent(caps, "APPNAME", m[4])
	setIfPresent(caps, "PROCID", m[5])
	setIfPresent(caps, "MSGID", m[6])
	setIfPresent(caps, "SD", m[7])
	if m[8] != "" {
		caps.Set("MSG", m[8])
	}
	return caps, true
}

// setIfPresent records a capture unless the RFC 5424 "field absent"
// sentinel "-" was used.
func setIfPresent(caps Captures, key, value string) {
	if value == "-" {
		return
	}
	caps.Set(key, value)
}
