package syslogmsg

import "strings"

// Captures holds named components pulled out by the optional RFC 3164 /
// RFC 5424 grammars. Keys are case-insensitive; the last write for a
// given key (compared case-insensitively) wins.
type Captures map[string]string

func newCaptures() Captures {
	return make(Captures)
}

// Set stores value under key, normalizing the key to upper case so
// lookups are case-insensitive regardless of how callers spell them.
func (c Captures) Set(key, value string) {
	c[strings.ToUpper(key)] = value
}

// Get returns the value for key (case-insensitive) and whether it was
// present.
func (c Captures) Get(key string) (string, bool) {
	v, ok := c[strings.ToUpper(key)]
	return v, ok
}
