package transport

import (
	"encoding/json"
)

// censorBody blanks the password field of a JSON request body before
// it reaches a log line. Bodies that are not a JSON object pass
// through untouched.
func censorBody(body []byte) []byte {
	m := map[string]interface{}{}
	if err := json.Unmarshal(body, &m); err != nil {
		return body
	}
	if _, ok := m["password"]; !ok {
		return body
	}
	m["password"] = "$censored"
	censored, err := json.Marshal(m)
	if err != nil {
		return body
	}
	return censored
}
