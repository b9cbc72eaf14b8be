package client

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/owenbush/timeular2noko/api"
	"go.uber.org/zap"
)

const (
	redacted = "${TIMEULAR_TOKEN}"
	masked   = "********"
)

var maskedJSON = json.RawMessage(`"` + masked + `"`)

func (c *Client) printRequestDebugInfo(id, method, endpoint string, body []byte, headers map[string]string) {
	sugar := zap.S()
	sugar.Debugf("\n[%s] Generated cURL command:\n", id)
	sugar.Debugf("curl --location --request %s '%s' \\", method, endpoint)

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := headers[k]
		if k == c.Config.AuthHeader {
			v = c.Config.AuthTokenPrefix + redacted
		}
		sugar.Debugf("  --header '%s: %s' \\", k, v)
	}

	if body != nil {
		redactedBody := string(redactFields(body, "apiSecret"))
		sugar.Debugf("  --data-raw '%s'", strings.ReplaceAll(redactedBody, "'", "'\"'\"'"))
	}
}

func (c *Client) printResponseDebugInfo(id string, resp *api.HTTPResponse) {
	sugar := zap.S()
	sugar.Debugf("\n[%s] Response %d %s\n", id, resp.StatusCode, resp.Status)
	sugar.Debugf("%s\n", redactFields(resp.Body, "token"))
}

// redactFields masks the named top-level fields of a JSON object, as sent by
// sign-in requests and responses. Bodies that are not a JSON object are
// returned as they are; when a named field is present but the body cannot
// be re-encoded, the whole body is masked.
func redactFields(body []byte, fields ...string) []byte {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil {
		return body
	}

	found := false
	for _, name := range fields {
		if _, ok := object[name]; ok {
			object[name] = maskedJSON
			found = true
		}
	}
	if !found {
		return body
	}

	out, err := json.Marshal(object)
	if err != nil {
		return []byte(masked)
	}
	return out
}
