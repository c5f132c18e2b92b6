package advisor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"bithumb-ai-trader/internal/types"
)

// Schema is the reply contract sent to every model. Kept as plain text so an
// operator can read it straight out of the prompt in the transcript log.
const Schema = `{"action":"buy|sell|hold","percentage":<integer 0-100>,"reason":"<short explanation>"}`

// BuildUserPrompt marshals the cycle bundle into the single user message.
// The bundle carries only the latest indicator values, so marshalling cannot
// hit non-finite numbers.
func BuildUserPrompt(bundle types.AdvisoryContext) (string, error) {
	state, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("marshal advisory context: %w", err)
	}
	return fmt.Sprintf(
		"You will receive the current market state as JSON. Respond ONLY with compact JSON matching the schema.\nSchema:%s\nState:%s",
		Schema, string(state)), nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON pulls the JSON object out of a model reply. Models routinely
// wrap the object in a fenced code block or surround it with prose; the
// validator downstream decides whether what we found is acceptable.
func ExtractJSON(reply string) []byte {
	reply = strings.TrimSpace(reply)

	if m := fencedJSON.FindStringSubmatch(reply); m != nil {
		reply = strings.TrimSpace(m[1])
	}

	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start >= 0 && end > start {
		reply = reply[start : end+1]
	}
	return []byte(reply)
}
