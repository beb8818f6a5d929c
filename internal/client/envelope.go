package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnexpectedCollection = errors.New("collection payload is neither an array nor a results envelope")

// decodeCollection normalizes [a,b] and {"results":[a,b]} into out.
// An object without a results array decodes to an empty collection and
// reports missing=true.
func decodeCollection(raw []byte, out interface{}) (missing bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return true, json.Unmarshal([]byte("[]"), out)
	}

	switch raw[0] {
	case '[':
		return false, json.Unmarshal(raw, out)
	case '{':
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return false, err
		}
		results := bytes.TrimSpace(envelope.Results)
		if len(results) == 0 || bytes.Equal(results, []byte("null")) {
			return true, json.Unmarshal([]byte("[]"), out)
		}
		if results[0] != '[' {
			return false, fmt.Errorf("%w: results is not an array", errUnexpectedCollection)
		}
		return false, json.Unmarshal(results, out)
	}
	return false, errUnexpectedCollection
}
