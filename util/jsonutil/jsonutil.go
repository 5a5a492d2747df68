package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/psat-tools/psat-server/errortypes"
)

// Unmarshal decodes a request payload, rejecting unknown trailing data and converting decode
// failures to errortypes.FailedToUnmarshal so callers can map them to a status code.
func Unmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return &errortypes.FailedToUnmarshal{Message: tryExtractErrorMessage(err)}
	}
	if dec.More() {
		return &errortypes.FailedToUnmarshal{Message: "unexpected data after top-level value"}
	}
	return nil
}

// Marshal encodes a response payload.
func Marshal(v interface{}) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, &errortypes.FailedToMarshal{Message: err.Error()}
	}
	return out, nil
}

func tryExtractErrorMessage(err error) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("malformed JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("cannot unmarshal %s into field %s of type %s", typeErr.Value, typeErr.Field, typeErr.Type)
		}
		return fmt.Sprintf("cannot unmarshal %s into %s", typeErr.Value, typeErr.Type)
	}

	return err.Error()
}
