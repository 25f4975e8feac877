package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a successful reply, returned to the caller unchanged.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into out. An empty body leaves out untouched.
func (r *Response) Decode(out any) error {
	if r == nil || len(r.Body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("[apiclient Decode] %w", err)
	}
	return nil
}
