package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// BindNestedOrFlat decodes the request body into obj. When the body is an
// object carrying key (for payments: {"payments": [...]}) only that value is
// decoded; any other body (a bare [...] list, for instance) is decoded whole.
// The body is restored afterwards so later binders can read it again.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return fmt.Errorf("failed to read request body: %w", err)
		}
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &wrapper); err == nil {
		if inner, ok := wrapper[key]; ok {
			return json.Unmarshal(inner, obj)
		}
	}

	return json.Unmarshal(bodyBytes, obj)
}
