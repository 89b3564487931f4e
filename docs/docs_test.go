package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDoc_KioskResponses(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]struct {
			Responses map[string]interface{} `json:"responses"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	kiosk := map[string]string{
		"/api/employee/{employee_code}": "get",
		"/api/galon/transaction":        "post",
	}
	for path, method := range kiosk {
		op, ok := doc.Paths[path][method]
		require.True(t, ok, path)
		for _, code := range []string{"200", "404", "429", "500"} {
			assert.Contains(t, op.Responses, code, "%s %s", method, path)
		}
	}
}
