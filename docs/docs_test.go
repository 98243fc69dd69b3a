package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type document struct {
	BasePath    string                     `json:"basePath"`
	Paths       map[string]map[string]any  `json:"paths"`
	Definitions map[string]json.RawMessage `json:"definitions"`
}

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)

	routes := map[string][]string{
		"/expenses/preview":                     {"post"},
		"/expenses":                             {"post"},
		"/expenses/{id}":                        {"get", "put", "delete"},
		"/expenses/{id}/settle":                 {"post"},
		"/expenses/{id}/shares/{userId}/settle": {"post"},
		"/balances":                             {"get"},
		"/balances/{userId}":                    {"get"},
		"/balances/{userId}/settle":             {"post"},
		"/groups":                               {"post"},
		"/groups/{groupId}":                     {"get"},
		"/groups/{groupId}/members":             {"post"},
		"/groups/{groupId}/members/{userId}":    {"delete"},
		"/groups/{groupId}/balances":            {"get"},
		"/groups/{groupId}/expenses":            {"get"},
		"/users":                                {"post"},
		"/users/{id}":                           {"get"},
	}
	for path, methods := range routes {
		for _, method := range methods {
			assert.Contains(t, doc.Paths[path], method, "%s %s", strings.ToUpper(method), path)
		}
	}
}

func TestSwaggerReferencesResolve(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	const prefix = `"$ref": "#/definitions/`
	for rest := raw; ; {
		i := strings.Index(rest, prefix)
		if i < 0 {
			break
		}
		rest = rest[i+len(prefix):]
		name := rest[:strings.Index(rest, `"`)]
		assert.Contains(t, doc.Definitions, name)
	}
}
