package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	content := `{"assetName": "loans-api", "API": {"layer": "pAPI"}}`
	d := Parse(content, "api.meta.json")
	assert.Equal(t, "loans-api", d["assetName"])
	api, ok := d["API"].(map[string]any)
	require.True(t, ok, "nested object should decode to a mapping")
	assert.Equal(t, "pAPI", api["layer"])
}

func TestParseJSONByShape(t *testing.T) {
	// no .json extension, sniffed from the leading brace
	d := Parse(`{"assetName": "loans-api"}`, "api.meta")
	assert.Equal(t, "loans-api", d["assetName"])
}

func TestParseYAML(t *testing.T) {
	content := `
metaDataVersion: "6.1.0"
assetName: loans-api
autoIncrementAssetVersion: true
API:
  layer: sAPI
  version:
    status: live
`
	d := Parse(content, "api.meta.yaml")
	assert.Equal(t, "6.1.0", d["metaDataVersion"])
	assert.Equal(t, true, d["autoIncrementAssetVersion"])
	api, ok := d["API"].(map[string]any)
	require.True(t, ok)
	version, ok := api["version"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "live", version["status"])
}

func TestParseYAMLByShape(t *testing.T) {
	d := Parse("assetName: loans-api\nignore: false\n", "api.meta")
	assert.Equal(t, "loans-api", d["assetName"])
	assert.Equal(t, false, d["ignore"])
}

func TestParseProperties(t *testing.T) {
	content := `
# build metadata
assetName=loans-api
owner: platform-team
region eu-west-1
standalone
`
	d := Parse(content, "api.meta")
	assert.Equal(t, "loans-api", d["assetName"])
	assert.Equal(t, "platform-team", d["owner"])
	assert.Equal(t, "eu-west-1", d["region"])
	assert.Equal(t, "", d["standalone"])
}

func TestParsePropertiesQuoteStripping(t *testing.T) {
	d := Parse(`assetName="loans-api"`+"\n"+`team='platform'`, "api.meta")
	assert.Equal(t, "loans-api", d["assetName"])
	assert.Equal(t, "platform", d["team"])
}

func TestParseSeparatorPrecedence(t *testing.T) {
	// '=' wins over ':' when both appear
	d := Parse("endpoint=https://internal:8443/api", "api.meta")
	assert.Equal(t, "https://internal:8443/api", d["endpoint"])
}

func TestParseRawContentFallback(t *testing.T) {
	d := Parse("", "api.meta")
	require.Contains(t, d, "raw_content")
	assert.Equal(t, "", d["raw_content"])

	d = Parse("\n\n  \n", "api.meta")
	assert.Contains(t, d, "raw_content")
}

func TestParseInvalidJSONFallsThrough(t *testing.T) {
	// broken JSON degrades to the properties parser instead of failing
	d := Parse(`{"assetName": `, "api.meta.json")
	require.NotNil(t, d)
	assert.NotContains(t, d, "assetName")
}
