package manifest

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/zerr"
)

const schemaURL = "https://go.trai.ch/ppm/manifest.schema.json"

// manifestSchema describes the manifest document. Top-level keys other than
// "packages" are tolerated so hand-edited files keep loading.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["packages"],
  "properties": {
    "packages": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(manifestSchema))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decode manifest schema")
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, zerr.Wrap(err, "failed to register manifest schema")
	}

	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to compile manifest schema")
	}
	return sch, nil
}
