package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// didDocumentSchema is the JSON schema a rendered document must satisfy.
const didDocumentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["@context", "id", "verificationMethod"],
	"properties": {
		"@context": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 1
		},
		"id": {
			"type": "string",
			"pattern": "^did:"
		},
		"verificationMethod": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "type", "controller", "publicKeyHex"],
				"properties": {
					"id": {"type": "string"},
					"type": {"type": "string"},
					"controller": {"type": "string"},
					"publicKeyHex": {"type": "string", "pattern": "^[0-9a-f]+$"}
				}
			}
		},
		"authentication": {"type": "array", "items": {"type": "string"}},
		"assertionMethod": {"type": "array", "items": {"type": "string"}},
		"keyAgreement": {"type": "array", "items": {"type": "string"}},
		"capabilityInvocation": {"type": "array", "items": {"type": "string"}},
		"capabilityDelegation": {"type": "array", "items": {"type": "string"}}
	}
}`

// ValidateDocument checks a rendered document against the DID document
// schema and reports every violation in one error.
func ValidateDocument(doc *DIDDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(didDocumentSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}

	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("document does not conform to schema: %s", strings.Join(issues, "; "))
	}

	return nil
}
