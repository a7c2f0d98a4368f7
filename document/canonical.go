package document

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/piprate/json-gold/ld"
)

// ProcessorOpt configures JSON-LD processing for CanonicalDigest.
type ProcessorOpt func(*processorOptions)

type processorOptions struct {
	documentLoader ld.DocumentLoader
}

// WithDocumentLoader sets the loader used to resolve remote contexts.
// Defaults to a shared caching HTTP loader.
func WithDocumentLoader(loader ld.DocumentLoader) ProcessorOpt {
	return func(o *processorOptions) {
		if loader != nil {
			o.documentLoader = loader
		}
	}
}

// defaultDocumentLoader caches remote contexts across calls.
var defaultDocumentLoader = ld.NewCachingDocumentLoader(ld.NewDefaultDocumentLoader(nil))

// CanonicalDigest canonicalizes the document with URDNA2015 and returns the
// SHA-256 digest of the resulting n-quads. Two documents with the same
// semantic content produce the same digest regardless of key order.
func CanonicalDigest(doc *DIDDocument, opts ...ProcessorOpt) ([]byte, error) {
	o := processorOptions{documentLoader: defaultDocumentLoader}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, fmt.Errorf("rebuild document map: %w", err)
	}

	processor := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = "application/n-quads"
	options.Algorithm = ld.AlgorithmURDNA2015
	options.DocumentLoader = o.documentLoader

	normalized, err := processor.Normalize(asMap, options)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}

	quads, ok := normalized.(string)
	if !ok {
		return nil, fmt.Errorf("normalize document: unexpected result type %T", normalized)
	}

	digest := sha256.Sum256([]byte(quads))
	return digest[:], nil
}
