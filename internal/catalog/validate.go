package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mozilla-ai/mcpdir/internal/errors"
)

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	data, err := embeddedData.ReadFile(embeddedSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog schema: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	return schema, nil
})

// ValidationError describes every problem found in a catalog document.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", errors.ErrCatalogInvalid, strings.Join(e.Problems, "; "))
}

// Unwrap allows errors.Is to match errors.ErrCatalogInvalid.
func (e *ValidationError) Unwrap() error {
	return errors.ErrCatalogInvalid
}

// Parse validates a raw catalog document against the catalog schema,
// decodes it, and checks that entry IDs are unique.
// Validation problems are reported as a *ValidationError.
func Parse(data []byte) ([]Entry, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// The document is not valid JSON at all.
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
		}
		return nil, &ValidationError{Problems: problems}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := checkUniqueIDs(entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// checkUniqueIDs reports every entry whose ID was already used by an earlier entry as a *ValidationError.
func checkUniqueIDs(entries []Entry) error {
	seen := make(map[int]string, len(entries))
	var problems []string
	for _, e := range entries {
		if other, ok := seen[e.ID]; ok {
			problems = append(problems, fmt.Sprintf("duplicate id %d (%q and %q)", e.ID, other, e.Name))
			continue
		}
		seen[e.ID] = e.Name
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
