package catalog

import (
	"embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

//go:embed data/catalog.json data/catalog.schema.json
var embeddedData embed.FS

const (
	embeddedCatalogPath = "data/catalog.json"
	embeddedSchemaPath  = "data/catalog.schema.json"

	// EmbeddedSource is the source name reported when the catalog compiled into the binary is used.
	EmbeddedSource = "embedded"

	fetchTimeout = 15 * time.Second
)

// readSource returns the raw catalog document for the given source.
// An empty source selects the embedded catalog.
// Supports file:// URLs, bare file paths, and HTTP(S) URLs.
func readSource(source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	if source == "" || source == EmbeddedSource {
		data, err := embeddedData.ReadFile(embeddedCatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded catalog data: %w", err)
		}
		return data, nil
	}

	parsedURL, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog source '%s': %w", source, err)
	}

	switch parsedURL.Scheme {
	case "file":
		return readFile(parsedURL.Path)
	case "":
		return readFile(source)
	case "http", "https":
		return fetch(source)
	default:
		return nil, fmt.Errorf("unsupported URL scheme '%s' for catalog source", parsedURL.Scheme)
	}
}

// localPath returns the filesystem path for a file based source, or false when the source is not a local file.
func localPath(source string) (string, bool) {
	source = strings.TrimSpace(source)
	if source == "" || source == EmbeddedSource {
		return "", false
	}

	parsedURL, err := url.Parse(source)
	if err != nil {
		return "", false
	}

	switch parsedURL.Scheme {
	case "file":
		return parsedURL.Path, true
	case "":
		return source, true
	default:
		return "", false
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file '%s': %w", path, err)
	}
	return data, nil
}

func fetch(source string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}

	resp, err := client.Get(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from URL '%s': %w", source, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status from catalog URL '%s': %d", source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response body from '%s': %w", source, err)
	}

	return body, nil
}
