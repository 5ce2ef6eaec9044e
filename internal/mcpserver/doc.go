// Package mcpserver exposes the catalog and saved packages to agents over the Model Context Protocol.
//
// The server speaks JSON-RPC on stdio using github.com/mark3labs/mcp-go and is started with:
//
//	mcpdir mcp
//
// # Tools
//
//   - search_catalog: filter and sort catalog entries
//   - get_catalog_entry: fetch one entry by ID
//   - generate_install_script: render an install script for a set of entry IDs
//   - list_saved_packages: list the packages saved through the CLI or the HTTP API
//
// Tools never modify the current package or the saved packages.
package mcpserver
