// Package extension holds the explicit catalog of template-contributing
// plugins and the project-scoped discovery context. Plugins register
// themselves into a Catalog at startup; a Scope then decides which of them
// are visible to a single discovery pass.
package extension
