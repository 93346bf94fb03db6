// Package schemas embeds the JSON Schemas of the artifacts the CLI writes.
package schemas

import "embed"

// Schema file names.
const (
	RunSummary       = "run_summary.schema.json"
	ConstraintReport = "constraint_report.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// MustGet returns the named schema document and panics if it is not embedded.
func MustGet(name string) string {
	data, err := files.ReadFile(name)
	if err != nil {
		panic("schemas: " + err.Error())
	}
	return string(data)
}
