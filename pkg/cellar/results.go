package cellar

import (
	"encoding/json"
	"fmt"
	"strings"
)

// sparqlResults matches the JSON result shape of the Publications Office
// SPARQL endpoint: results.bindings is a list of variable maps, each
// variable holding a value string.
type sparqlResults struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// IDsFromResults extracts Cellar ids from SPARQL JSON results, keeping
// only bindings whose format variable equals format. The id is the part
// of the cellarURIs value after "cellar/".
func IDsFromResults(data []byte, format string) ([]string, error) {
	var results sparqlResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse SPARQL results: %w", err)
	}

	var ids []string
	for _, binding := range results.Results.Bindings {
		if binding["format"].Value != format {
			continue
		}
		uri := binding["cellarURIs"].Value
		_, id, found := strings.Cut(uri, "cellar/")
		if !found || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
