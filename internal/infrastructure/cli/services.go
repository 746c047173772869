package cli

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/planalyze/pkg/application"
	"github.com/felixgeelhaar/planalyze/pkg/storage"
)

// serviceForPlan wires an analysis service against the given plan file.
func serviceForPlan(path string) *application.AnalysisService {
	return application.NewAnalysisService(storage.NewFileRepository(path), nil)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
