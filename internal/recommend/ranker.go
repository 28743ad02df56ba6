// Package recommend holds the two LLM-backed services: ranking a filtered
// candidate set by free-text preference, and inferring a structured filter
// from a chat transcript. Both treat the external model as unreliable:
// anything that cannot be parsed degrades to an empty result, never an
// error to the caller.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/dreamgarage/dreamcar/models"
	"github.com/dreamgarage/dreamcar/provider"
)

// Ranker orders candidate vehicles by how well they match a free-text
// preference, as judged by the external model.
type Ranker struct {
	llm    provider.Provider
	logger *log.Logger
}

// NewRanker creates a Ranker on top of the given provider.
func NewRanker(llm provider.Provider) *Ranker {
	return &Ranker{
		llm:    llm,
		logger: log.New(log.Writer(), "[RANK] ", log.LstdFlags),
	}
}

// Rank asks the model to pick the topN best candidates for the preference
// text and reconstructs full records in the model's order. The model's
// ranking is authoritative; no re-sorting happens here. Names the model
// invents are dropped, duplicates it returns are kept, and any provider or
// parse failure yields an empty list.
func (r *Ranker) Rank(ctx context.Context, candidates []models.Vehicle, preferencesText string, topN int) []models.Vehicle {
	if len(candidates) == 0 {
		return []models.Vehicle{}
	}

	raw, err := r.llm.Generate(ctx, rankPrompt(candidates, preferencesText, topN))
	if err != nil {
		r.logger.Printf("generate failed, returning no recommendations: %v", err)
		return []models.Vehicle{}
	}

	names := parseNameArray(raw, r.logger)

	index := make(map[string]models.Vehicle, len(candidates))
	for _, v := range candidates {
		index[v.FullModel] = v
	}

	out := make([]models.Vehicle, 0, len(names))
	for _, name := range names {
		if v, ok := index[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

func rankPrompt(candidates []models.Vehicle, preferencesText string, topN int) string {
	lines := make([]string, 0, len(candidates))
	for _, v := range candidates {
		lines = append(lines, fmt.Sprintf("- %s: %s", v.FullModel, v.Description))
	}

	return fmt.Sprintf(`You are a car expert assistant. Here is a list of cars and their descriptions:

%s

User preferences: %s

From this list, recommend the top %d cars that best match the user's preferences.
Return ONLY the exact names of the cars in a valid JSON array (e.g. ["Camry XLE", "RAV4 Hybrid", "Highlander Limited"]).`,
		strings.Join(lines, "\n"), preferencesText, topN)
}

// parseNameArray extracts the first JSON array from the raw model output and
// decodes it as a string list. No array or a failed decode both mean "no
// opinion" and come back empty.
func parseNameArray(raw string, logger *log.Logger) []string {
	jsonText, ok := extractJSONArray(raw)
	if !ok {
		logger.Printf("no JSON array in model response")
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(jsonText), &names); err != nil {
		logger.Printf("model response array not parseable: %v", err)
		return nil
	}
	return names
}
