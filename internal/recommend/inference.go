package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/dreamgarage/dreamcar/models"
	"github.com/dreamgarage/dreamcar/provider"
)

// Inferrer derives a structured filter from a conversation transcript.
type Inferrer struct {
	llm    provider.Provider
	logger *log.Logger
}

// NewInferrer creates an Inferrer on top of the given provider.
func NewInferrer(llm provider.Provider) *Inferrer {
	return &Inferrer{
		llm:    llm,
		logger: log.New(log.Writer(), "[INFER] ", log.LstdFlags),
	}
}

// InferFilters asks the model to propose filter values for the transcript
// and normalizes the proposal. Fields come back verbatim when correctly
// shaped and absent otherwise; defaults for absent fields are the API
// boundary's job, not this service's. Any provider or parse failure yields
// an all-absent filter.
func (i *Inferrer) InferFilters(ctx context.Context, transcript []models.ChatTurn) models.Filter {
	raw, err := i.llm.Generate(ctx, inferPrompt(transcript))
	if err != nil {
		i.logger.Printf("generate failed, returning empty filter: %v", err)
		return models.Filter{}
	}

	jsonText, ok := extractJSONObject(raw)
	if !ok {
		i.logger.Printf("no JSON object in model response")
		return models.Filter{}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
		i.logger.Printf("model response object not parseable: %v", err)
		return models.Filter{}
	}

	// Per-field decoding: a single malformed field is dropped without
	// discarding the rest of the proposal.
	var f models.Filter
	decodeField(fields, "vehicle_types", &f.VehicleTypes)
	decodeField(fields, "seating_options", &f.SeatingOptions)
	decodeField(fields, "preferences_text", &f.PreferencesText)
	f.PriceRange = decodeRange(fields, "price_range")
	f.MPGRange = decodeRange(fields, "mpg_range")
	return f
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// decodeRange coerces a range field to exactly two bounds, else absent.
func decodeRange(fields map[string]json.RawMessage, key string) []float64 {
	var r []float64
	decodeField(fields, key, &r)
	if len(r) != 2 {
		return nil
	}
	return r
}

func inferPrompt(transcript []models.ChatTurn) string {
	return fmt.Sprintf(`You are a vehicle recommendation assistant. Based on the following chat conversation with a user,
suggest reasonable filter values for a vehicle search:

%s

Return a JSON object with the following keys:
- vehicle_types: list of vehicle types (e.g., ["Car", "SUV"]) that best match the user's preferences
- price_range: two-element list with [min_price, max_price] in USD
- mpg_range: two-element list with [min_mpg, max_mpg]
- seating_options: list of integers indicating reasonable seating options
- preferences_text: a short summary of the user's preferences as free text

Only return a valid JSON object.`, models.TranscriptText(transcript))
}
