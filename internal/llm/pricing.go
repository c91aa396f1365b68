package llm

import "strings"

// ModelCost is a model's list price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given usage.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// priceList holds model families. A model ID matches a family when it
// equals the family name or extends it with a "-" suffix (a date stamp, a
// "-preview" tag); the longest matching family wins, so "gpt-4o-mini"
// is not priced as "gpt-4o".
var priceList = map[string]ModelCost{
	// Anthropic
	"claude-3-haiku":    {0.25, 1.25},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-5-sonnet": {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"gpt-5.1":      {1.25, 10},
	"gpt-5.2":      {1.75, 14},
	"o3":           {2, 8},
	"o3-mini":      {1.1, 4.4},
	"o3-pro":       {20, 80},
	"o4-mini":      {1.1, 4.4},

	// Google
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},
}

// LookupCost returns the price of a model ID, or nil when the model is not
// listed. OpenRouter IDs carry a vendor prefix ("google/gemini-2.5-flash")
// which is ignored.
func LookupCost(modelID string) *ModelCost {
	if i := strings.LastIndexByte(modelID, '/'); i >= 0 {
		modelID = modelID[i+1:]
	}

	best := ""
	for family := range priceList {
		if len(family) <= len(best) {
			continue
		}
		if modelID == family || strings.HasPrefix(modelID, family+"-") {
			best = family
		}
	}
	if best == "" {
		return nil
	}
	c := priceList[best]
	return &c
}

// EstimateCost returns the USD cost of the usage and whether the model is
// priced.
func EstimateCost(modelID string, inputTokens, outputTokens int) (float64, bool) {
	c := LookupCost(modelID)
	if c == nil {
		return 0, false
	}
	return c.Cost(inputTokens, outputTokens), true
}
