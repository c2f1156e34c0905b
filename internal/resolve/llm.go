package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hurttlocker/strainbase/internal/llm"
	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

// junkLabel is the sentinel the model returns for labels that are not
// effect names at all.
const junkLabel = "JUNK"

// DefaultLLMBatchSize is how many labels go into one classification
// prompt.
const DefaultLLMBatchSize = 40

// LLMStats summarizes one LLM classification pass.
type LLMStats struct {
	Mapped int `json:"llm_mapped"`
	Junk   int `json:"llm_junk"`
	Failed int `json:"llm_failed"`
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?\\s*```")

// BuildClassificationPrompt formats a batch of raw labels into a
// classification prompt listing every canonical effect name.
func BuildClassificationPrompt(rawLabels, canonicalNames []string) string {
	var b strings.Builder
	b.WriteString("You are a cannabis effect taxonomy classifier. Your job is to map raw effect names to their canonical form.\n\n")
	b.WriteString("CANONICAL EFFECTS:\n")
	b.WriteString(strings.Join(canonicalNames, ", "))
	b.WriteString("\n\nRAW EFFECTS TO CLASSIFY:\n")
	for _, label := range rawLabels {
		fmt.Fprintf(&b, "  - %q\n", label)
	}
	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("- For each raw effect, map it to the single best-matching canonical effect name from the list above.\n")
	b.WriteString("- If a raw effect is nonsensical, too vague, or clearly not a cannabis effect, map it to \"JUNK\".\n")
	b.WriteString("- Return ONLY a JSON object mapping each raw effect string to its canonical name or \"JUNK\".\n")
	b.WriteString("- Do not add explanations, only output the JSON.\n\n")
	b.WriteString("Example output:\n")
	b.WriteString(`{"relaxing": "relaxed", "munchies": "hungry", "asdfgh": "JUNK"}`)
	return b.String()
}

// ParseClassificationResponse extracts the raw-label to canonical-name
// mapping from a model response. Markdown code fences around the JSON
// are tolerated. A malformed response yields an empty map, not an
// error: the affected batch is simply counted as failed.
func ParseClassificationResponse(text string) map[string]string {
	text = strings.TrimSpace(text)
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return map[string]string{}
	}
	return result
}

// ClassifyLLM sends the still-unmapped effect names to the provider in
// batches and persists the outcomes: accepted mappings with the llm
// method, junk labels with llm_junk and no canonical id. A canonical
// name the model invents is counted as failed and left unmapped. A
// failed request fails the whole batch but later batches still run.
func ClassifyLLM(ctx context.Context, s store.Store, provider llm.Provider, lookup *taxonomy.Lookup, batchSize int) (*LLMStats, error) {
	if batchSize <= 0 {
		batchSize = DefaultLLMBatchSize
	}

	names, err := s.ListUnmappedEffectNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unmapped effects: %w", err)
	}

	stats := &LLMStats{}
	for start := 0; start < len(names); start += batchSize {
		end := start + batchSize
		if end > len(names) {
			end = len(names)
		}
		batch := names[start:end]

		prompt := BuildClassificationPrompt(batch, lookup.CanonicalNames)
		response, err := provider.Complete(ctx, prompt, llm.CompletionOpts{
			MaxTokens: 4096,
			Format:    "json",
		})
		if err != nil {
			stats.Failed += len(batch)
			continue
		}

		mappings := ParseClassificationResponse(response)
		if len(mappings) == 0 {
			stats.Failed += len(batch)
			continue
		}

		for rawName, mapped := range mappings {
			if mapped == junkLabel {
				if _, err := s.UpsertEffectMapping(ctx, rawName, nil, 0.0, MethodLLMJunk); err != nil {
					return stats, fmt.Errorf("persisting junk mapping for %q: %w", rawName, err)
				}
				stats.Junk++
				continue
			}

			entry, ok := lookup.Get(mapped)
			if !ok || entry.CanonicalName != mapped {
				stats.Failed++
				continue
			}
			id := entry.CanonicalID
			if _, err := s.UpsertEffectMapping(ctx, rawName, &id, ConfidenceLLM, MethodLLM); err != nil {
				return stats, fmt.Errorf("persisting llm mapping for %q: %w", rawName, err)
			}
			stats.Mapped++
		}
	}
	return stats, nil
}
