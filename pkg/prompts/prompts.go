// Package prompts holds the study's prompt templates: category-conditioned
// joke generation, explanation elicitation, and the punchline-prediction
// probe used by the surprise analysis.
package prompts

import (
	"fmt"
	"strings"
)

// The humor categories, ordered by how much embodied knowledge they are
// hypothesized to require.
const (
	Linguistic = "linguistic"
	Physical   = "physical"
	Social     = "social"
	Dark       = "dark"
)

// Categories returns the humor categories in embodiment order.
func Categories() []string {
	return []string{Linguistic, Physical, Social, Dark}
}

// CategorySpec describes one humor category to the generating model.
type CategorySpec struct {
	Description string
	Instruction string
	// NovelContexts are unusual topic combinations used to minimize
	// training-data retrieval.
	NovelContexts []string
}

var categorySpecs = map[string]CategorySpec{
	Linguistic: {
		Description: "Linguistic humor relies on wordplay, puns, homonyms, semantic ambiguity, or double meanings. The humor emerges from language structure itself, not physical actions or social situations.",
		Instruction: "based purely on word meaning, sound, or semantic ambiguity. Avoid references to physical actions or social situations.",
		NovelContexts: []string{
			"a pun about quantum computing and breakfast",
			"wordplay involving origami and philosophy",
			"semantic ambiguity about semicolons and life choices",
			"double meaning with cryptocurrency and gardening",
			"homonym joke about asteroids and grammar",
		},
	},
	Physical: {
		Description: "Physical humor involves descriptions of bodily mishaps, clumsiness, slapstick scenarios, or minor injuries. The humor requires understanding of physical causation and embodied experience.",
		Instruction: "about a physical mishap, collision, or clumsy action. The humor should come from the physical consequence itself.",
		NovelContexts: []string{
			"someone organizing a filing cabinet",
			"trying to fold a fitted sheet for the first time",
			"assembling furniture with unclear instructions",
			"using a standing desk incorrectly",
			"attempting to use chopsticks while wearing mittens",
		},
	},
	Social: {
		Description: "Social humor involves awkward situations, social norm violations, misunderstandings, or embarrassing moments in interpersonal contexts. Requires understanding of social expectations.",
		Instruction: "about a socially awkward situation or social norm violation. The humor should emerge from social context and expectations.",
		NovelContexts: []string{
			"accidentally joining a work video call in the wrong context",
			"misinterpreting a Slack emoji reaction",
			"LinkedIn networking gone wrong",
			"virtual background malfunction during serious meeting",
			"replying-all to an email chain",
		},
	},
	Dark: {
		Description: "Dark humor addresses mortality, danger, taboo topics, or serious threats in a way that reframes them as non-threatening. Requires transformation of genuine threat into benign violation.",
		Instruction: "about mortality, danger, or taboo topics, but in a way that makes the threat benign. Should be edgy but not offensive.",
		NovelContexts: []string{
			"procrastination and deadline mortality",
			"existential dread at the DMV",
			"inbox zero as life goal",
			"retirement planning in your 20s",
			"reading the terms and conditions",
		},
	},
}

// Spec returns the category spec, or false for an unknown category.
func Spec(category string) (CategorySpec, bool) {
	spec, ok := categorySpecs[category]
	return spec, ok
}

const generationTemplate = `You are a humor researcher generating jokes for a scientific study.

Task: Create a %[1]s joke that is:
- Original and novel (not a well-known joke)
- Has clear setup and punchline structure
- Appropriate for academic research
- Between 15-50 words total

Category: %[2]s

Generate exactly ONE joke. Use this format:
Setup: [your setup here]
Punchline: [your punchline here]

Remember: The joke should be %[3]s`

// Generation renders the joke-generation prompt for a category, optionally
// pinned to a specific novel context.
func Generation(category, novelContext string) (string, error) {
	spec, ok := categorySpecs[category]
	if !ok {
		return "", fmt.Errorf("prompts: invalid category %q", category)
	}
	prompt := fmt.Sprintf(generationTemplate, category, spec.Description, spec.Instruction)
	if novelContext != "" {
		prompt += "\n\nSpecific context for this joke: " + novelContext
	}
	return prompt, nil
}

// ForCategory renders up to n generation prompts for the category, one per
// novel context.
func ForCategory(category string, n int) ([]string, error) {
	spec, ok := categorySpecs[category]
	if !ok {
		return nil, fmt.Errorf("prompts: invalid category %q", category)
	}
	contexts := spec.NovelContexts
	if n > 0 && n < len(contexts) {
		contexts = contexts[:n]
	}
	out := make([]string, 0, len(contexts))
	for _, context := range contexts {
		prompt, err := Generation(category, context)
		if err != nil {
			return nil, err
		}
		out = append(out, prompt)
	}
	return out, nil
}

const explanationTemplate = `You are analyzing humor for a cognitive science study.

Below is a joke. Please explain why this joke is intended to be funny. Focus on the MECHANISMS that create humor.

Joke:
%s

Explain why this is funny. Consider:
- What expectations does the setup create?
- How does the punchline violate those expectations?
- What knowledge is required to understand the joke?
- What makes the violation "benign" (safe, acceptable)?

Provide a detailed analysis in 3-5 sentences.`

// Explanation renders the "why is this funny" prompt over a joke's full text.
func Explanation(fullText string) string {
	return fmt.Sprintf(explanationTemplate, strings.TrimSpace(fullText))
}

const predictionTemplate = `Given this joke setup, predict what the punchline will be.

Setup: %s

What do you predict the punchline is? Give only the punchline, no explanation.`

// PunchlinePrediction renders the surprise-probe prompt for a setup.
func PunchlinePrediction(setup string) string {
	return fmt.Sprintf(predictionTemplate, strings.TrimSpace(setup))
}
