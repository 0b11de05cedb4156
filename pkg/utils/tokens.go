package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

func NumTokensFromMessages(text string) (int, error) {
	tkm, err := tiktoken.EncodingForModel("gpt-4-0613")
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}

// EstimateTokens sums the token counts of prompts, used for the pre-run cost
// preview. Prompts that fail to encode contribute a whitespace word count
// instead, so the estimate stays usable offline.
func EstimateTokens(prompts []string) int {
	total := 0
	for _, p := range prompts {
		n, err := NumTokensFromMessages(p)
		if err != nil {
			n = len(Words(p))
		}
		total += n
	}
	return total
}
