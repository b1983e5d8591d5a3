package recognition

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// SystemInstruction is the domain-specific instruction set sent to the
// recognition service: the expected food categories and the itemization
// rules (every distinct food and each salad or side component separately,
// with visually estimated portion weights, never generic names).
//
//go:embed system_prompt.txt
var SystemInstruction string

// AnalysisPrompt is the per-request analysis text carrying the checklist and
// the strict JSON-only output contract.
//
//go:embed analysis_prompt.txt
var AnalysisPrompt string

// ParsePayload normalizes the raw textual reply of a recognition service into
// a validated analysis result. It strips any markdown fence some models wrap
// around the payload despite the JSON-only instruction, unmarshals the JSON
// object, and enforces the expected shape including the reconciliation
// invariant. Any failure is reported as ErrInvalidResponse.
func ParsePayload(content string) (*domain.AnalysisResult, error) {
	clean := stripCodeFences(content)

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse analysis JSON: %v", ErrInvalidResponse, err)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
