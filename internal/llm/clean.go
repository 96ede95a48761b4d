package llm

import (
	"regexp"
	"strings"
)

// Chat models wrap their answers in boilerplate: reasoning blocks,
// "here's your prompt" intros, markdown emphasis, trailing breakdowns.
// Clean strips all of it so only the usable prompt text remains.

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

	boldRe      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe    = regexp.MustCompile(`\*([^*]+)\*`)
	underlineRe = regexp.MustCompile(`__([^_]+)__`)

	introToPromptRe = regexp.MustCompile(`(?s)^Okay, (here|let)['\x{2019}]?s.*?Prompt:`)
	okayIntroRe     = regexp.MustCompile(`(?is)^Okay[,\s]*.*?(here|here's|here is|I'll|Let me|I've).*?(prompt|create|generate)[:\s]*`)
	okayRe          = regexp.MustCompile(`(?i)^Okay[,\s]*`)
	refinedLabelRe  = regexp.MustCompile(`^(Refined )?Prompt:`)
	modelLabelRe    = regexp.MustCompile(`^[A-Z][A-Za-z ]+ Prompt:\s*`)
	optionLabelRe   = regexp.MustCompile(`^Option 1.*?:`)

	excessNewlinesRe = regexp.MustCompile(`\n\s*\n\s*\n`)
	wrappingQuotesRe = regexp.MustCompile(`^["\x{201C}\x{201D}'](.*)["\x{201C}\x{201D}']$`)
)

var introPrefixes = []string{
	"Okay, here is a refined prompt:",
	"Here's a refined prompt:",
	"Here is the refined prompt:",
	"**Prompt:**",
	"Prompt:",
	"### Optimized Prompt",
	"### Prompt",
	"**Optimized Prompt**",
	"**Prompt**",
	"Okay,",
	"Here's",
	"Here is",
	"Here are",
	"I'll create",
	"I'll generate",
	"Let me create",
	"Let me generate",
	"I've created",
	"I've generated",
	"Here's a prompt:",
	"Here is a prompt:",
	"Here's the prompt:",
	"Here is the prompt:",
}

var outroMarkers = []string{
	"### Breakdown of how this fits",
	"### Breakdown",
	"Breakdown:",
	"This prompt incorporates",
	"The prompt follows",
	"Key elements:",
	"Elements included:",
	"To help me refine",
	"Reasoning:",
	"Rationale & Why This Works",
	"---",
	"###",
}

// Clean reduces raw model output to the bare prompt text.
func Clean(raw string) string {
	content := strings.TrimSpace(raw)

	content = thinkBlockRe.ReplaceAllString(content, "")

	// Normalize smart punctuation to ASCII.
	content = strings.NewReplacer(
		"’", "'",
		"“", `"`,
		"”", `"`,
		"–", "-",
		"—", "-",
	).Replace(content)

	content = boldRe.ReplaceAllString(content, "$1")
	content = italicRe.ReplaceAllString(content, "$1")
	content = underlineRe.ReplaceAllString(content, "$1")
	content = strings.TrimSpace(content)

	for _, prefix := range introPrefixes {
		if strings.HasPrefix(content, prefix) {
			content = strings.TrimSpace(strings.TrimPrefix(content, prefix))
		}
	}

	content = strings.TrimSpace(introToPromptRe.ReplaceAllString(content, ""))
	content = strings.TrimSpace(okayIntroRe.ReplaceAllString(content, ""))
	content = strings.TrimSpace(okayRe.ReplaceAllString(content, ""))

	// Models that return "Option 1 / Option 2" alternatives: keep
	// the first option only.
	if strings.Contains(content, "Option 1") && strings.Contains(content, "Option 2") {
		start := strings.Index(content, "Option 1")
		end := strings.Index(content, "Option 2")
		if start >= 0 && end > start {
			content = strings.TrimSpace(content[start:end])
			content = strings.TrimSpace(optionLabelRe.ReplaceAllString(content, ""))
		}
	}

	content = strings.TrimSpace(refinedLabelRe.ReplaceAllString(content, ""))
	content = strings.TrimSpace(modelLabelRe.ReplaceAllString(content, ""))

	for _, marker := range outroMarkers {
		if idx := strings.Index(content, marker); idx >= 0 {
			content = strings.TrimSpace(content[:idx])
		}
	}

	content = excessNewlinesRe.ReplaceAllString(content, "\n\n")
	content = trimLines(content)

	// A fully quoted answer: keep the quoted text.
	if strings.HasPrefix(content, `"`) {
		if end := strings.Index(content[1:], `"`); end >= 0 {
			content = strings.TrimSpace(content[1 : end+1])
		}
	}
	content = wrappingQuotesRe.ReplaceAllString(content, "$1")

	return strings.TrimSpace(content)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
