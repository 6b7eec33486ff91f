package openai

import (
	"fmt"
	"strings"

	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
)

// maxSummaryChars caps the one-line summary the classifier returns.
const maxSummaryChars = 255

const classificationSystemPrompt = `You are a document classifier. You are given the complete content of a document and a list of category labels. Answer with ONLY a JSON object of the form {"category": string, "summary": string}. The category must be exactly one label from the list. The summary is one line of no more than 255 characters describing the document.`

const extractionSystemPrompt = `You are a document analyst. Extract the requested information from the document. If any information is not found, indicate "Not specified".`

func buildClassificationPrompt(text string, set *taxonomy.Set, maxChars int) string {
	var b strings.Builder
	b.WriteString("Classify the document into one of the following categories:\n")
	b.WriteString(set.LabelList())
	b.WriteString("\n\nDocument Content:\n\"\"\"")
	b.WriteString(clipText(text, maxChars))
	b.WriteString("\"\"\"")
	return b.String()
}

func buildExtractionPrompt(text, category string, set *taxonomy.Set, maxChars int) string {
	return fmt.Sprintf("Based on the document type %q, extract the following information:\n\n%s\n\nDocument Content:\n\"\"\"%s\"\"\"\n\nReturn the extracted information in a structured format. If any information is not found, indicate \"Not specified\".",
		category, set.PromptFor(category), clipText(text, maxChars))
}

// clipText bounds the document text spliced into a prompt. A non-positive
// limit means no cap.
func clipText(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	return clipRunes(text, maxChars)
}

func clipRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
