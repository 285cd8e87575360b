package llm

import "strings"

// CleanJSONBlock strips a surrounding markdown code fence from a model
// response. Gemini wraps JSON in ```json fences often enough, even with
// ResponseMIMEType set, that the caller cannot rely on a bare payload.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	body = strings.TrimPrefix(body, "json")
	if nl := strings.Index(body, "\n"); nl >= 0 {
		// A short bare first line is a language tag on the fence, not payload.
		tag := strings.TrimSpace(body[:nl])
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			body = body[nl+1:]
		}
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
