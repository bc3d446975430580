package huggingface

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxErrorSummary = 200

// describeErrorBody reduces an upstream error payload to a short line for logs.
// The router answers with JSON errors, but gateways in front of it sometimes
// return full HTML pages.
func describeErrorBody(contentType string, body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "empty body"
	}

	var payload struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch v := payload.Error.(type) {
		case string:
			if v != "" {
				return clip(v)
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return clip(msg)
			}
		}
		if payload.Message != "" {
			return clip(payload.Message)
		}
	}

	if strings.Contains(contentType, "html") || strings.HasPrefix(raw, "<") {
		if text := htmlSummary(raw); text != "" {
			return clip(text)
		}
	}

	return clip(raw)
}

func htmlSummary(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	switch {
	case title != "" && heading != "" && heading != title:
		return title + ": " + heading
	case title != "":
		return title
	case heading != "":
		return heading
	}
	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}

func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > maxErrorSummary {
		return string(r[:maxErrorSummary]) + "..."
	}
	return s
}
