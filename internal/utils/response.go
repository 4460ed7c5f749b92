package utils

import (
	"fmt"
	"html"
	"net/http"

	"github.com/brizzai/linkedin-connector/internal/logger"
	"go.uber.org/zap"
)

const pageTemplate = `<html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>`

// HTMLPage is a static page shown in the browser
type HTMLPage struct {
	Title   string
	Heading string
	Message string
}

// Render returns the page markup
func (p HTMLPage) Render() string {
	return fmt.Sprintf(pageTemplate,
		html.EscapeString(p.Title),
		html.EscapeString(p.Heading),
		html.EscapeString(p.Message),
	)
}

// WriteHTML writes page with the given status
func WriteHTML(w http.ResponseWriter, status int, page HTMLPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(page.Render())); err != nil {
		logger.Error("Failed to write HTML response", zap.Error(err))
	}
}
