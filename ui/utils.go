package ui

import (
	"net/http"
	"path/filepath"
	"strings"

	"actionaudit/adapters/excel"
	"actionaudit/domain/core"
	"actionaudit/internal/errors"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// statusForError maps pipeline and repository errors onto HTTP status codes
// and transport error codes. Domain sentinels win over AppError codes so the
// mapping stays stable however the error was wrapped.
func statusForError(err error) (int, string) {
	switch {
	case core.IsMissingActionColumn(err):
		return http.StatusUnprocessableEntity, errors.CodeMissingActionColumn
	case core.IsFormatError(err):
		return http.StatusBadRequest, errors.CodeFormatError
	case core.IsNotFoundError(err):
		return http.StatusNotFound, errors.CodeNotFound
	}

	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest, errors.CodeInvalidInput
	case errors.CodeFormatError:
		return http.StatusBadRequest, errors.CodeFormatError
	case errors.CodeMissingActionColumn:
		return http.StatusUnprocessableEntity, errors.CodeMissingActionColumn
	case errors.CodeNotFound:
		return http.StatusNotFound, errors.CodeNotFound
	case errors.CodeDatabaseError:
		return http.StatusInternalServerError, errors.CodeDatabaseError
	}

	return http.StatusInternalServerError, errors.CodeInternalError
}

// extensionSupported reports whether the upload's extension is on the
// decoder's allow-list.
func extensionSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range excel.SupportedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// boolQuery interprets a query-string flag value
func boolQuery(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// renderMarkdown converts a markdown report into HTML for the result page.
func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.Render(doc, renderer)
}
