package tools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	md "github.com/russross/blackfriday/v2"
)

// RenderScriptHTML renders a CSP script as HTML: the delimited
// comments are treated as Markdown documentation, and the equations
// between them become code blocks.
func RenderScriptHTML(src string, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	for _, chunk := range chunks(src) {
		if chunk.doc {
			f(`<div class="doc">%s</div>`, md.Run([]byte(chunk.text)))
		} else {
			f(`<div class="code"><pre>%s</pre></div>`, html.EscapeString(chunk.text))
		}
	}

	return nil
}

// RenderScriptPage wraps RenderScriptHTML in a complete page.
func RenderScriptPage(title, src string, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/script-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html.EscapeString(title))

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html.EscapeString(title))

	if err := RenderScriptHTML(src, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// ReadAndRenderScriptPage reads a script file and renders it as a
// page.
func ReadAndRenderScriptPage(filename string, cssFiles []string, out io.Writer) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return RenderScriptPage(filename, string(src), out, cssFiles)
}

type chunk struct {
	doc  bool
	text string
}

// chunks splits a script into alternating documentation and code
// pieces.  Only the delimited /* ... */ comments count as
// documentation; line comments stay with the code.
func chunks(src string) []chunk {
	var result []chunk
	code := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, chunk{text: s})
		}
	}

	for {
		open := strings.Index(src, "/*")
		if open < 0 {
			code(src)
			return result
		}
		code(src[:open])
		rest := src[open+2:]
		end := strings.Index(rest, "*/")
		if end < 0 {
			// Unterminated comment; the scanner complains, we
			// just render what's there.
			result = append(result, chunk{doc: true, text: strings.TrimSpace(rest)})
			return result
		}
		result = append(result, chunk{doc: true, text: strings.TrimSpace(rest[:end])})
		src = rest[end+2:]
	}
}
