package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// htmlPage wraps rendered report content in a minimal standalone document.
const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts a markdown report to a standalone HTML page.
func RenderHTML(title, markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return fmt.Sprintf(htmlPage, title, buf.String()), nil
}
