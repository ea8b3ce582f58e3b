package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const styleCSS = `
body{font-family:system-ui,sans-serif;max-width:52rem;margin:0 auto;padding:1rem;color:#1c1917;}
h1{border-bottom:2px solid #a8a29e;padding-bottom:0.3rem;}
h2{margin-top:1.6rem;}
code{background:#f1f5f9;padding:0.1rem 0.25rem;border-radius:3px;}
table{border-collapse:collapse;margin:0.5rem 0;min-width:18rem;}
th,td{border:1px solid #a8a29e;padding:0.3rem 0.5rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;}
`

// ToHTML converts the report markdown into a standalone HTML document.
func ToHTML(title, markdown string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + title + "</title>" +
		"<style>" + styleCSS +
		"html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}" +
		"</style></head><body>" + content.String() + "</body></html>", nil
}
