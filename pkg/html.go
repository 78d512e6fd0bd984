package pkg

import (
	"bytes"
	"html/template"
)

// The dev server owns assets only; page rendering belongs to the backend
// application. Requests for the bundler's default index get this page with a
// 404 status instead.
const fallbackHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Dev server</title>
    <style>
      body { font-family: ui-sans-serif, system-ui, sans-serif; background: #1a1a1a; color: #e5e5e5; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; }
      main { text-align: center; }
      a { color: #7dd3fc; }
    </style>
  </head>
  <body>
    <main>
      <h1>This is the asset dev server</h1>
      <p>Open your application at <a href="{{ .AppURL }}">{{ .AppURL }}</a> instead.</p>
    </main>
  </body>
</html>
`

// FallbackPage renders the development 404 page with the application URL
// substituted in. It never fails on user input; appURL falls back to a
// readable placeholder when unset.
func FallbackPage(appURL string) (string, error) {
	if appURL == "" {
		appURL = "http://localhost"
	}
	tmpl, err := template.New("fallback").Parse(fallbackHTML)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"AppURL": appURL}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
