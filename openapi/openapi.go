// Package openapi embeds the API description served at /openapi.yaml and
// the swagger page served at /docs.
package openapi

import _ "embed"

//go:embed openapi.yaml
var Spec []byte

// DocsHTML is the swagger-ui shell pointed at the embedded spec.
const DocsHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Cognition Digest API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>body { margin:0; } #swagger-ui { max-width: 100%; }</style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: '/openapi.yaml', dom_id: '#swagger-ui' });
    </script>
  </body>
</html>`
