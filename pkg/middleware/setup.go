package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const setupPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>PaceMaker setup required</title></head>
<body>
<h1>Setup required</h1>
<p>The auth provider is not configured. Set these variables (for example in <code>.env</code>) and restart:</p>
<pre>SUPABASE_URL=https://&lt;project-ref&gt;.supabase.co
SUPABASE_ANON_KEY=&lt;anon key&gt;</pre>
<p>The <code>NEXT_PUBLIC_</code> prefixed names are accepted too.</p>
</body>
</html>`

// Setup answers every route except /health with a 503 setup page while the
// auth provider is not configured.
func Setup(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !required {
			return next
		}
		return func(c echo.Context) error {
			if c.Path() == "/health" || c.Request().URL.Path == "/health" {
				return next(c)
			}
			return c.HTML(http.StatusServiceUnavailable, setupPage)
		}
	}
}
