package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerStatic wires the viewer page. With a configured web root the
// built frontend is served from disk with an SPA fallback to index.html,
// so client-side routes like /s/<name> resolve; without one a minimal
// built-in page keeps a bare server usable.
func registerStatic(router *gin.Engine, webRoot string) {
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") || path == "/metrics" {
			c.JSON(404, gin.H{"error": "not found"})
			return
		}

		if webRoot == "" {
			c.Header("Cache-Control", "no-store")
			c.Data(200, "text/html; charset=utf-8", []byte(builtinPage))
			return
		}

		// Clean with a leading slash so .. cannot escape the web root.
		file := filepath.Join(webRoot, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(webRoot, "index.html"))
	})
}

// builtinPage renders raw session output without a terminal emulator.
// Bundled frontend assets replace it in real deployments.
const builtinPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>termcast</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; margin: 1rem; }
pre { white-space: pre-wrap; word-break: break-all; }
#status { color: #888; }
</style>
</head>
<body>
<div id="status">connecting…</div>
<pre id="out"></pre>
<script>
(function () {
  var m = location.pathname.match(/^\/s\/([a-z0-9-]+)/);
  var status = document.getElementById("status");
  var out = document.getElementById("out");
  if (!m) {
    status.textContent = "open /s/<session-name> to watch a session";
    return;
  }
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/api/s/" + m[1]);
  ws.onopen = function () { status.textContent = "watching " + m[1]; };
  ws.onclose = function () { status.textContent = "disconnected"; };
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "hello" && msg.replays) {
      msg.replays.forEach(function (r) { if (r.data) out.textContent += atob(r.data); });
    } else if (msg.type === "output" && msg.data) {
      out.textContent += atob(msg.data);
      window.scrollTo(0, document.body.scrollHeight);
    } else if (msg.type === "bye") {
      ws.close();
    }
  };
})();
</script>
</body>
</html>
`
