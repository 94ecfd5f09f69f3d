package server

import (
	"fmt"
	"html"
)

// forwardedEvents lists the DOM events the client forwards to the
// session. It covers handler bindings plus the interaction events the
// scheduler listens for.
const forwardedEvents = `["click","input","change","pointerdown","pointerup","keydown","keyup","focusin","focusout"]`

const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
<div id="app">%s</div>
<script>
(function () {
  var app = document.getElementById("app");
  var params = new URLSearchParams(location.search);
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var url = proto + "//" + location.host + "/ws";
  var session = params.get("session");
  if (session) url += "?session=" + encodeURIComponent(session);
  var ws = new WebSocket(url);

  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "init") {
      session = msg.session;
      history.replaceState(null, "", "?session=" + encodeURIComponent(session));
      app.innerHTML = msg.html;
    } else if (msg.type === "update") {
      app.innerHTML = msg.html;
    } else if (msg.type === "error") {
      console.error("glint:", msg.error);
    }
  };

  function pathTo(el) {
    var root = app.firstElementChild;
    var path = [];
    while (el && el !== root) {
      var parent = el.parentElement;
      if (!parent) return null;
      path.unshift(Array.prototype.indexOf.call(parent.childNodes, el));
      el = parent;
    }
    return el === root ? path : null;
  }

  %s.forEach(function (type) {
    app.addEventListener(type, function (ev) {
      if (ws.readyState !== WebSocket.OPEN) return;
      var path = pathTo(ev.target);
      if (path === null) return;
      var value = "";
      if (ev.target && "value" in ev.target) value = String(ev.target.value);
      ws.send(JSON.stringify({type: "event", event: type, path: path, value: value}));
    }, true);
  });
})();
</script>
</body>
</html>
`

// renderShell wraps the server-rendered component markup in the preview
// page with its WebSocket client.
func renderShell(title, markup string) string {
	return fmt.Sprintf(shellTemplate, html.EscapeString(title), markup, forwardedEvents)
}
