package live

// indexPage is the small embedded page served at GET / (spec §4.14): it shares the export
// pipeline's dark window-chrome styling and connects to /ws, decoding each binary frame's
// 32-byte header and painting the grid into a monospace <pre> — deliberately no canvas/WebGL,
// matching the rest of this codebase's preference for the simplest renderer that works.
const indexPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>cast serve</title>
<style>
  body { margin: 0; background: #1e1e1e; display: flex; justify-content: center; padding: 24px; }
  pre { color: #d4d4d4; font-family: ui-monospace, monospace; line-height: 1; white-space: pre; }
</style>
</head>
<body>
<pre id="grid">connecting&hellip;</pre>
<script>
(function() {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.binaryType = "arraybuffer";
  var el = document.getElementById("grid");

  ws.onmessage = function(ev) {
    var buf = new DataView(ev.data);
    if (buf.getUint8(0) !== 0x43 || buf.getUint8(1) !== 0x41 || buf.getUint8(2) !== 0x53 || buf.getUint8(3) !== 0x54) {
      return;
    }
    var cols = buf.getUint16(8);
    var rows = buf.getUint16(10);
    var count = buf.getUint32(16);
    if (count !== cols * rows) return;

    var lines = [];
    var off = 32;
    for (var y = 0; y < rows; y++) {
      var line = "";
      for (var x = 0; x < cols; x++) {
        var codepoint = buf.getUint32(off);
        line += codepoint === 0 ? " " : String.fromCodePoint(codepoint);
        off += 13;
      }
      lines.push(line);
    }
    el.textContent = lines.join("\n");
  };

  ws.onclose = function() { el.textContent += "\n[disconnected]"; };
})();
</script>
</body>
</html>
`
