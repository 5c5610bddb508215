package server

import "net/http"

// handleDashboard serves the embedded single-page dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(dashboardHTML))
}

// dashboardHTML is the embedded single-page dashboard for wither.
// It connects via WebSocket and displays store operations in real time.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>wither dashboard</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, monospace;
    background: #0d1117; color: #c9d1d9; padding: 20px;
  }
  h1 { color: #58a6ff; margin-bottom: 4px; font-size: 1.5em; }
  .subtitle { color: #8b949e; margin-bottom: 20px; font-size: 0.9em; }
  .status-bar {
    display: flex; gap: 20px; margin-bottom: 20px; padding: 12px 16px;
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
  }
  .status-item { display: flex; flex-direction: column; }
  .status-label { font-size: 0.75em; color: #8b949e; text-transform: uppercase; }
  .status-value { font-size: 1.1em; font-weight: 600; }
  .status-value.connected { color: #3fb950; }
  .status-value.disconnected { color: #f85149; }
  .stats {
    display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
    gap: 12px; margin-bottom: 20px;
  }
  .stat-card {
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
    padding: 16px; text-align: center;
  }
  .stat-number { font-size: 2em; font-weight: 700; }
  .stat-number.writes { color: #3fb950; }
  .stat-number.hits { color: #58a6ff; }
  .stat-number.misses { color: #f85149; }
  .stat-number.deletes { color: #d2a8ff; }
  .stat-label { font-size: 0.8em; color: #8b949e; margin-top: 4px; }
  .event-log {
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
    max-height: 500px; overflow-y: auto;
  }
  .event-header {
    padding: 12px 16px; border-bottom: 1px solid #30363d;
    font-weight: 600; color: #58a6ff; position: sticky; top: 0;
    background: #161b22;
  }
  .event-row {
    display: grid; grid-template-columns: 200px 100px 1fr 100px;
    padding: 8px 16px; border-bottom: 1px solid #21262d;
    font-size: 0.85em; align-items: center;
  }
  .event-row:hover { background: #1c2128; }
  .badge {
    display: inline-block; padding: 2px 8px; border-radius: 12px;
    font-size: 0.75em; font-weight: 600;
  }
  .badge.set { background: rgba(63,185,80,0.15); color: #3fb950; }
  .badge.get { background: rgba(88,166,255,0.15); color: #58a6ff; }
  .badge.remove, .badge.clear { background: rgba(210,168,255,0.15); color: #d2a8ff; }
  .result.miss { color: #f85149; }
  .result.hit { color: #3fb950; }
</style>
</head>
<body>
<h1>wither</h1>
<div class="subtitle">expiring key/value store &mdash; live operations</div>

<div class="status-bar">
  <div class="status-item">
    <span class="status-label">connection</span>
    <span id="conn" class="status-value disconnected">disconnected</span>
  </div>
</div>

<div class="stats">
  <div class="stat-card"><div id="writes" class="stat-number writes">0</div><div class="stat-label">writes</div></div>
  <div class="stat-card"><div id="hits" class="stat-number hits">0</div><div class="stat-label">read hits</div></div>
  <div class="stat-card"><div id="misses" class="stat-number misses">0</div><div class="stat-label">read misses</div></div>
  <div class="stat-card"><div id="deletes" class="stat-number deletes">0</div><div class="stat-label">deletes</div></div>
</div>

<div class="event-log">
  <div class="event-header">operations</div>
  <div id="events"></div>
</div>

<script>
  const counts = { writes: 0, hits: 0, misses: 0, deletes: 0 };

  function connect() {
    const proto = location.protocol === "https:" ? "wss:" : "ws:";
    const ws = new WebSocket(proto + "//" + location.host + "/ws");
    const conn = document.getElementById("conn");

    ws.onopen = () => { conn.textContent = "connected"; conn.className = "status-value connected"; };
    ws.onclose = () => {
      conn.textContent = "disconnected"; conn.className = "status-value disconnected";
      setTimeout(connect, 2000);
    };
    ws.onmessage = (msg) => render(JSON.parse(msg.data));
  }

  function render(e) {
    if (e.op === "set") counts.writes++;
    if (e.op === "get" && e.result === "hit") counts.hits++;
    if (e.op === "get" && e.result === "miss") counts.misses++;
    if (e.op === "remove" || e.op === "clear") counts.deletes++;
    document.getElementById("writes").textContent = counts.writes;
    document.getElementById("hits").textContent = counts.hits;
    document.getElementById("misses").textContent = counts.misses;
    document.getElementById("deletes").textContent = counts.deletes;

    const row = document.createElement("div");
    row.className = "event-row";
    row.innerHTML =
      '<span>' + new Date(e.time).toISOString() + '</span>' +
      '<span><span class="badge ' + e.op + '">' + e.op + '</span></span>' +
      '<span>' + (e.key || "&mdash;") + '</span>' +
      '<span class="result ' + (e.result || "") + '">' + (e.result || "") + '</span>';
    const events = document.getElementById("events");
    events.insertBefore(row, events.firstChild);
    while (events.childElementCount > 200) events.removeChild(events.lastChild);
  }

  connect();
</script>
</body>
</html>
`
