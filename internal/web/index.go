package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>coinwatch</title>
  <style>
    :root {
      --bg:#0d1117;
      --panel:#161b22;
      --ink:#e6edf3;
      --ink-soft:#8b949e;
      --grid:#30363d;
      --up:#3fb950;
      --down:#f85149;
      --warn-bg:#3b2300;
      --warn-ink:#d29922;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'SF Mono','JetBrains Mono',Menlo,monospace;
    }
    #app { width:min(1100px,96vw); margin:0 auto; }
    header { display:flex; align-items:baseline; justify-content:space-between; margin-bottom:1.5rem; }
    h1 { font-size:1.3rem; margin:0; letter-spacing:.05em; }
    #updated { color:var(--ink-soft); font-size:.75rem; }
    #banner {
      display:none;
      background:var(--warn-bg);
      color:var(--warn-ink);
      border:1px solid var(--warn-ink);
      padding:.6rem .9rem;
      margin-bottom:1rem;
      font-size:.8rem;
    }
    #banner button { float:right; background:none; border:none; color:var(--warn-ink); cursor:pointer; }
    #stats { display:grid; grid-template-columns:repeat(4,1fr); gap:.75rem; margin-bottom:1.5rem; }
    .card { background:var(--panel); border:1px solid var(--grid); padding:.9rem; }
    .card .label { color:var(--ink-soft); font-size:.65rem; text-transform:uppercase; letter-spacing:.1em; }
    .card .value { font-size:1.05rem; margin-top:.35rem; }
    #toolbar { display:flex; gap:.75rem; margin-bottom:.75rem; }
    #search {
      flex:1; background:var(--panel); border:1px solid var(--grid);
      color:var(--ink); padding:.55rem .8rem; font:inherit;
    }
    #refresh {
      background:var(--panel); border:1px solid var(--grid); color:var(--ink);
      padding:.55rem 1rem; font:inherit; cursor:pointer;
    }
    #refresh:disabled { color:var(--ink-soft); cursor:wait; }
    table { width:100%; border-collapse:collapse; font-size:.85rem; }
    th, td { text-align:right; padding:.55rem .8rem; border-bottom:1px solid var(--grid); }
    th:nth-child(1), td:nth-child(1), th:nth-child(2), td:nth-child(2) { text-align:left; }
    th { color:var(--ink-soft); font-weight:normal; cursor:pointer; user-select:none; }
    th.sorted-asc::after { content:' \25B4'; }
    th.sorted-desc::after { content:' \25BE'; }
    td.up { color:var(--up); }
    td.down { color:var(--down); }
    .sym { color:var(--ink-soft); }
  </style>
</head>
<body>
<div id="app">
  <header>
    <h1>COINWATCH</h1>
    <span id="updated"></span>
  </header>
  <div id="banner"><button onclick="hideBanner()">&times;</button><span id="banner-text"></span></div>
  <div id="stats">
    <div class="card"><div class="label">Market cap</div><div class="value" id="stat-cap">&ndash;</div></div>
    <div class="card"><div class="label">24h volume</div><div class="value" id="stat-vol">&ndash;</div></div>
    <div class="card"><div class="label">Avg 24h change</div><div class="value" id="stat-avg">&ndash;</div></div>
    <div class="card"><div class="label">Gainers / losers</div><div class="value" id="stat-gl">&ndash;</div></div>
  </div>
  <div id="toolbar">
    <input id="search" type="text" placeholder="search name or symbol..." oninput="render()" />
    <button id="refresh" onclick="refreshNow()">refresh</button>
  </div>
  <table>
    <thead><tr>
      <th data-key="name">Asset</th>
      <th data-key="symbol">Symbol</th>
      <th data-key="current_price">Price</th>
      <th data-key="price_change_percentage_24h">24h</th>
      <th data-key="total_volume">Volume</th>
      <th data-key="market_cap">Market cap</th>
    </tr></thead>
    <tbody id="rows"></tbody>
  </table>
</div>
<script>
let snap = {records:[], stats:{}};
let sortKey = null, sortAsc = false, bannerDismissed = false;

const usd = n => n >= 1e12 ? '$' + (n/1e12).toFixed(2) + 'T'
             : n >= 1e9  ? '$' + (n/1e9).toFixed(2) + 'B'
             : n >= 1e6  ? '$' + (n/1e6).toFixed(2) + 'M'
             : '$' + n.toLocaleString('en-US', {maximumFractionDigits: n < 1 ? 6 : 2});

function render() {
  const q = document.getElementById('search').value.trim().toLowerCase();
  let rows = snap.records.filter(c =>
    !q || c.name.toLowerCase().includes(q) || c.symbol.toLowerCase().includes(q));
  if (sortKey) {
    rows = rows.slice().sort((a, b) => {
      const x = a[sortKey], y = b[sortKey];
      const cmp = typeof x === 'string' ? x.localeCompare(y) : x - y;
      return sortAsc ? cmp : -cmp;
    });
  }
  document.getElementById('rows').innerHTML = rows.map(c => {
    const ch = c.price_change_percentage_24h || 0;
    const cls = ch > 0 ? 'up' : ch < 0 ? 'down' : '';
    return '<tr><td>' + c.name + '</td><td class="sym">' + c.symbol + '</td>' +
      '<td>' + usd(c.current_price) + '</td>' +
      '<td class="' + cls + '">' + ch.toFixed(2) + '%</td>' +
      '<td>' + usd(c.total_volume) + '</td><td>' + usd(c.market_cap) + '</td></tr>';
  }).join('');

  const st = snap.stats || {};
  document.getElementById('stat-cap').textContent = usd(st.total_market_cap || 0);
  document.getElementById('stat-vol').textContent = usd(st.total_volume_24h || 0);
  document.getElementById('stat-avg').textContent = (st.avg_change_24h || 0).toFixed(2) + '%';
  document.getElementById('stat-gl').textContent = (st.gainers || 0) + ' / ' + (st.losers || 0);

  const upd = document.getElementById('updated');
  upd.textContent = (snap.refreshing ? 'refreshing... ' : '') +
    (snap.last_updated ? 'updated ' + new Date(snap.last_updated).toLocaleTimeString() : '') +
    (snap.source === 'fallback' ? ' (sample data)' : '');

  const banner = document.getElementById('banner');
  if (snap.last_error && !bannerDismissed) {
    document.getElementById('banner-text').textContent = snap.last_error;
    banner.style.display = 'block';
  } else {
    banner.style.display = 'none';
  }
  document.getElementById('refresh').disabled = !!snap.refreshing;
}

function hideBanner() { bannerDismissed = true; render(); }

function apply(data) {
  if (data.last_error !== snap.last_error) bannerDismissed = false;
  snap = data;
  render();
}

function refreshNow() { fetch('/api/refresh', {method: 'POST'}); }

document.querySelectorAll('th').forEach(th => th.onclick = () => {
  const key = th.dataset.key;
  sortAsc = sortKey === key ? !sortAsc : false;
  sortKey = key;
  document.querySelectorAll('th').forEach(x => x.classList.remove('sorted-asc', 'sorted-desc'));
  th.classList.add(sortAsc ? 'sorted-asc' : 'sorted-desc');
  render();
});

fetch('/api/snapshot').then(r => r.json()).then(apply);
const es = new EventSource('/api/snapshot/stream');
es.addEventListener('snapshot', e => apply(JSON.parse(e.data)));
</script>
</body>
</html>
`
