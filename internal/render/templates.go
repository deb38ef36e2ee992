package render

import "html/template"

var gridTmpl = template.Must(template.New("grid").Parse(gridHTML))

var pageTmpl = template.Must(template.Must(gridTmpl.Clone()).New("page").Parse(pageHTML))

var snapshotTmpl = template.Must(template.Must(gridTmpl.Clone()).New("snapshot").Parse(snapshotHTML))

const gridHTML = `{{define "grid"}}<div class="grid-panel">
  <div class="grid-meta">
    <span class="horizon-tabs">
    {{$cur := .Horizon}}{{range .Horizons}}
      <form method="post" action="/horizon" class="inline">
        <input type="hidden" name="horizon" value="{{.}}"/>
        <button type="submit" class="tab{{if eq . $cur}} active{{end}}">+{{.}}h</button>
      </form>
    {{end}}
    </span>
    <span class="max-readout">max p = {{.MaxProb}}</span>
  </div>
  <div class="time-details">
    {{.Time.Date}} · input {{.Time.InputStart}}–{{.Time.InputEnd}} · forecast {{.Time.PredStart}}–{{.Time.PredEnd}}
  </div>
  <div class="grid-axes">
    <span class="axis-lat-top">{{.TopLat}}°N</span>
    <table class="prob-grid">
      {{range .Rows}}<tr>
        {{range .}}<td title="{{.Title}}"{{with .Style}} style="{{.}}"{{end}}>{{.Value}}</td>{{end}}
      </tr>{{end}}
    </table>
    <span class="axis-lat-bottom">{{.BottomLat}}°N</span>
    <div class="axis-lon"><span>{{.LeftLon}}°E</span><span>{{.RightLon}}°E</span></div>
  </div>
</div>{{end}}`

const pageHTML = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8"/>
  <title>Forest Fire Prediction</title>
  <style>` + baseCSS + `</style>
</head>
<body>
  <h1>Forest Fire Prediction</h1>
  {{if .Warning}}<div class="banner warning">{{.Warning}}</div>{{end}}
  {{if .InFlight}}<div class="banner info">Prediction run in progress…</div>{{end}}

  <section class="card">
    <h2>Input Channels</h2>
    {{range .Channels}}
    <form method="post" action="/form/files" enctype="multipart/form-data" class="channel{{if .Complete}} complete{{end}}">
      <label>{{.Spec.Name}} ({{.Spec.Abbrev}}) — {{.Spec.RequiredFiles}} file{{if gt .Spec.RequiredFiles 1}}s{{end}}</label>
      <input type="hidden" name="channel" value="{{.Spec.Abbrev}}"/>
      <input type="file" name="files"{{if gt .Spec.RequiredFiles 1}} multiple{{end}}/>
      <button type="submit">Set</button>
      <span class="count">{{len .Files}}/{{.Spec.RequiredFiles}}</span>
    </form>
    {{end}}
  </section>

  <section class="card">
    <h2>Region Bounds</h2>
    <form method="post" action="/form/bounds" class="bounds">
      <label>Lat min <input name="latMin" value="{{.Bounds.LatMin}}"/></label>
      <label>Lat max <input name="latMax" value="{{.Bounds.LatMax}}"/></label>
      <label>Lon min <input name="lonMin" value="{{.Bounds.LonMin}}"/></label>
      <label>Lon max <input name="lonMax" value="{{.Bounds.LonMax}}"/></label>
      <button type="submit">Set Bounds</button>
    </form>
  </section>

  <section class="card">
    <form method="post" action="/predict">
      <button type="submit" class="run"{{if or (not .Valid) .InFlight}} disabled{{end}}>Run Prediction</button>
    </form>
    {{if not .Valid}}<p class="hint">All channels must be complete and bounds must satisfy min &lt; max.</p>{{end}}
  </section>

  {{if .Grid}}
  <section class="card">
    <h2>Fire Probability {{if eq .Source "simulated"}}<span class="tag">simulated</span>{{end}}</h2>
    {{template "grid" .Grid}}
  </section>
  {{end}}
</body>
</html>{{end}}`

const snapshotHTML = `{{define "snapshot"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8"/>
  <title>{{.Title}}</title>
  <style>` + baseCSS + `</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{if .Warning}}<div class="banner warning">{{.Warning}}</div>{{end}}
  {{if .Grid}}{{template "grid" .Grid}}{{end}}
</body>
</html>{{end}}`

const baseCSS = `
:root {
  --bg-color: #121212;
  --text-color: #e0e0e0;
  --card-bg: #1e1e1e;
  --card-border: #333;
  --warning-bg: #3d2e1a;
  --warning-border: #b25900;
}
body {
  font-family: Arial, sans-serif;
  max-width: 900px;
  margin: 0 auto;
  padding: 20px;
  background-color: var(--bg-color);
  color: var(--text-color);
}
.card {
  border: 1px solid var(--card-border);
  background-color: var(--card-bg);
  border-radius: 5px;
  padding: 12px;
  margin-bottom: 15px;
}
.banner {
  padding: 10px;
  border-radius: 5px;
  margin-bottom: 15px;
}
.banner.warning {
  background-color: var(--warning-bg);
  border: 1px solid var(--warning-border);
}
.banner.info {
  background-color: #1a2a3d;
  border: 1px solid #2a5599;
}
.channel { margin-bottom: 8px; }
.channel.complete .count { color: #7cb342; }
.bounds label { margin-right: 10px; }
.bounds input { width: 80px; }
.prob-grid { border-collapse: collapse; }
.prob-grid td {
  width: 42px;
  height: 28px;
  border: 1px solid var(--card-border);
  text-align: center;
  font-size: 10px;
}
.inline { display: inline; }
.tab.active { font-weight: bold; }
.max-readout { float: right; }
.time-details { font-size: 12px; color: #9e9e9e; margin: 6px 0; }
.axis-lon { display: flex; justify-content: space-between; font-size: 11px; }
.axis-lat-top, .axis-lat-bottom { font-size: 11px; }
.tag { font-size: 12px; color: #ffb74d; }
.hint { font-size: 12px; color: #9e9e9e; }
button.run:disabled { opacity: 0.4; }
`
