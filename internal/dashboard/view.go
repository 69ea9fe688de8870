package dashboard

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/balance"
)

// RenderHTML renders the overview page for one snapshot. The same renderer
// backs the live server and the save-file export.
func RenderHTML(snap Snapshot) ([]byte, error) {
	data := pageData{
		Snapshot: snap,
		Neurons:  neuronRows(snap.Metagraph),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute dashboard template: %w", err)
	}
	return buf.Bytes(), nil
}

type pageData struct {
	Snapshot
	Neurons []neuronRow
}

// neuronRow flattens the metagraph's index-aligned columns into one row per
// UID so the template never indexes past a short column.
type neuronRow struct {
	UID             int
	Hotkey          string
	Coldkey         string
	Active          bool
	ValidatorPermit bool
	Stake           float64
	Trust           float64
	Consensus       float64
	Incentive       float64
	Dividend        float64
	Emission        float64
	LastUpdate      int
	Axon            string
}

func neuronRows(meta *subtensor.SubnetMetagraph) []neuronRow {
	if meta == nil {
		return nil
	}

	rows := make([]neuronRow, len(meta.Hotkeys))
	for i := range meta.Hotkeys {
		row := neuronRow{
			UID:             i,
			Hotkey:          meta.Hotkeys[i],
			Coldkey:         stringAt(meta.Coldkeys, i),
			Active:          boolAt(meta.Active, i),
			ValidatorPermit: boolAt(meta.ValidatorPermit, i),
			Stake:           floatAt(meta.TotalStake, i),
			Trust:           floatAt(meta.Trust, i),
			Consensus:       floatAt(meta.Consensus, i),
			Incentive:       floatAt(meta.Incentives, i),
			Dividend:        floatAt(meta.Dividends, i),
			Emission:        floatAt(meta.Emission, i),
			LastUpdate:      intAt(meta.LastUpdate, i),
			Axon:            "n/a",
		}
		if i < len(meta.Axons) && meta.Axons[i].IP != "" {
			row.Axon = fmt.Sprintf("%s:%d", meta.Axons[i].IP, meta.Axons[i].Port)
		}
		rows[i] = row
	}
	return rows
}

func stringAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func floatAt(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func boolAt(s []bool, i int) bool {
	return i < len(s) && s[i]
}

func intAt(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func shortKey(ss58 string) string {
	if len(ss58) <= 12 {
		return ss58
	}
	return ss58[:6] + ".." + ss58[len(ss58)-4:]
}

var pageTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"tao":   func(v float64) string { return balance.FromTao(v).String() },
	"price": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"score": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"short": shortKey,
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="12">
<title>taocli dashboard | {{.Network}}</title>
<style>
  body { font-family: ui-monospace, "SF Mono", Menlo, Consolas, monospace; background: #10131a; color: #d8dee9; margin: 0; padding: 24px; }
  h1 { font-size: 18px; margin: 0 0 4px; color: #e5e9f0; }
  h2 { font-size: 14px; margin: 28px 0 8px; color: #88c0d0; text-transform: uppercase; letter-spacing: 1px; }
  .meta { color: #7b88a1; font-size: 12px; margin-bottom: 16px; }
  .stale { display: inline-block; background: #bf616a; color: #fff; padding: 2px 8px; border-radius: 3px; font-size: 12px; margin-left: 8px; }
  .cards { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 8px; }
  .card { background: #171c26; border: 1px solid #232a38; border-radius: 6px; padding: 12px 18px; min-width: 160px; }
  .card .label { font-size: 11px; color: #7b88a1; text-transform: uppercase; letter-spacing: 1px; }
  .card .value { font-size: 16px; color: #a3be8c; margin-top: 4px; }
  table { border-collapse: collapse; width: 100%; font-size: 12px; }
  th, td { text-align: right; padding: 5px 10px; border-bottom: 1px solid #232a38; white-space: nowrap; }
  th { color: #7b88a1; font-weight: normal; text-transform: uppercase; font-size: 10px; letter-spacing: 1px; }
  th:first-child, td:first-child, th.l, td.l { text-align: left; }
  tr:hover td { background: #171c26; }
  .dim { color: #566078; }
  .ok { color: #a3be8c; }
  .warn { color: #ebcb8b; }
</style>
</head>
<body>
<h1>taocli dashboard{{if .Stale}}<span class="stale">STALE</span>{{end}}</h1>
<div class="meta">network {{.Network}} &middot; block {{.Block}} &middot; updated {{.UpdatedAt.Format "15:04:05 MST"}}</div>

{{with .Wallet}}
<h2>Wallet</h2>
<div class="cards">
  <div class="card"><div class="label">Name</div><div class="value">{{.Name}}</div></div>
  <div class="card"><div class="label">Coldkey</div><div class="value" title="{{.Coldkey}}">{{short .Coldkey}}</div></div>
  <div class="card"><div class="label">Free Balance</div><div class="value">{{.Free}}</div></div>
  <div class="card"><div class="label">Staked Value</div><div class="value">{{.TotalStaked}}</div></div>
</div>
{{if .Stakes}}
<table>
<tr><th class="l">Netuid</th><th class="l">Hotkey</th><th>Amount</th><th>Value</th><th>Emission</th><th>Registered</th></tr>
{{range .Stakes}}
<tr>
  <td class="l">{{.Netuid}}</td>
  <td class="l" title="{{.Hotkey}}">{{short .Hotkey}}</td>
  <td>{{.Amount}}</td>
  <td>{{.Value}}</td>
  <td>{{.Emission}}</td>
  <td>{{if .IsRegistered}}<span class="ok">yes</span>{{else}}<span class="warn">no</span>{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
{{end}}

<h2>Subnets</h2>
<table>
<tr><th class="l">Netuid</th><th class="l">Name</th><th class="l">Symbol</th><th>Price</th><th>Market Cap</th><th>Emission</th><th>Alpha Out</th><th>UIDs</th><th>Your Stake</th></tr>
{{range .Subnets}}
<tr>
  <td class="l">{{.Netuid}}</td>
  <td class="l">{{.Name}}</td>
  <td class="l">{{.Symbol}}</td>
  <td>{{price .Price}}</td>
  <td>{{tao .MarketCap}}</td>
  <td>{{tao .Emission}}</td>
  <td>{{tao .AlphaOut}}</td>
  <td>{{.NumUids}}/{{.MaxUids}}</td>
  <td>{{if .YourStake}}{{.YourStake}}{{else}}<span class="dim">-</span>{{end}}</td>
</tr>
{{end}}
</table>

{{if .Metagraph}}
<h2>Subnet {{.Metagraph.Netuid}} &middot; {{.Metagraph.Name}}</h2>
<table>
<tr><th class="l">UID</th><th class="l">Hotkey</th><th class="l">Coldkey</th><th>Active</th><th>Stake</th><th>Trust</th><th>Consensus</th><th>Incentive</th><th>Dividend</th><th>Emission</th><th>Updated</th><th class="l">Axon</th></tr>
{{range .Neurons}}
<tr>
  <td class="l">{{.UID}}{{if .ValidatorPermit}}*{{end}}</td>
  <td class="l" title="{{.Hotkey}}">{{short .Hotkey}}</td>
  <td class="l" title="{{.Coldkey}}">{{short .Coldkey}}</td>
  <td>{{if .Active}}<span class="ok">yes</span>{{else}}<span class="dim">no</span>{{end}}</td>
  <td>{{tao .Stake}}</td>
  <td>{{score .Trust}}</td>
  <td>{{score .Consensus}}</td>
  <td>{{score .Incentive}}</td>
  <td>{{score .Dividend}}</td>
  <td>{{tao .Emission}}</td>
  <td>{{.LastUpdate}}</td>
  <td class="l">{{.Axon}}</td>
</tr>
{{end}}
</table>
<div class="meta">* validator permit</div>
{{end}}

</body>
</html>
`
