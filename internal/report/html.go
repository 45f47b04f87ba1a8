package report

import (
	"fmt"
	"html"
	"html/template"
	"io"

	"go.uber.org/zap"

	"github.com/seedtk/clustereport/internal/cluster"
	"github.com/seedtk/clustereport/internal/counter"
)

// clusterTabler is the extension point a document reporter variant must
// supply: the member table for one cluster, and the variant's global
// summary notes.
type clusterTabler interface {
	formatClusterTable(cl *cluster.Cluster) *htmlTable
	addNotes()
}

// htmlCell is one table cell. Href makes the content a link, Em renders it
// emphasized, and Big widens the column. An empty cell renders as a
// non-breaking space.
type htmlCell struct {
	Text string
	Href string
	Em   bool
	Big  bool
}

type htmlRow []htmlCell

// htmlTable is a member table under construction.
type htmlTable struct {
	Columns []string
	Rows    []htmlRow
}

func newTable(columns ...string) *htmlTable {
	return &htmlTable{Columns: columns}
}

func (t *htmlTable) addRow(row htmlRow) {
	t.Rows = append(t.Rows, row)
}

// tocEntry links the table of contents to one cluster section.
type tocEntry struct {
	Anchor string
	Text   string
}

// htmlSection is one per-cluster section: heading, evidence bullets, and
// the member table.
type htmlSection struct {
	Anchor   string
	Heading  string
	Evidence []string
	Table    *htmlTable
}

// htmlReporter assembles the single-document cluster report shared by the
// features and samples variants. The concrete variant supplies the member
// table and summary-note hooks through its clusterTabler.
type htmlReporter struct {
	out    io.Writer
	cfg    *Config
	tabler clusterTabler
	logger *zap.Logger

	tracker  displayTracker
	title    string
	toc      []tocEntry
	notes    []string
	sections []*htmlSection
	// evidence collects bullets for the section under construction.
	evidence []string
}

func newHTMLReporter(cfg *Config, out io.Writer) *htmlReporter {
	return &htmlReporter{out: out, cfg: cfg, logger: zap.NewNop()}
}

// SetLogger sets the logger for progress messages.
func (h *htmlReporter) SetLogger(l *zap.Logger) {
	h.logger = l
}

// ScanGroup is a no-op; variants needing a bulk pre-fetch override it.
func (h *htmlReporter) ScanGroup(group *cluster.Group) error {
	return nil
}

// WriteHeader computes the report title and resets all running state. The
// document itself is rendered at Close.
func (h *htmlReporter) WriteHeader() error {
	h.tracker.reset()
	h.toc = nil
	h.notes = nil
	h.sections = nil
	title := fmt.Sprintf("Cluster Analysis Report using Method %s with Threshold %.4f",
		h.cfg.Method, h.cfg.MinSimilarity)
	if h.cfg.TitlePrefix != "" {
		title = h.cfg.TitlePrefix + " " + title
	}
	if h.cfg.MaxSize > 0 {
		title += fmt.Sprintf(" and Size Limit %d", h.cfg.MaxSize)
	}
	h.title = title
	return nil
}

// WriteCluster appends the section for one non-trivial cluster: a table of
// contents entry, the evidence list seeded with the possible-pairs count,
// and the member table built by the variant.
func (h *htmlReporter) WriteCluster(cl *cluster.Cluster) error {
	clID, ok := h.tracker.next(cl)
	if !ok {
		return nil
	}
	size := cl.Size()
	h.toc = append(h.toc, tocEntry{
		Anchor: clID,
		Text:   fmt.Sprintf("%s (%s) size %d", clID, cl.ID, size),
	})
	h.evidence = []string{fmt.Sprintf("%d possible pairs.", possiblePairs(size))}
	table := h.tabler.formatClusterTable(cl)
	h.sections = append(h.sections, &htmlSection{
		Anchor: clID,
		Heading: fmt.Sprintf("%s: size %d, height %g, score %.4f",
			clID, size, cl.Height, cl.Score),
		Evidence: h.evidence,
		Table:    table,
	})
	return nil
}

// Close writes the coverage note, collects the variant's summary notes,
// and renders the assembled document.
func (h *htmlReporter) Close() error {
	h.addNote(fmt.Sprintf("%d nontrivial clusters covering %d features.",
		h.tracker.nonTrivial, h.tracker.coverage))
	h.tabler.addNotes()
	h.logger.Info("rendering cluster report",
		zap.Int("clusters", h.tracker.nonTrivial),
		zap.Int("coverage", h.tracker.coverage))
	return pageTemplate.Execute(h.out, &pageData{
		Title:    h.title,
		Styles:   template.CSS(pageStyles),
		TOC:      h.toc,
		Notes:    h.notes,
		Sections: h.sections,
	})
}

// possiblePairs returns the number of distinct member pairs in a cluster
// of the given size.
func possiblePairs(size int) int {
	return size * (size - 1) / 2
}

// addEvidence appends an evidence bullet for one grouping dimension. Pair
// evidence counts only groups holding at least two members; dimensions
// with no pairs produce no bullet.
func (h *htmlReporter) addEvidence(name, plural string, counts *counter.CountMap) {
	sorted := counts.Sorted()
	if len(sorted) == 0 {
		return
	}
	pairCount := 0
	groupCount := 0
	for _, count := range sorted {
		if n := count.Count; n > 1 {
			groupCount++
			pairCount += n * (n - 1) / 2
		}
	}
	best := sorted[0]
	switch {
	case pairCount == 1:
		h.addEvidenceNote(fmt.Sprintf("One pair in %s %s.", name, best.Key))
	case pairCount > 1:
		h.addEvidenceNote(fmt.Sprintf("%d pairs found in %d %s. Largest %s is %s with %d members.",
			pairCount, groupCount, plural, name, best.Key, best.Count))
	}
}

// addEvidenceNote appends a free-form bullet to the current cluster's
// evidence list.
func (h *htmlReporter) addEvidenceNote(note string) {
	h.evidence = append(h.evidence, note)
}

// addNote appends a line to the summary statistics list.
func (h *htmlReporter) addNote(note string) {
	h.notes = append(h.notes, note)
}

// pageData is the root of the rendered document.
type pageData struct {
	Title    string
	Styles   template.CSS
	TOC      []tocEntry
	Notes    []string
	Sections []*htmlSection
}

// pageStyles matches the layout of the legacy report output.
const pageStyles = `td.num, th.num { text-align: right; }
td.flag, th.flag { text-align: center; }
td.text, th.text { text-align: left; }
td.big, th.big { width: 20% }
td, th { border-style: groove; padding: 2px; vertical-align: top; min-width: 10px; }
table { border-collapse: collapse; width: 95vw; font-size: small }
body { font-family: Verdana, Arial, Helvetica, sans-serif; font-size: small; }
h1, h2, h3 { font-family: Georgia, "Times New Roman", Times, serif; }`

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"cell": renderCell,
}).Parse(`<html>
<head>
<title>Clustering Report</title>
<style>{{.Styles}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<h2>Table of Contents</h2>
<ul>
<li><a href="#summary">Summary Statistics</a></li>
{{- range .TOC}}
<li><a href="#{{.Anchor}}">{{.Text}}</a></li>
{{- end}}
</ul>
<h2><a name="summary">Summary Statistics</a></h2>
<ul>
{{- range .Notes}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- range .Sections}}
<div>
<h2><a name="{{.Anchor}}">{{.Heading}}</a></h2>
<ul>
{{- range .Evidence}}
<li>{{.}}</li>
{{- end}}
</ul>
<table>
<tr>{{range .Table.Columns}}<th class="text">{{.}}</th>{{end}}</tr>
{{- range .Table.Rows}}
<tr>{{range .}}{{cell .}}{{end}}</tr>
{{- end}}
</table>
</div>
{{- end}}
</body>
</html>
`))

// renderCell formats one table cell. Cells are built from trusted report
// text plus fixed link formats, with the text itself escaped here.
func renderCell(c htmlCell) template.HTML {
	class := "text"
	if c.Big {
		class = "text big"
	}
	content := html.EscapeString(c.Text)
	if content == "" {
		content = "&nbsp;"
	}
	if c.Em {
		content = "<em>" + content + "</em>"
	}
	if c.Href != "" {
		content = fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`,
			html.EscapeString(c.Href), content)
	}
	return template.HTML(fmt.Sprintf(`<td class=%q>%s</td>`, class, content))
}
