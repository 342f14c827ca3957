package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"photostamp/internal/batch"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation with tables and mermaid charts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *batch.Summary) (int, error) {
	view := NewView(summary)
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, view)
	w.writeFiles(md, view)

	return len(md.String()), md.Build()
}

// writeHeader writes the run overview table and tally chart.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, view *View) {
	md.H1("Photostamp Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + view.Source + "`"},
			{"Started", view.Started},
			{"Elapsed", view.Elapsed},
			{"Succeeded", strconv.Itoa(view.Succeeded)},
			{"Failed", strconv.Itoa(view.Failed)},
			{"Total", strconv.Itoa(view.Total)},
		},
	})
	md.PlainText("")

	if view.Total > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Processing Outcome"),
			piechart.WithShowData(true),
		)
		if view.Succeeded > 0 {
			chart.LabelAndIntValue("Succeeded", uint64(view.Succeeded))
		}
		if view.Failed > 0 {
			chart.LabelAndIntValue("Failed", uint64(view.Failed))
		}

		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}
}

// writeFiles writes the per-file outcome table.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, view *View) {
	if len(view.Files) == 0 {
		return
	}

	md.H2("Files")
	md.PlainText("")

	rows := make([][]string, 0, len(view.Files))
	for _, f := range view.Files {
		status := "ok"
		if !f.OK {
			status = "failed: " + f.Error
		}
		rows = append(rows, []string{
			"`" + f.Input + "`",
			"`" + f.Output + "`",
			f.Watermark,
			status,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Input", "Output", "Watermark", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}
