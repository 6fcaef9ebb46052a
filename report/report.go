package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/model"
)

const timeFormat = "2006-01-02 15:04:05 MST"

// Exit codes of a check run
const (
	ExitOK          = 0
	ExitCritical    = 1
	ExitRuntime     = 2
	ExitConfigError = 3
)

// ExitCode maps the verdict to the process exit code
func ExitCode(verdict model.Verdict) int {
	if verdict == model.VerdictCRITICAL {
		return ExitCritical
	}

	return ExitOK
}

// Renderer writes an audit result in the configured format
type Renderer struct {
	Verbose bool
	Format  config.ReportFormat
}

// NewRenderer creates a renderer for the report settings
func NewRenderer(cfg config.ReportConfig) *Renderer {
	return &Renderer{
		Verbose: cfg.Verbose,
		Format:  cfg.Format,
	}
}

// Render writes result to w
func (r *Renderer) Render(w io.Writer, result *model.AuditResult) error {
	switch r.Format {
	case config.ReportFormatJson:
		return renderJSON(w, result)
	case config.ReportFormatTable:
		return r.renderTable(w, result)
	}

	return fmt.Errorf("unknown report format %s", r.Format)
}

// Summary returns the line closing every report
func Summary(result *model.AuditResult) string {
	return fmt.Sprintf("%s: %d/%d zones stale (threshold: %d days, attempted: %d, stale: %d, fresh: %d, unreachable: %d)",
		result.Verdict, result.StaleCount(), result.Total, result.ThresholdDays,
		result.Attempted(), result.StaleCount(), result.FreshCount(), result.UnreachableCount())
}

// Headline returns the first line of the table report
func Headline(result *model.AuditResult) string {
	if result.Verdict == model.VerdictCRITICAL {
		return fmt.Sprintf("CRITICAL: zones with DNSKEY signatures older than %d days found at %s",
			result.ThresholdDays, result.Nameserver)
	}

	return fmt.Sprintf("OK: no zones with DNSKEY signatures older than %d days found at %s",
		result.ThresholdDays, result.Nameserver)
}

func renderJSON(w io.Writer, result *model.AuditResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("can't encode audit result: %w", err)
	}

	return nil
}

func (r *Renderer) renderTable(w io.Writer, result *model.AuditResult) error {
	if _, err := fmt.Fprintln(w, Headline(result)); err != nil {
		return err
	}

	sigs := signatureRows(result.StaleZones)
	if r.Verbose {
		sigs = append(sigs, signatureRows(result.FreshZones)...)
	}

	if len(sigs) > 0 {
		t := newTable(w)
		t.AppendHeader(table.Row{"Zone", "Key Tag", "Signature Inception", "Signature Expiration", "Nameserver"})
		t.AppendRows(sigs)
		t.Render()
	}

	if len(result.UnreachableZones) > 0 {
		t := newTable(w)
		t.SetTitle("Unreachable zones")
		t.AppendHeader(table.Row{"Zone", "Nameserver", "Error"})

		for _, z := range result.UnreachableZones {
			t.AppendRow(table.Row{z.Zone, z.Nameserver, z.Error})
		}

		t.Render()
	}

	for _, s := range result.ClockAnomalies() {
		if _, err := fmt.Fprintf(w, "WARNING: signature of zone %s with key tag %d has inception %s in the future\n",
			s.Zone, s.KeyTag, s.Inception.Format(timeFormat)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, Summary(result))

	return err
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	return t
}

func signatureRows(zones []model.ZoneReport) []table.Row {
	var rows []table.Row

	for _, z := range zones {
		for _, s := range z.Signatures {
			rows = append(rows, table.Row{
				z.Zone,
				strconv.Itoa(int(s.KeyTag)),
				s.Inception.Format(timeFormat),
				s.Expiration.Format(timeFormat),
				s.Nameserver,
			})
		}
	}

	return rows
}
