package main

// One-shot root-cause run over the weekly event export.
// Sample usage in terminal.
// go run run_root_cause.go --input=./delivery_app_events.zip --output_dir=./out

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"deliverylens/analytics"
	"deliverylens/attribution"
	C "deliverylens/config"
	"deliverylens/filestore"
	"deliverylens/ingest"
	M "deliverylens/model"
	"deliverylens/report"
	serviceDisk "deliverylens/services/disk"
	serviceZip "deliverylens/services/ziparchive"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func main() {
	defaults, err := C.Load()
	if err != nil {
		log.WithError(err).Fatal("Unable to read environment config.")
	}

	env := flag.String("env", defaults.Env, "")
	input := flag.String("input", defaults.InputPath,
		"Directory of weekly export .csv files, or the exported .zip archive.")
	outputDir := flag.String("output_dir", defaults.OutputDir,
		"Directory the derived tables are written to.")
	flag.Parse()

	logCtx := log.WithFields(log.Fields{"run_id": uuid.New().String(), "env": *env})

	var fm filestore.FileManager
	if strings.HasSuffix(*input, ".zip") {
		zd, err := serviceZip.Open(*input)
		if err != nil {
			logCtx.WithError(err).Fatal("Unable to open export archive.")
		}
		defer zd.Close()
		fm = zd
	} else {
		fm = serviceDisk.New(*input)
	}

	if err := M.ValidateFunnelRules(); err != nil {
		logCtx.WithError(err).Fatal("Funnel decision table is not mutually exclusive.")
	}

	events, err := ingest.LoadEvents(fm, "")
	if err != nil {
		logCtx.WithError(err).Fatal("Failed to load weekly exports.")
	}
	logCtx.WithField("rows", len(events)).Info("Unified event table ready.")

	events = M.ApplyFlags(events)
	events = M.AssignFunnel(events)

	funnelSummary := analytics.SummarizeFunnel(events)
	attributed := attribution.AttributeOrders(events)
	logCtx.WithFields(log.Fields{
		"rows_outside_funnel": funnelSummary.UnmatchedRows,
		"orders_unattributed": attributed.Unattributed,
		"orders_attributed":   len(attributed.Orders),
	}).Info("Funnel and attribution done.")

	tables := []M.Table{
		analytics.ActivityTable("activity_weekly", "EventWeek", analytics.WeeklyActivity(events)),
		analytics.ActivityTable("activity_monthly", "EventMonth", analytics.MonthlyActivity(events)),
		analytics.ServiceBreakdownTable(analytics.WeeklyServiceBreakdown(events)),
		analytics.FunnelSummaryTable(funnelSummary),
		analytics.WeeklyFunnelTable(analytics.WeeklyFunnel(events)),
		analytics.VersionEntrySharesTable(analytics.WeeklyVersionEntryShares(events)),
		analytics.EntryPointUsageTable(analytics.WeeklyEntryPointUsage(events)),
		attribution.WeeklyEntryOrdersTable(attributed.ByWeekEntry()),
		attribution.WeeklyVersionEntryOrdersTable(attributed.ByWeekVersionEntry()),
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logCtx.WithError(err).Fatal("Unable to create output directory.")
	}
	workbookPath := filepath.Join(*outputDir, "root_cause_analysis.xlsx")
	if err := report.WriteWorkbook(workbookPath, tables); err != nil {
		logCtx.WithError(err).Fatal("Failed to write workbook.")
	}
	eventsPath := filepath.Join(*outputDir, "events_unified.csv")
	if err := report.WriteEventsCSV(eventsPath, events); err != nil {
		logCtx.WithError(err).Fatal("Failed to write unified event table.")
	}
	logCtx.WithFields(log.Fields{"workbook": workbookPath, "events": eventsPath}).Info("Outputs written.")

	for _, name := range []string{"funnel_summary", "orders_by_entry_point", "version_entry_share"} {
		for _, t := range tables {
			if t.Name != name {
				continue
			}
			chartType := "line"
			if name == "funnel_summary" {
				chartType = "horizontalBar"
			}
			labelHeader := t.Headers[0]
			if name == "funnel_summary" {
				labelHeader = "funnel"
			}
			config, err := report.ChartConfigFromTable(chartType, t, labelHeader)
			if err != nil {
				logCtx.WithError(err).WithField("table", name).Error("Failed to build chart config.")
				continue
			}
			url, err := report.GetChartImageURLForConfig(config)
			if err != nil {
				logCtx.WithError(err).WithField("table", name).Error("Failed to get chart url.")
				continue
			}
			logCtx.WithFields(log.Fields{"table": name, "url": url}).Info("Chart ready.")
		}
	}
}
