package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"deliverylens/filestore"
	"deliverylens/model"
	"deliverylens/util"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Base columns of every weekly export file. The two JSON columns trail the
// base columns in the export, but are located by header name here.
const (
	colEventDate      = "EventDate"
	colEventTimestamp = "EventTimestamp"
	colEventName      = "EventName"
	colPseudoID       = "PseudoID"
	colSessionID      = "SessionID"
	colAppVersion     = "AppVersion"
	colEventParams    = "EventParams"
	colUserProperties = "UserProperties"
)

var requiredColumns = []string{
	colEventDate, colEventTimestamp, colEventName, colPseudoID,
	colSessionID, colAppVersion, colEventParams, colUserProperties,
}

// LoadEvents reads every .csv file under dir, merges the rows into one
// normalized event table and derives the period keys. Any malformed file,
// cell or timestamp fails the whole load; partially-correct aggregates are
// worse than no output.
func LoadEvents(fm filestore.FileManager, dir string) ([]model.Event, error) {
	fileNames, err := fm.ListFiles(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list export files under %q", dir)
	}

	var events []model.Event
	inputRows := 0
	csvFiles := 0
	for _, name := range fileNames {
		if !strings.HasSuffix(name, ".csv") {
			continue
		}
		csvFiles++

		fileEvents, fileRows, err := loadFile(fm, dir, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load export file %s", name)
		}
		inputRows += fileRows
		events = append(events, fileEvents...)

		log.WithFields(log.Fields{"file": name, "rows": fileRows}).Info("Loaded weekly export file.")
	}

	if csvFiles == 0 {
		return nil, errors.Errorf("no .csv export files under %q", dir)
	}
	// Normalization must keep a 1:1 correspondence between raw rows and
	// unified rows; anything else silently skews every downstream ratio.
	if len(events) != inputRows {
		return nil, errors.Errorf("row count mismatch after normalization: %d input rows, %d unified rows",
			inputRows, len(events))
	}

	return events, nil
}

func loadFile(fm filestore.FileManager, dir, name string) ([]model.Event, int, error) {
	rc, err := fm.Get(dir, name)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	header, err := reader.Read()
	if err != nil {
		return nil, 0, errors.Wrap(err, "unreadable header")
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var events []model.Event
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "unreadable record at row %d", rows+2)
		}
		rows++

		event, err := parseRecord(record, idx)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "malformed record at row %d", rows+1)
		}
		events = append(events, event)
	}

	return events, rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, errors.Errorf("missing required column %q", col)
		}
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int) (model.Event, error) {
	event := model.Event{
		EventDate:  record[idx[colEventDate]],
		EventName:  record[idx[colEventName]],
		PseudoID:   record[idx[colPseudoID]],
		SessionID:  record[idx[colSessionID]],
		AppVersion: record[idx[colAppVersion]],
	}

	ms, err := strconv.ParseInt(record[idx[colEventTimestamp]], 10, 64)
	if err != nil {
		return model.Event{}, errors.Wrap(err, "invalid event timestamp")
	}
	event.EventTimestamp = util.TimeFromMillisZ(ms)

	eventDate, err := util.ParseEventDate(event.EventDate)
	if err != nil {
		return model.Event{}, errors.Wrap(err, "invalid event date")
	}
	event.EventWeek = util.WeekKey(eventDate)
	event.EventMonth = util.MonthKey(eventDate)

	params, err := parseJSONCell(record[idx[colEventParams]])
	if err != nil {
		return model.Event{}, errors.Wrap(err, "invalid EventParams cell")
	}
	event.Screen = stringField(params, "screen")
	event.Service = stringField(params, "service")
	event.Button = stringField(params, "button")
	event.OrderID = stringField(params, "order_id")
	event.Reason = stringField(params, "reason")

	props, err := parseJSONCell(record[idx[colUserProperties]])
	if err != nil {
		return model.Event{}, errors.Wrap(err, "invalid UserProperties cell")
	}
	event.CohortMonth = stringField(props, "cohort_month")
	event.IsNewUser = boolField(props, "is_new_user")
	event.AppVersionProp = stringField(props, "app_version")

	return event, nil
}

func parseJSONCell(cell string) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(cell), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func stringField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// Identifiers occasionally arrive as bare numbers.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolField(fields map[string]interface{}, key string) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}
