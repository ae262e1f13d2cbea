package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"deliverylens/model"

	"github.com/pkg/errors"
)

// WriteEventsCSV exports the unified event table, flags and funnel columns
// included, for downstream inspection.
func WriteEventsCSV(path string, events []model.Event) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{
		"EventDate", "EventTimestamp", "EventName", "PseudoID", "SessionID",
		"AppVersion", "screen", "service", "button", "order_id", "reason",
		"cohort_month", "is_new_user", "EventMonth", "EventWeek",
		"ActiveUsers", "UserswPurchases", "SessionswPurchases",
		"funnel", "funnel_order", "EntryPoint",
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for i := range events {
		e := &events[i]
		record := []string{
			e.EventDate, e.EventTimestamp.UTC().Format(time.RFC3339Nano),
			e.EventName, e.PseudoID, e.SessionID, e.AppVersion,
			e.Screen, e.Service, e.Button, e.OrderID, e.Reason,
			e.CohortMonth, strconv.FormatBool(e.IsNewUser),
			e.EventMonth, e.EventWeek,
			e.ActiveUser, e.UserWPurchase, e.SessionWPurchase,
			e.Funnel, strconv.Itoa(e.FunnelOrder), e.EntryPoint,
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "failed to flush events csv")
}
