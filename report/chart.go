package report

import (
	"encoding/json"
	"math"

	"deliverylens/model"

	quickchartgo "github.com/henomis/quickchart-go"
	"github.com/pkg/errors"
)

// Chart.js config shapes accepted by quickchart.io.
type ChartConfig struct {
	Type string    `json:"type"`
	Data ChartData `json:"data"`
}
type ChartData struct {
	Labels   []interface{} `json:"labels"`
	DataSets []Dataset     `json:"datasets"`
}
type Dataset struct {
	Label       string        `json:"label"`
	Data        []interface{} `json:"data"`
	Fill        bool          `json:"fill"`
	LineTension float32       `json:"lineTension"`
}

// ChartConfigFromTable builds a chart config using labelHeader as the x axis
// and every other numeric column as a dataset. NaN cells become nulls so the
// chart shows gaps instead of zeros.
func ChartConfigFromTable(chartType string, table model.Table, labelHeader string) (ChartConfig, error) {
	labelCol := -1
	for i, h := range table.Headers {
		if h == labelHeader {
			labelCol = i
			break
		}
	}
	if labelCol < 0 {
		return ChartConfig{}, errors.Errorf("no column %q in table %s", labelHeader, table.Name)
	}

	config := ChartConfig{Type: chartType}
	for _, row := range table.Rows {
		config.Data.Labels = append(config.Data.Labels, row[labelCol])
	}
	for col, header := range table.Headers {
		if col == labelCol {
			continue
		}
		ds := Dataset{Label: header}
		numeric := true
		for _, row := range table.Rows {
			point, ok := numericPoint(row[col])
			if !ok {
				numeric = false
				break
			}
			ds.Data = append(ds.Data, point)
		}
		if numeric {
			config.Data.DataSets = append(config.Data.DataSets, ds)
		}
	}
	return config, nil
}

func numericPoint(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if math.IsNaN(v) {
			return nil, true
		}
		return v, true
	default:
		return nil, false
	}
}

// GetChartImageURLForConfig renders the config to a quickchart.io image URL.
func GetChartImageURLForConfig(config ChartConfig) (string, error) {
	bytes, err := json.Marshal(config)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal chart config")
	}
	qc := quickchartgo.New()
	qc.Config = string(bytes)
	url, err := qc.GetUrl()
	if err != nil {
		return "", errors.Wrap(err, "failed to get chart url from quickchart")
	}
	return url, nil
}
