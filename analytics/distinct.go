package analytics

// distinctCounter accumulates distinct non-empty values per metric for one
// grouping bucket.
type distinctCounter map[string]map[string]struct{}

func newDistinctCounter() distinctCounter {
	return make(distinctCounter)
}

func (d distinctCounter) add(metric, value string) {
	if value == "" {
		return
	}
	set, ok := d[metric]
	if !ok {
		set = make(map[string]struct{})
		d[metric] = set
	}
	set[value] = struct{}{}
}

func (d distinctCounter) count(metric string) int {
	return len(d[metric])
}
