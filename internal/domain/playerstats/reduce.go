package playerstats

// Select returns the records matching both source and split type. When nothing matches it
// returns a single zero-valued record, so the result is always safe to Reduce.
func Select(records []StatRecord, source Source, split SplitType) []StatRecord {
	out := make([]StatRecord, 0, len(records))
	for _, record := range records {
		if record.Source == source && record.SplitType == split {
			out = append(out, record)
		}
	}
	if len(out) == 0 {
		return []StatRecord{zeroRecord(source, split)}
	}
	return out
}

// WithinPeriods keeps the records whose period is one of periodIDs.
func WithinPeriods(records []StatRecord, periodIDs []int) []StatRecord {
	if len(periodIDs) == 0 {
		return nil
	}
	window := make(map[int]struct{}, len(periodIDs))
	for _, id := range periodIDs {
		window[id] = struct{}{}
	}

	out := make([]StatRecord, 0, len(records))
	for _, record := range records {
		if _, ok := window[record.PeriodID]; ok {
			out = append(out, record)
		}
	}
	return out
}

// Reduce folds records into one total. Metrics merge as a union: a key missing on either
// side counts as zero.
func Reduce(records []StatRecord) CombinedStat {
	combined := CombinedStat{Metrics: make(map[string]float64)}
	for _, record := range records {
		combined.AppliedTotal += record.AppliedTotal
		for key, value := range record.Metrics {
			combined.Metrics[key] += value
		}
	}
	return combined
}

// ByPeriod indexes records by period id, keeping the first record seen for each period.
func ByPeriod(records []StatRecord) map[int]StatRecord {
	out := make(map[int]StatRecord, len(records))
	for _, record := range records {
		if record.PeriodID == 0 {
			continue
		}
		if _, exists := out[record.PeriodID]; exists {
			continue
		}
		out[record.PeriodID] = record
	}
	return out
}

func zeroRecord(source Source, split SplitType) StatRecord {
	return StatRecord{
		Source:    source,
		SplitType: split,
		Metrics:   map[string]float64{},
	}
}
