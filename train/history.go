package train

// LossRecord maps 1-based, contiguous epoch numbers to a mean loss.
// Records only grow; a completed epoch is never rewritten.
type LossRecord struct {
	values []float64
}

// Len returns the number of recorded epochs.
func (r LossRecord) Len() int {
	return len(r.values)
}

// Get returns the loss recorded for epoch.
func (r LossRecord) Get(epoch int) (float64, bool) {
	if epoch < 1 || epoch > len(r.values) {
		return 0, false
	}
	return r.values[epoch-1], true
}

// Epochs returns the recorded epoch numbers in ascending order.
func (r LossRecord) Epochs() []int {
	epochs := make([]int, len(r.values))
	for i := range epochs {
		epochs[i] = i + 1
	}
	return epochs
}

// Values returns the losses in epoch order.
func (r LossRecord) Values() []float64 {
	return append([]float64(nil), r.values...)
}

// Last returns the most recent epoch and its loss.
func (r LossRecord) Last() (epoch int, loss float64, ok bool) {
	if len(r.values) == 0 {
		return 0, 0, false
	}
	return len(r.values), r.values[len(r.values)-1], true
}

func (r *LossRecord) append(loss float64) {
	r.values = append(r.values, loss)
}

func (r LossRecord) clone() LossRecord {
	return LossRecord{values: r.Values()}
}

// History is the result of a training run. Metrics holds one record per
// metric registered with WithMetric, evaluated on the validation loader.
type History struct {
	Train      LossRecord
	Validation LossRecord
	Metrics    map[string]LossRecord
}

func (h History) clone() History {
	out := History{
		Train:      h.Train.clone(),
		Validation: h.Validation.clone(),
	}
	if len(h.Metrics) > 0 {
		out.Metrics = make(map[string]LossRecord, len(h.Metrics))
		for name, rec := range h.Metrics {
			out.Metrics[name] = rec.clone()
		}
	}
	return out
}
