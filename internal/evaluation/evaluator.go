// Package evaluation scores classifier output against labeled samples:
// accuracy, per-category precision and recall, a confusion matrix, and
// latency statistics for the replayed calls.
package evaluation

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Prediction is one replayed sample outcome. An empty Predicted label
// records a failed call; it still counts against accuracy and recall.
type Prediction struct {
	Expected  string
	Predicted string
	Elapsed   time.Duration
}

type CategoryMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

type AggregateMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

type TimingStats struct {
	MeanSeconds   float64 `json:"mean_seconds"`
	MedianSeconds float64 `json:"median_seconds"`
	MinSeconds    float64 `json:"min_seconds"`
	MaxSeconds    float64 `json:"max_seconds"`
	P95Seconds    float64 `json:"p95_seconds"`
}

type Misclassification struct {
	Expected  string `json:"expected"`
	Predicted string `json:"predicted"`
	Count     int    `json:"count"`
}

// Summary is the full evaluation result. Confusion rows are expected
// labels and columns predicted labels, both in Labels order.
type Summary struct {
	GeneratedAt   time.Time                  `json:"generated_at"`
	TotalSamples  int                        `json:"total_samples"`
	Accuracy      float64                    `json:"accuracy"`
	Macro         AggregateMetrics           `json:"macro"`
	Weighted      AggregateMetrics           `json:"weighted"`
	Labels        []string                   `json:"labels"`
	PerCategory   map[string]CategoryMetrics `json:"per_category"`
	Confusion     [][]int                    `json:"confusion_matrix"`
	Timing        *TimingStats               `json:"timing,omitempty"`
	Misclassified []Misclassification        `json:"misclassifications"`
}

// Evaluator accumulates predictions against a fixed label set. Labels
// outside the set are counted in the totals but excluded from the
// confusion matrix and per-category rows.
type Evaluator struct {
	labels []string
	index  map[string]int
	preds  []Prediction
}

func NewEvaluator(labels []string) *Evaluator {
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return &Evaluator{
		labels: append([]string(nil), labels...),
		index:  index,
	}
}

func (e *Evaluator) Add(expected, predicted string, elapsed time.Duration) {
	e.preds = append(e.preds, Prediction{Expected: expected, Predicted: predicted, Elapsed: elapsed})
}

func (e *Evaluator) Summary() (Summary, error) {
	if len(e.preds) == 0 {
		return Summary{}, fmt.Errorf("evaluation: no predictions recorded")
	}

	n := len(e.labels)
	confusion := make([][]int, n)
	for i := range confusion {
		confusion[i] = make([]int, n)
	}

	var correct int
	support := make([]int, n)
	predictedCount := make([]int, n)
	truePositives := make([]int, n)
	patterns := make(map[[2]string]int)

	for _, p := range e.preds {
		if p.Expected == p.Predicted {
			correct++
		} else {
			patterns[[2]string{p.Expected, p.Predicted}]++
		}

		ei, expectedKnown := e.index[p.Expected]
		pi, predictedKnown := e.index[p.Predicted]
		if expectedKnown {
			support[ei]++
		}
		if predictedKnown {
			predictedCount[pi]++
		}
		if expectedKnown && predictedKnown {
			confusion[ei][pi]++
			if ei == pi {
				truePositives[ei]++
			}
		}
	}

	perCategory := make(map[string]CategoryMetrics, n)
	var macro AggregateMetrics
	var weighted AggregateMetrics
	var seenLabels, totalSupport int

	for i, label := range e.labels {
		precision := ratio(truePositives[i], predictedCount[i])
		recall := ratio(truePositives[i], support[i])
		metrics := CategoryMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1Score(precision, recall),
			Support:   support[i],
		}
		perCategory[label] = metrics

		// Macro averages over labels that actually occurred, so a large
		// taxonomy with a small sample set does not drown the scores.
		if support[i] > 0 || predictedCount[i] > 0 {
			seenLabels++
			macro.Precision += metrics.Precision
			macro.Recall += metrics.Recall
			macro.F1 += metrics.F1
		}

		totalSupport += support[i]
		weighted.Precision += metrics.Precision * float64(support[i])
		weighted.Recall += metrics.Recall * float64(support[i])
		weighted.F1 += metrics.F1 * float64(support[i])
	}
	if seenLabels > 0 {
		macro.Precision /= float64(seenLabels)
		macro.Recall /= float64(seenLabels)
		macro.F1 /= float64(seenLabels)
	}
	if totalSupport > 0 {
		weighted.Precision /= float64(totalSupport)
		weighted.Recall /= float64(totalSupport)
		weighted.F1 /= float64(totalSupport)
	}

	return Summary{
		GeneratedAt:   time.Now().UTC(),
		TotalSamples:  len(e.preds),
		Accuracy:      ratio(correct, len(e.preds)),
		Macro:         macro,
		Weighted:      weighted,
		Labels:        append([]string(nil), e.labels...),
		PerCategory:   perCategory,
		Confusion:     confusion,
		Timing:        timingStats(e.preds),
		Misclassified: sortedMisclassifications(patterns),
	}, nil
}

func timingStats(preds []Prediction) *TimingStats {
	var seconds []float64
	for _, p := range preds {
		if p.Elapsed > 0 {
			seconds = append(seconds, p.Elapsed.Seconds())
		}
	}
	if len(seconds) == 0 {
		return nil
	}
	sort.Float64s(seconds)

	var sum float64
	for _, s := range seconds {
		sum += s
	}

	return &TimingStats{
		MeanSeconds:   sum / float64(len(seconds)),
		MedianSeconds: median(seconds),
		MinSeconds:    seconds[0],
		MaxSeconds:    seconds[len(seconds)-1],
		P95Seconds:    percentile(seconds, 0.95),
	}
}

// median expects sorted input.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// percentile expects sorted input and uses the nearest-rank method.
func percentile(sorted []float64, q float64) float64 {
	rank := int(math.Ceil(q*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

func sortedMisclassifications(patterns map[[2]string]int) []Misclassification {
	out := make([]Misclassification, 0, len(patterns))
	for pair, count := range patterns {
		out = append(out, Misclassification{Expected: pair[0], Predicted: pair[1], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Expected != out[j].Expected {
			return out[i].Expected < out[j].Expected
		}
		return out[i].Predicted < out[j].Predicted
	})
	return out
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1Score(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
