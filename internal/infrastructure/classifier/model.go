package classifier

// LinearModel is a multiclass averaged perceptron over TF-IDF features.
// Fields are exported for gob.
type LinearModel struct {
	Labels  []string
	Weights [][]float64 // one weight vector per label
	Bias    []float64
}

const trainEpochs = 10

// TrainLinear fits the model on pre-vectorized samples. Averaging the
// weight trajectory keeps the frozen model stable against the order of
// late training updates.
func TrainLinear(features []map[int]float64, labels []string, dim int) *LinearModel {
	labelIndex := make(map[string]int)
	var labelNames []string
	for _, label := range labels {
		if _, ok := labelIndex[label]; !ok {
			labelIndex[label] = len(labelNames)
			labelNames = append(labelNames, label)
		}
	}

	k := len(labelNames)
	weights := newMatrix(k, dim)
	bias := make([]float64, k)
	sumWeights := newMatrix(k, dim)
	sumBias := make([]float64, k)

	step := 0
	for epoch := 0; epoch < trainEpochs; epoch++ {
		for i, x := range features {
			step++
			want := labelIndex[labels[i]]
			got := argmax(weights, bias, x)
			if got != want {
				c := float64(step)
				for idx, value := range x {
					weights[want][idx] += value
					weights[got][idx] -= value
					sumWeights[want][idx] += c * value
					sumWeights[got][idx] -= c * value
				}
				bias[want]++
				bias[got]--
				sumBias[want] += c
				sumBias[got] -= c
			}
		}
	}

	// Averaged weights: w_avg = w - sum(c*delta)/steps.
	total := float64(step)
	if total > 0 {
		for l := 0; l < k; l++ {
			for idx := range weights[l] {
				weights[l][idx] -= sumWeights[l][idx] / total
			}
			bias[l] -= sumBias[l] / total
		}
	}

	return &LinearModel{Labels: labelNames, Weights: weights, Bias: bias}
}

// Predict returns the highest-scoring label.
func (m *LinearModel) Predict(x map[int]float64) string {
	if len(m.Labels) == 0 {
		return ""
	}
	return m.Labels[argmax(m.Weights, m.Bias, x)]
}

func argmax(weights [][]float64, bias []float64, x map[int]float64) int {
	best := 0
	bestScore := score(weights[0], bias[0], x)
	for l := 1; l < len(weights); l++ {
		if s := score(weights[l], bias[l], x); s > bestScore {
			best = l
			bestScore = s
		}
	}
	return best
}

func score(w []float64, b float64, x map[int]float64) float64 {
	s := b
	for idx, value := range x {
		if idx < len(w) {
			s += w[idx] * value
		}
	}
	return s
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
