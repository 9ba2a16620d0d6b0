package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAUC(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		score   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect classifier",
			yTrue: []float64{0, 0, 0, 1, 1, 1},
			score: []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9},
			want:  1.0,
		},
		{
			name:  "worst classifier",
			yTrue: []float64{0, 0, 0, 1, 1, 1},
			score: []float64{0.9, 0.8, 0.7, 0.3, 0.2, 0.1},
			want:  0.0,
		},
		{
			name:  "all ties",
			yTrue: []float64{0, 1, 0, 1},
			score: []float64{0.5, 0.5, 0.5, 0.5},
			want:  0.5,
		},
		{
			name:  "typical case",
			yTrue: []float64{0, 0, 1, 1},
			score: []float64{0.1, 0.4, 0.35, 0.8},
			want:  0.75,
		},
		{
			name:  "single class returns one half",
			yTrue: []float64{1, 1, 1},
			score: []float64{0.2, 0.5, 0.9},
			want:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AUC(
				mat.NewVecDense(len(tt.yTrue), tt.yTrue),
				mat.NewVecDense(len(tt.score), tt.score),
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AUC() error = %v, wantErr %v", err, tt.wantErr)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("AUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 1, 1, 0})
	yPred := mat.NewVecDense(4, []float64{0, 1, 0, 0})

	got, err := Accuracy(yTrue, yPred)
	if err != nil {
		t.Fatalf("Accuracy() error = %v", err)
	}
	if math.Abs(got-0.75) > 1e-10 {
		t.Errorf("Accuracy() = %v, want 0.75", got)
	}
}

func TestLogLoss(t *testing.T) {
	yTrue := mat.NewVecDense(2, []float64{1, 0})
	prob := mat.NewVecDense(2, []float64{0.8, 0.3})

	got, err := LogLoss(yTrue, prob)
	if err != nil {
		t.Fatalf("LogLoss() error = %v", err)
	}
	want := -(math.Log(0.8) + math.Log(0.7)) / 2
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("LogLoss() = %v, want %v", got, want)
	}

	// Extreme probabilities must not produce Inf.
	yTrue = mat.NewVecDense(1, []float64{1})
	prob = mat.NewVecDense(1, []float64{0})
	got, err = LogLoss(yTrue, prob)
	if err != nil {
		t.Fatalf("LogLoss() error = %v", err)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("LogLoss() = %v, want finite", got)
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{1, 1, 1, 0, 0, 0})
	yPred := mat.NewVecDense(6, []float64{1, 1, 0, 0, 0, 1})

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix() error = %v", err)
	}

	if cm.TruePositive != 2 || cm.TrueNegative != 2 || cm.FalsePositive != 1 || cm.FalseNegative != 1 {
		t.Errorf("counts = %+v", cm)
	}
	if math.Abs(cm.Precision()-2.0/3.0) > 1e-10 {
		t.Errorf("Precision() = %v", cm.Precision())
	}
	if math.Abs(cm.Recall()-2.0/3.0) > 1e-10 {
		t.Errorf("Recall() = %v", cm.Recall())
	}
	if math.Abs(cm.F1()-2.0/3.0) > 1e-10 {
		t.Errorf("F1() = %v", cm.F1())
	}
	if math.Abs(cm.Accuracy()-2.0/3.0) > 1e-10 {
		t.Errorf("Accuracy() = %v", cm.Accuracy())
	}
}

func TestConfusionMatrixNoPositivePredictions(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 0, 0})
	yPred := mat.NewVecDense(3, []float64{0, 0, 0})

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix() error = %v", err)
	}
	if cm.Precision() != 0 || cm.F1() != 0 {
		t.Errorf("ill-defined precision should be 0, got %v", cm.Precision())
	}
}

func TestThreshold(t *testing.T) {
	prob := mat.NewVecDense(3, []float64{0.2, 0.5, 0.8})
	labels := Threshold(prob, 0.5)

	want := []float64{0, 0, 1}
	for i, w := range want {
		if labels.AtVec(i) != w {
			t.Errorf("labels[%d] = %v, want %v", i, labels.AtVec(i), w)
		}
	}
}
