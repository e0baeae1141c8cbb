package model

// Outcome labels attached to holdout records.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)

// Prediction is the model's decision for one holdout record.
type Prediction struct {
	Index     int
	Logit     float64
	Predicted int
	Actual    int
	Label     string
}

// Classify applies the decision threshold: a logit above zero is the
// positive class, anything else is negative.
func Classify(logit float64) (int, string) {
	if logit > 0 {
		return 1, LabelPositive
	}
	return 0, LabelNegative
}
