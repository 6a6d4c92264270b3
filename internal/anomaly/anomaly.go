// Package anomaly flags transactions whose magnitude is a statistical
// outlier against the whole input set. Below five transactions the
// population statistics are meaningless, so the detector returns an empty
// result instead of guessing.
package anomaly

import (
	"math"

	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/models"
)

// MinSampleSize is the smallest input for which detection runs at all.
const MinSampleSize = 5

// DefaultThreshold is the flagging threshold in standard deviations.
const DefaultThreshold = 2.0

// highSeverityDeviations marks the high-severity boundary. A magnitude at or
// beyond mean + 3σ is classified high.
const highSeverityDeviations = 3.0

// Detect flags transactions whose absolute amount exceeds
// mean + threshold×stdDev over the full input set. Threshold 0 means
// DefaultThreshold; a negative threshold is a caller contract violation.
// Input order is preserved in the result.
func Detect(txns []models.Transaction, threshold float64) ([]models.Anomaly, error) {
	if threshold < 0 {
		return nil, enginerrors.NewConfigError("anomaly", "threshold", threshold, "must be non-negative")
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if len(txns) < MinSampleSize {
		return nil, nil
	}

	amounts := make([]float64, len(txns))
	var sum float64
	for i, txn := range txns {
		v, _ := txn.Amount.Abs().Float64()
		amounts[i] = v
		sum += v
	}
	mean := sum / float64(len(amounts))

	var varianceSum float64
	for _, v := range amounts {
		diff := v - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(amounts)))
	if stdDev == 0 {
		return nil, nil
	}

	var anomalies []models.Anomaly
	for i, txn := range txns {
		if amounts[i] <= mean+threshold*stdDev {
			continue
		}
		deviations := (amounts[i] - mean) / stdDev
		severity := models.SeverityMedium
		if deviations >= highSeverityDeviations {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.Anomaly{
			Transaction: txn,
			Severity:    severity,
			Deviations:  deviations,
		})
	}
	return anomalies, nil
}
