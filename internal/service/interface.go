package service

// Estimator is a trained regression model that maps one positional feature
// row to a scalar. *model.Forest satisfies it.
type Estimator interface {
	Predict(x []float64) (float64, error)
}
