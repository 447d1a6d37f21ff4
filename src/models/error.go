package models

import "fmt"

var NotFoundErr = fmt.Errorf("not found")
var InsufficientDataErr = fmt.Errorf("not enough data for prediction")
var ModelMissingErr = fmt.Errorf("model artifact not found")
var PredictionUnavailableErr = fmt.Errorf("prediction unavailable")
var TrainingFailedErr = fmt.Errorf("model training failed")
var NumericDegenerateErr = fmt.Errorf("numeric solver degenerate")

// ProviderError marks a provider-side failure (transport, auth, malformed
// payload). It is distinct from NotFoundErr: a provider error never triggers
// a fallback to another data source.
type ProviderError struct {
	Provider DataSource
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider error: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider DataSource, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Err: err}
}

type ErrorDTO struct {
	Msg string `json:"msg"`
}
