package resume

import "encoding/json"

// DocumentResponse is returned by every document read and mutation.
type DocumentResponse struct {
	Document Document     `json:"document"`
	Stats    Stats        `json:"stats"`
	History  HistoryState `json:"history"`
}

// ImportResponse mirrors the success/failure result of an import.
type ImportResponse struct {
	Success  bool              `json:"success"`
	Error    string            `json:"error,omitempty"`
	Kind     ImportErrorKind   `json:"kind,omitempty"`
	Document *DocumentResponse `json:"document,omitempty"`
}

type valueRequest struct {
	Value *string `json:"value"`
}

type rawValueRequest struct {
	Value json.RawMessage `json:"value"`
}

type currentRequest struct {
	Current *bool `json:"current"`
}

type templateRequest struct {
	Name string `json:"name"`
}

type colorSchemeRequest struct {
	ID string `json:"id"`
}
