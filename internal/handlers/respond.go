package handlers

import (
	"encoding/json"
	"net/http"
)

// successBody is the creation success payload: {"Code":1,"ShortUrl":...}.
// Field names are part of the wire contract, hence no json tags.
type successBody struct {
	Code     int
	ShortUrl string
}

// errorBody is the failure payload: {"Code":0,"Message":...}.
type errorBody struct {
	Code    int
	Message string
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, shortURL string) {
	writeJSON(w, http.StatusOK, successBody{Code: 1, ShortUrl: shortURL})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Code: 0, Message: message})
}
