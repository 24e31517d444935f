package handlers

import "net/http"

// Test reports that the API is reachable.
func Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "API is working"})
}

// Hello is a friendly unauthenticated endpoint.
func Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Hello! How are you doing today?"})
}
