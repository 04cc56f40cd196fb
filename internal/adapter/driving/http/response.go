package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// AuthResponse reports the auth gate state. The token itself is never returned.
type AuthResponse struct {
	State         string `json:"state"`
	Authenticated bool   `json:"authenticated"`
}

// SetTokenRequest is the JSON body for the token endpoint.
type SetTokenRequest struct {
	Token string `json:"token"`
}

// AddItemRequest is the JSON body for the add item endpoint. An empty
// location means the inbox.
type AddItemRequest struct {
	Content  string `json:"content"`
	Note     string `json:"note"`
	Location string `json:"location"`
}

// AddItemResponse identifies an accepted submission.
type AddItemResponse struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

// LocationResponse is the JSON representation of a destination.
type LocationResponse struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	IsInbox   bool   `json:"is_inbox"`
	FileID    string `json:"file_id,omitempty"`
	NodeID    string `json:"node_id,omitempty"`
}

// PreviewResponse shows how an item would look once added, without adding
// it. HTML fields are sanitized.
type PreviewResponse struct {
	Location    string `json:"location"`
	ContentHTML string `json:"content_html"`
	NoteHTML    string `json:"note_html,omitempty"`
}

func toLocationResponses(locations []model.Location) []LocationResponse {
	resp := make([]LocationResponse, 0, len(locations))
	for _, loc := range locations {
		resp = append(resp, LocationResponse{
			Name:      loc.Name,
			ShortName: application.ShortName(loc.Name),
			IsInbox:   loc.IsInbox,
			FileID:    loc.FileID,
			NodeID:    loc.NodeID,
		})
	}
	return resp
}
