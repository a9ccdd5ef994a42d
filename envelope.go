package identity

import "net/http"

// ExpirationLabel is the human readable access token lifetime echoed on
// login and refresh responses.
const ExpirationLabel = "24Hrs"

// Envelope is the uniform result shape every core operation returns. The
// status code follows HTTP semantics so the transport layer can forward it
// verbatim. No operation lets an error escape past this envelope.
type Envelope struct {
	StatusCode     int      `json:"statusCode"`
	Message        string   `json:"message,omitempty"`
	Token          string   `json:"token,omitempty"`
	RefreshToken   string   `json:"refreshToken,omitempty"`
	ExpirationTime string   `json:"expirationTime,omitempty"`
	Role           UserRole `json:"role,omitempty"`
	User           *User    `json:"user,omitempty"`
	Users          []*User  `json:"usersList,omitempty"`
}

func ok(message string) *Envelope {
	return &Envelope{StatusCode: http.StatusOK, Message: message}
}

func badRequest(message string) *Envelope {
	return &Envelope{StatusCode: http.StatusBadRequest, Message: message}
}

func notFound(message string) *Envelope {
	return &Envelope{StatusCode: http.StatusNotFound, Message: message}
}

func internalError(message string) *Envelope {
	return &Envelope{StatusCode: http.StatusInternalServerError, Message: message}
}
