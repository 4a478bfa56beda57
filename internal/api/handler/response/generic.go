package response

type APIError struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ServiceError is the error shape of the collaborator-facing endpoints
// (ollama proxy, python runner, files); the frontend API clients parse the
// `error` field.
type ServiceError struct {
	Error string `json:"error"`
}
