package handler

// apiResponse is the envelope every endpoint wraps its payload in.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func ok(message string, data any) apiResponse {
	return apiResponse{Success: true, Message: message, Data: data}
}
