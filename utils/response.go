package utils

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func Success(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

func Error(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
