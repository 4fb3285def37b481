package dto

// APIResponse is the envelope every endpoint returns
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Operation completed successfully"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds a failed envelope
func NewErrorResponse(message string, errs ...string) APIResponse {
	return APIResponse{Success: false, Message: message, Errors: errs}
}

// PaginationInfo describes one page of a list
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"25"`
	HasNext     bool  `json:"hasNext" example:"true"`
	HasPrev     bool  `json:"hasPrev" example:"false"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// ServiceInfo is returned by the root endpoint
type ServiceInfo struct {
	Message   string `json:"message" example:"Wirahusada Portal Backend API"`
	Status    string `json:"status" example:"running"`
	Timestamp string `json:"timestamp" example:"2025-04-23T12:01:05Z"`
}

// HealthResponse reports process uptime and the state of each pool
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Uptime    float64           `json:"uptime" example:"3600.5"`
	Databases map[string]string `json:"databases"`
}
