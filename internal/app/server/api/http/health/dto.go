package health

// Input represents the input for health check endpoint
type Input struct{}

// Output represents the output for health check endpoint
type Output struct {
	Body Response
}

// Response represents the health check response
type Response struct {
	Status      string `json:"status" example:"OK" doc:"Health status of the popup"`
	Stopwatches int    `json:"stopwatches" example:"3" doc:"Stopwatches loaded in this session"`
	Running     int    `json:"running" example:"1" doc:"Stopwatches currently ticking"`
	Storage     string `json:"storage" example:"file" doc:"Storage driver in use"`
}
