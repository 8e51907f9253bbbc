package stopwatch

import "multistopwatch/internal/domain/stopwatch"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Stopwatches []stopwatch.View `json:"stopwatches" doc:"Stopwatches in load and creation order"`
	Running     int              `json:"running" doc:"How many stopwatches tick right now"`
}

type viewOutput struct {
	Body stopwatch.View
}

type hashInput struct {
	Hash string `path:"hash" example:"lq8k2x1c" doc:"Stopwatch hash"`
}

type patchInput struct {
	Hash string `path:"hash" example:"lq8k2x1c" doc:"Stopwatch hash"`
	Body patchRequest
}

type patchRequest struct {
	Name *string `json:"name,omitempty" doc:"New label, empty falls back to the default name"`
	Time *string `json:"time,omitempty" example:"01:02:03" doc:"Manual time in hh:mm:ss; pauses a running stopwatch"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Hash   string `json:"hash"`
	Status string `json:"status"`
}
