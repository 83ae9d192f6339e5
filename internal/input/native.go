package input

import (
	"encoding/json"

	"readalong/internal/pipeline"
)

func decodeNative(data []byte) (pipeline.Request, error) {
	var req pipeline.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return pipeline.Request{}, err
	}
	if req.Text == "" {
		req.Text = joinWords(req.Words)
	}
	return req, nil
}
