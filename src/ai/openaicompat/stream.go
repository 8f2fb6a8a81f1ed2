package openaicompat

import (
	"encoding/json"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
)

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// decodeDelta extracts the text of one streamed chat-completion chunk.
// Providers such as OpenRouter report failures inside the stream as an error object.
func (c *Client) decodeDelta(data []byte) (string, error) {
	var chunk streamChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", &core.MalformedResponseError{Provider: c.provider, Reason: "undecodable stream chunk", Err: err}
	}
	if chunk.Error != nil {
		return "", &core.UpstreamError{
			Provider:   c.provider,
			StatusCode: errorCode(chunk.Error.Code),
			Body:       chunk.Error.Message,
		}
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

func errorCode(code any) int {
	if f, ok := code.(float64); ok {
		return int(f)
	}
	return 0
}
