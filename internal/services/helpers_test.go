package services

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
)

const testGatewayURL = "https://openrouter.test/api/v1"

type modelReply struct {
	status  int
	content string
	// 非空时放进 error.message
	errMsg string
}

func activateHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newTestGateway() *OpenRouterClient {
	return NewOpenRouterClient(OpenRouterConfig{
		APIKey:   "or-test",
		BaseURL:  testGatewayURL,
		SiteURL:  "https://vantage.test",
		SiteName: "Vantage",
	})
}

func completionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

// registerGateway 按请求里的模型返回预设回复，未列出的模型返回 500
func registerGateway(t *testing.T, replies map[string]modelReply) {
	t.Helper()
	httpmock.RegisterResponder(http.MethodPost, testGatewayURL+"/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			var chat ChatRequest
			if err := json.Unmarshal(raw, &chat); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, "bad request"), nil
			}

			r, ok := replies[chat.Model]
			if !ok {
				return httpmock.NewStringResponse(http.StatusInternalServerError, "model unavailable"), nil
			}
			if r.errMsg != "" {
				return httpmock.NewJsonResponse(r.status, map[string]interface{}{
					"error": map[string]string{"message": r.errMsg},
				})
			}
			return httpmock.NewJsonResponse(r.status, completionBody(r.content))
		})
}
