package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestReplyText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text(`[{"question":`), genai.Text(`"Q"}]`)}}},
			}},
			want: `[{"question":"Q"}]`,
		},
		{
			name: "skips non-text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}, genai.Text("[]")}}},
			}},
			want: "[]",
		},
		{
			name: "skips candidates without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonSafety},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			want: "second",
		},
		{
			name: "stops after first candidate with content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			want: "first",
		},
		{
			name: "empty parts give empty reply",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("")}}},
			}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, replyText(tt.resp))
		})
	}
}
