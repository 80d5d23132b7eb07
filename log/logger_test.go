package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelWarn)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	assert.Empty(t, buf.String())

	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)
	out := buf.String()
	assert.Contains(t, out, "[kernelplay] ")
	assert.Contains(t, out, "[WARN] warn 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"", LogLevelInfo, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"off", LogLevelNone, false},
		{"verbose", LogLevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Equal(t, "UNKNOWN(42)", LogLevel(42).String())
}

func TestPackageLevelLogger(t *testing.T) {
	orig := GetDefaultLogger()
	defer SetDefaultLogger(orig)

	var buf bytes.Buffer
	SetDefaultLogger(NewCustomLogger(&buf, LogLevelDebug))

	Debug("a")
	Info("b")
	Warn("c")
	Error("d")
	out := buf.String()
	for _, s := range []string{"[DEBUG] a", "[INFO] b", "[WARN] c", "[ERROR] d"} {
		assert.Contains(t, out, s)
	}
}

func TestCallbackHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewCallbackHandler(NewCustomLogger(&buf, LogLevelDebug))
	ctx := context.Background()

	h.HandleLLMGenerateContentStart(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "What is on my list?"),
	})
	h.HandleLLMGenerateContentEnd(ctx, &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content: "Buy groceries",
			ToolCalls: []llms.ToolCall{{
				ID:           "call_1",
				Type:         "function",
				FunctionCall: &llms.FunctionCall{Name: "TodoList-CompleteTask", Arguments: `{"task":"x"}`},
			}},
		}},
	})
	h.HandleLLMGenerateContentEnd(ctx, nil)
	h.HandleLLMError(ctx, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "model request [human]: What is on my list?")
	assert.Contains(t, out, "model response: Buy groceries")
	assert.Contains(t, out, "model requested tool TodoList-CompleteTask")
	assert.Contains(t, out, "model call failed: boom")
}

func TestNewCallbackHandler_NilLogger(t *testing.T) {
	h := NewCallbackHandler(nil)
	assert.NotPanics(t, func() {
		h.HandleToolStart(context.Background(), "in")
		h.HandleToolEnd(context.Background(), "out")
		h.HandleToolError(context.Background(), errors.New("x"))
	})
}
