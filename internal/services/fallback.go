package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrAllModelsFailed 回退链中的所有模型均失败
var ErrAllModelsFailed = errors.New("all models failed")

// Attempt 回退链中单个模型的一次尝试
type Attempt struct {
	Model   string
	Content string
	Err     error
}

func (a Attempt) OK() bool {
	return a.Err == nil
}

// ChainResult 按顺序记录的尝试结果，第一次成功即停止
type ChainResult struct {
	Attempts []Attempt
}

// Winner 返回成功的那次尝试
func (r ChainResult) Winner() (Attempt, bool) {
	for _, a := range r.Attempts {
		if a.OK() {
			return a, true
		}
	}
	return Attempt{}, false
}

// LastError 最后一次失败的错误
func (r ChainResult) LastError() error {
	for i := len(r.Attempts) - 1; i >= 0; i-- {
		if r.Attempts[i].Err != nil {
			return r.Attempts[i].Err
		}
	}
	return nil
}

// ChainError 回退链耗尽时返回的聚合错误
type ChainError struct {
	Result ChainResult
}

func (e *ChainError) Error() string {
	last := e.Result.LastError()
	if last == nil {
		return ErrAllModelsFailed.Error()
	}
	return fmt.Sprintf("%s (%d tried): %v", ErrAllModelsFailed, len(e.Result.Attempts), last)
}

func (e *ChainError) Unwrap() []error {
	if last := e.Result.LastError(); last != nil {
		return []error{ErrAllModelsFailed, last}
	}
	return []error{ErrAllModelsFailed}
}

// Models 参与尝试的模型列表
func (e *ChainError) Models() string {
	names := make([]string, len(e.Result.Attempts))
	for i, a := range e.Result.Attempts {
		names[i] = a.Model
	}
	return strings.Join(names, ", ")
}

// RunFallbackChain 按顺序对每个模型调用一次 call，直到拿到结果。
// 这不是重试策略：每个模型只尝试一次，没有退避。
func RunFallbackChain(ctx context.Context, models []string, call func(ctx context.Context, model string) (string, error)) (ChainResult, error) {
	var result ChainResult
	logger := serviceLogger("llm")

	for _, model := range models {
		if err := ctx.Err(); err != nil {
			result.Attempts = append(result.Attempts, Attempt{Model: model, Err: err})
			break
		}

		content, err := call(ctx, model)
		if err == nil && strings.TrimSpace(content) == "" {
			err = ErrEmptyCompletion
		}
		if err != nil {
			logger.Warn("model attempt failed", "model", model, "error", err)
			result.Attempts = append(result.Attempts, Attempt{Model: model, Err: err})
			continue
		}

		result.Attempts = append(result.Attempts, Attempt{Model: model, Content: strings.TrimSpace(content)})
		return result, nil
	}

	return result, &ChainError{Result: result}
}
