// Package viewstate 保存每个访客的界面状态，会话里只放访客 ID
package viewstate

import (
	"github.com/google/uuid"
)

type Status string

const (
	Hidden  Status = "hidden"
	Loading Status = "loading"
	Loaded  Status = "loaded"
	Failed  Status = "error"
)

// Leaderboard 排行榜面板状态：Hidden → Loading → Loaded | Error。
// 每次进入 Loading 都会生成新的请求令牌，旧令牌的结果一律丢弃。
type Leaderboard struct {
	Status Status `json:"status"`
	Token  string `json:"token,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewLeaderboard 初始为隐藏
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{Status: Hidden}
}

func (l *Leaderboard) startLoading() string {
	l.Status = Loading
	l.Token = uuid.NewString()
	l.Error = ""
	return l.Token
}

// Show 打开面板。隐藏时进入 Loading；已加载或失败时保持原状，只有 Refresh 能重新加载
func (l *Leaderboard) Show() string {
	if l.Status == Hidden || l.Status == "" {
		return l.startLoading()
	}
	return l.Token
}

// Refresh 强制重新加载，之前发出的请求令牌全部作废
func (l *Leaderboard) Refresh() string {
	return l.startLoading()
}

// Collapse 任意状态下收起面板
func (l *Leaderboard) Collapse() {
	l.Status = Hidden
	l.Token = ""
	l.Error = ""
}

// Resolve 请求成功。令牌过期或不在 Loading 时忽略，返回 false
func (l *Leaderboard) Resolve(token string) bool {
	if l.Status != Loading || token == "" || token != l.Token {
		return false
	}
	l.Status = Loaded
	return true
}

// Fail 请求失败，规则同 Resolve
func (l *Leaderboard) Fail(token, message string) bool {
	if l.Status != Loading || token == "" || token != l.Token {
		return false
	}
	l.Status = Failed
	l.Error = message
	return true
}

// Visible 面板是否展开
func (l *Leaderboard) Visible() bool {
	return l.Status != Hidden && l.Status != ""
}
