package api

import (
	"net/http"
	"strings"
)

// originPolicy は CORS_ALLOW_ORIGINS (カンマ区切り) から作る許可オリジンの一覧です。
// 未設定または "*" を含む場合はすべてのオリジンを許可します。
type originPolicy struct {
	any     bool
	allowed map[string]bool
}

func newOriginPolicy(list string) originPolicy {
	p := originPolicy{allowed: make(map[string]bool)}
	for _, o := range strings.Split(list, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			p.any = true
		default:
			p.allowed[o] = true
		}
	}
	if len(p.allowed) == 0 {
		p.any = true
	}
	return p
}

// allowOrigin は応答の Access-Control-Allow-Origin に入れる値を返します。
// 許可されないオリジンなら false です。
func (p originPolicy) allowOrigin(origin string) (string, bool) {
	if p.any {
		return "*", true
	}
	if p.allowed[origin] {
		return origin, true
	}
	return "", false
}

// checkOrigin は WebSocket のハンドシェイクで使います。
// Origin ヘッダーのないブラウザ以外のクライアントは許可します。
func (p originPolicy) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := p.allowOrigin(origin)
	return ok
}
