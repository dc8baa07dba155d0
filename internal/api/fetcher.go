package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"
)

const maxRedirects = 3

var errMenuTooLarge = errors.New("menu body exceeds the size limit")

// dialGuard は接続直前に、実際に接続するアドレス (host:port) を検証します。
type dialGuard func(address string) error

// publicOnly は公開ネットワーク以外への接続を拒否します。
func publicOnly(address string) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("接続先がIPアドレスではありません: %s", host)
	}
	if !isPublic(addr) {
		return fmt.Errorf("内部ネットワーク宛ての接続を拒否しました: %s", addr)
	}
	return nil
}

// GuardedFetcher はメニュー取得用の HTTP クライアントです。
// 名前解決後の接続先とリダイレクト先を毎回検証し、本文は maxBytes までしか読みません。
type GuardedFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewMenuFetcher は公開ネットワークのみに接続する MenuFetcher を作成します。
func NewMenuFetcher(timeout time.Duration) *GuardedFetcher {
	return newGuardedFetcher(timeout, maxMenuBytes, publicOnly)
}

func newGuardedFetcher(timeout time.Duration, maxBytes int64, guard dialGuard) *GuardedFetcher {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: func(network, address string, _ syscall.RawConn) error {
			return guard(address)
		},
	}
	transport := &http.Transport{
		Proxy:               nil,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        4,
		IdleConnTimeout:     30 * time.Second,
	}
	return &GuardedFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("リダイレクトが多すぎます: %d", len(via))
				}
				if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
					return fmt.Errorf("許可されていないスキームへのリダイレクトです: %q", req.URL.Scheme)
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchBytes は rawURL の本文を取得します。2xx 以外の応答と上限を超える本文はエラーです。
func (f *GuardedFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain, text/html;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, errMenuTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, errMenuTooLarge
	}
	return data, nil
}
