package api

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
)

// checkMenuURL はメニュー取得先の URL を検証します。
// http(s) のみを許可し、名前解決した全アドレスが公開ネットワーク上にあることを確認します。
func checkMenuURL(ctx context.Context, rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("URLを解析できません: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("許可されていないスキームです: %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("ホストがありません: %s", rawURL)
	}

	addrs, err := resolve(ctx, host)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		if !isPublic(addr) {
			return fmt.Errorf("内部ネットワーク宛てのアクセスです: %s", addr)
		}
	}
	return nil
}

func resolve(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{addr}, nil
	}
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, fmt.Errorf("%s の名前解決に失敗しました: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%s のアドレスが見つかりません", host)
	}
	return addrs, nil
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsValid() &&
		addr.IsGlobalUnicast() &&
		!addr.IsPrivate() &&
		!addr.IsLoopback() &&
		!addr.IsLinkLocalUnicast()
}
