// Package seller 维护卖家名册：地址、现金与在线状态。
package seller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Seller 描述一个已注册的卖家端点。
type Seller struct {
	Name     string
	Hostname string
	Port     int
	Path     string
	Cash     float64
	Online   bool
}

// New 根据展示名与 URL 创建卖家，现金为 0，初始离线。
func New(name, rawURL string) (Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Seller{}, fmt.Errorf("卖家名称不能为空")
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Seller{}, fmt.Errorf("解析卖家地址失败: %w", err)
	}
	if u.Hostname() == "" {
		return Seller{}, fmt.Errorf("卖家地址 %q 缺少主机名", rawURL)
	}

	port := 80
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Seller{}, fmt.Errorf("卖家地址端口非法: %w", err)
		}
	}

	return Seller{
		Name:     name,
		Hostname: u.Hostname(),
		Port:     port,
		Path:     strings.TrimSuffix(u.Path, "/"),
	}, nil
}
