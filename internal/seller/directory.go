package seller

import (
	"fmt"
	"sync"
)

// Directory 是以名称为键的内存卖家名册。
// 现金与在线状态只由对账结果修改，注册的卖家不会被移除。
type Directory struct {
	mu      sync.RWMutex
	sellers map[string]*Seller
}

// NewDirectory 创建空名册。
func NewDirectory() *Directory {
	return &Directory{sellers: make(map[string]*Seller)}
}

// Add 登记卖家。重名视为重新注册，只更新地址，保留现金与在线状态。
func (d *Directory) Add(s Seller) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.sellers[s.Name]; ok {
		existing.Hostname = s.Hostname
		existing.Port = s.Port
		existing.Path = s.Path
		return
	}

	copied := s
	d.sellers[s.Name] = &copied
}

// All 返回当前名册的快照，顺序不保证稳定。
func (d *Directory) All() []Seller {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Seller, 0, len(d.sellers))
	for _, s := range d.sellers {
		out = append(out, *s)
	}
	return out
}

// Get 按名称查找卖家。
func (d *Directory) Get(name string) (Seller, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.sellers[name]
	if !ok {
		return Seller{}, false
	}
	return *s, true
}

// UpdateCash 在卖家现有现金上累加指定金额。
func (d *Directory) UpdateCash(name string, amountToAdd float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sellers[name]
	if !ok {
		return fmt.Errorf("卖家 %q 不存在", name)
	}
	s.Cash += amountToAdd
	return nil
}

// SetOnline 标记卖家在线，幂等。
func (d *Directory) SetOnline(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.sellers[name]; ok {
		s.Online = true
	}
}

// SetOffline 标记卖家离线，幂等。
func (d *Directory) SetOffline(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.sellers[name]; ok {
		s.Online = false
	}
}
