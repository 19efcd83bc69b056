package dispatch

import "time"

// Clock 抽象计时器，便于测试中替换真实时间。
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
