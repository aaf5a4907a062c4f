package sqlite

import "sync/atomic"

// ConnCounter counts connection-open events since process start. It is not a gauge of
// live connections and is never reset.
type ConnCounter struct {
	n atomic.Int64
}

func NewConnCounter() *ConnCounter {
	return &ConnCounter{}
}

// Inc records one open and returns the new total.
func (c *ConnCounter) Inc() int64 {
	return c.n.Add(1)
}

func (c *ConnCounter) Load() int64 {
	return c.n.Load()
}
