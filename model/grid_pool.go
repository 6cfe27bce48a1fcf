package model

import "sync"

// GridPool recycles grid buffers between generations
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid with the requested dimensions
func (p *GridPool) Get(rows, cols int) *Grid {
	g := p.pool.Get().(*Grid)
	g.Reset(rows, cols)
	return g
}

// Put returns a grid to the pool; the caller must not use it afterwards
func (p *GridPool) Put(g *Grid) {
	if g == nil {
		return
	}
	p.pool.Put(g)
}
