package client

import (
	"sync"
)

// Box holds the latest published View for the UI goroutine to read or
// wait on. Each Put bumps a generation counter, so a waiter wakes even
// when the same snapshot is re-applied and the view value is unchanged.
type Box struct {
	l   *sync.Mutex
	c   *sync.Cond
	gen int
	v   View
}

func NewBox() *Box {
	l := &sync.Mutex{}
	c := sync.NewCond(l)
	return &Box{l: l, c: c}
}

func (b *Box) Put(v View) {
	b.l.Lock()
	defer b.l.Unlock()
	b.v = v
	b.gen++
	b.c.Broadcast()
}

func (b *Box) Get() (View, int) {
	b.l.Lock()
	defer b.l.Unlock()
	return b.v, b.gen
}

// Wait blocks until the generation moves past seen.
func (b *Box) Wait(seen int) (View, int) {
	b.l.Lock()
	defer b.l.Unlock()
	for b.gen == seen {
		b.c.Wait()
	}
	return b.v, b.gen
}

// Listen delivers the next view after seen on a channel, for selecting
// against other events.
func (b *Box) Listen(seen int) <-chan View {
	ch := make(chan View, 1)
	go func() {
		v, _ := b.Wait(seen)
		ch <- v
		close(ch)
	}()
	return ch
}
