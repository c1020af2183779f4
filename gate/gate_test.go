package gate

import (
	"sync"
	"testing"
)

func TestStatic(t *testing.T) {
	if !Static(true).IsActive() || !Static(true).IsAllowed() {
		t.Error("Static(true) reported false")
	}
	if Static(false).IsActive() || Static(false).IsAllowed() {
		t.Error("Static(false) reported true")
	}
}

func TestManual_Set(t *testing.T) {
	g := NewManual(false)
	if g.IsActive() || g.IsAllowed() {
		t.Error("initial value = true, want false")
	}

	g.Set(true)
	if !g.IsActive() || !g.IsAllowed() {
		t.Error("value after Set(true) = false, want true")
	}
}

func TestManual_Subscribe(t *testing.T) {
	g := NewManual(false)

	var got []bool
	unsubscribe := g.Subscribe(func(v bool) {
		got = append(got, v)
	})

	g.Set(true)
	g.Set(true) // no change, no notification
	g.Set(false)

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("notifications = %v, want [true false]", got)
	}

	unsubscribe()
	unsubscribe() // harmless
	g.Set(true)
	if len(got) != 2 {
		t.Errorf("notifications after unsubscribe = %d, want 2", len(got))
	}
}

func TestManual_SubscriberOrder(t *testing.T) {
	g := NewManual(false)

	var order []int
	g.Subscribe(func(bool) { order = append(order, 1) })
	g.Subscribe(func(bool) { order = append(order, 2) })
	g.Subscribe(func(bool) { order = append(order, 3) })

	g.Set(true)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("notification order = %v, want [1 2 3]", order)
	}
}

func TestBind(t *testing.T) {
	g := NewManual(true)

	var resumes int
	unbind := Bind(g, func() { resumes++ })

	g.Set(false) // losing the gate does not resume
	if resumes != 0 {
		t.Errorf("resumes after Set(false) = %d, want 0", resumes)
	}

	g.Set(true)
	if resumes != 1 {
		t.Errorf("resumes after Set(true) = %d, want 1", resumes)
	}

	unbind()
	g.Set(false)
	g.Set(true)
	if resumes != 1 {
		t.Errorf("resumes after unbind = %d, want 1", resumes)
	}
}

func TestManual_ConcurrentSet(t *testing.T) {
	g := NewManual(false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v bool) {
			defer wg.Done()
			g.Set(v)
			g.IsAllowed()
		}(i%2 == 0)
	}
	wg.Wait()
}
