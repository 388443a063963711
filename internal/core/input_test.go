package core

import "testing"

func TestControlToggle(t *testing.T) {
	c := NewControl(true)
	if !c.Sample() {
		t.Fatal("Control created held should sample as held")
	}

	if c.Toggle() {
		t.Error("Toggle() from held should return false")
	}
	if c.Sample() {
		t.Error("Sample() after toggle should be released")
	}
}

func TestControlPulseReleasesOnce(t *testing.T) {
	c := NewControl(true)
	c.Pulse()

	if c.Sample() {
		t.Error("First sample after Pulse() should be released")
	}
	if !c.Sample() {
		t.Error("Second sample after Pulse() should be held again")
	}
	if !c.Held() {
		t.Error("Pulse() should not change the latch")
	}
}

func TestControlPulsesQueue(t *testing.T) {
	c := NewControl(true)
	c.Pulse()
	c.Pulse()

	expected := []bool{false, false, true}
	for i, want := range expected {
		if got := c.Sample(); got != want {
			t.Errorf("Sample() #%d = %v, expected %v", i, got, want)
		}
	}
}

func TestLamp(t *testing.T) {
	var l Lamp
	if l.On() {
		t.Error("Zero Lamp should be off")
	}
	l.Set(true)
	if !l.On() {
		t.Error("Lamp should be on after Set(true)")
	}
}

func TestInputFunc(t *testing.T) {
	var in Input = InputFunc(func() bool { return true })
	if !in.Sample() {
		t.Error("InputFunc should return the function's value")
	}
}
