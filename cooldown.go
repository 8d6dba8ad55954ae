package main

// Cooldown is a countdown timer: Ready once Remaining reaches zero,
// Trigger restarts it at Period. A zero Period is Ready every tick.
type Cooldown struct {
	Period    float64
	Remaining float64
}

// NewCooldown returns a cooldown that starts Ready
func NewCooldown(period float64) Cooldown {
	return Cooldown{Period: period}
}

// Tick counts the timer down by dt seconds
func (c *Cooldown) Tick(dt float64) {
	if c.Remaining > 0 {
		c.Remaining -= dt
		if c.Remaining < 0 {
			c.Remaining = 0
		}
	}
}

// Ready returns true if the timer has elapsed
func (c *Cooldown) Ready() bool {
	return c.Remaining <= 0
}

// Trigger restarts the countdown
func (c *Cooldown) Trigger() {
	c.Remaining = c.Period
}

// TryTrigger restarts the countdown and returns true if it was Ready
func (c *Cooldown) TryTrigger() bool {
	if !c.Ready() {
		return false
	}
	c.Trigger()
	return true
}
