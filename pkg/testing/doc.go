// Package testing provides deterministic stand-ins for time and display
// refresh, for tests of code built on chartkit's animation clock.
//
// # Animation Testing
//
// Install a FakeClock and a ManualDisplay, then fire refresh ticks by hand:
//
//	clk := dtesting.NewFakeClock()
//	prev := animation.SetClock(clk)
//	defer animation.SetClock(prev)
//
//	display := dtesting.NewManualDisplay(2)
//	loop := platform.NewRunLoop()
//	a := animation.NewChartAnimator(display, loop, platform.ModeDefault)
//	a.Animate(time.Second, time.Second, nil, nil)
//
//	clk.Advance(500 * time.Millisecond)
//	display.Link.Fire()              // runs the refresh handler off the test goroutine
//	loop.RunPending(platform.ModeDefault) // delivers the fire on the test goroutine
package testing
