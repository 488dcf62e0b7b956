package platform

// SetupTestDispatch registers loop as the global dispatch target and arranges
// for the previous hook to be restored at teardown. The cleanup function
// should be testing.T.Cleanup or equivalent.
//
//	loop := platform.NewRunLoop()
//	platform.SetupTestDispatch(loop, t.Cleanup)
func SetupTestDispatch(loop *RunLoop, cleanup func(func())) {
	prev := RegisterDispatch(loop.Dispatch)
	cleanup(func() { RegisterDispatch(prev) })
}
