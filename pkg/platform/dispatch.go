package platform

import "sync/atomic"

// DispatchFunc schedules a callback on the UI goroutine.
type DispatchFunc func(callback func())

var dispatchHook atomic.Pointer[DispatchFunc]

// RegisterDispatch sets the hook used to schedule callbacks on the UI
// goroutine and returns the previous one. Hosts usually pass
// (*RunLoop).Dispatch. Passing nil unregisters the hook.
func RegisterDispatch(fn DispatchFunc) DispatchFunc {
	var prev *DispatchFunc
	if fn == nil {
		prev = dispatchHook.Swap(nil)
	} else {
		prev = dispatchHook.Swap(&fn)
	}
	if prev == nil {
		return nil
	}
	return *prev
}

// Dispatch schedules a callback to run on the UI goroutine. It reports false,
// and drops the callback, when no hook is registered or callback is nil.
func Dispatch(callback func()) bool {
	p := dispatchHook.Load()
	if p == nil || callback == nil {
		return false
	}
	(*p)(callback)
	return true
}
