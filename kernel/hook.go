package kernel

// HookPos names a site in the kernel where a Hook can be invoked.
type HookPos struct {
	Name string
}

// HookCtx carries the information about the site that triggered a hook.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is anything that accepts Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// Hook positions fired around event-list and facility state transitions.
// Unlike the teacher's BeforeEvent/AfterEvent pair, there is no dispatch
// hook here: the kernel never calls a Handler itself (spec §2 control
// flow has the user's own loop do that), so the only observable
// transitions are the ones below.
var (
	HookPosSchedule   = &HookPos{Name: "Schedule"}
	HookPosCause      = &HookPos{Name: "Cause"}
	HookPosCancel     = &HookPos{Name: "Cancel"}
	HookPosUnschedule = &HookPos{Name: "Unschedule"}
	HookPosRequest    = &HookPos{Name: "Request"}
	HookPosPreempt    = &HookPos{Name: "Preempt"}
	HookPosRelease    = &HookPos{Name: "Release"}
	HookPosEnqueue    = &HookPos{Name: "Enqueue"}
	HookPosDequeue    = &HookPos{Name: "Dequeue"}
)

// Hook is a short piece of program invoked by a Hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the bookkeeping that satisfies Hookable. The
// kernel holds the only instance any model ever constructs (there is no
// per-port or per-buffer Hookable here), so unlike the teacher's
// HookableBase this one keeps its hook slice private: nothing outside
// the package has a reason to walk it directly, only to register
// (AcceptHook), count (NumHooks), or fire (InvokeHook) against it.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase creates an empty HookableBase.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks currently registered. Every
// kernel call site checks this before building a HookCtx payload, so a
// model running with no hooks attached pays nothing for the hook
// machinery beyond this length check.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook triggers every registered hook, in registration order, with
// the given context.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
