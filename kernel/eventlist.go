package kernel

import "math"

// Schedule registers an event to fire `delay` units of simulated time from
// now, addressed to token. It is the only way new events enter the event
// list from outside the kernel (§4.2).
func (k *Kernel) Schedule(eventCode int, delay float64, token Token) error {
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return invalidArgument("Schedule", "delay must be a finite, non-negative number")
	}
	if tokenIsNil(token) {
		return invalidArgument("Schedule", "token must not be nil")
	}

	r := k.pool.acquire()
	r.eventCode = eventCode
	r.token = token
	r.remainingTime = 0
	r.triggerTime = k.clock + delay
	k.enlistEventList(r)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosSchedule, Item: ScheduleInfo{
			EventCode:   eventCode,
			Token:       token,
			TriggerTime: r.triggerTime,
		}})
	}
	k.trace("SCHEDULE EVENT %d FOR TOKEN %v", eventCode, token)

	return nil
}

// Cause dequeues the earliest pending event, advances the clock to its
// trigger time, and returns its (eventCode, token) pair. ok is false when
// the event list is empty; the clock is left unchanged in that case.
func (k *Kernel) Cause() (eventCode int, token Token, ok bool) {
	if k.eventListHead == nil {
		return 0, nil, false
	}

	r := k.eventListHead
	k.eventListHead = r.next

	k.clock = r.triggerTime
	k.lastDispatchedEventCode = r.eventCode
	k.lastDispatchedToken = r.token
	eventCode, token = r.eventCode, r.token

	k.pool.release(r)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosCause, Item: ScheduleInfo{
			EventCode:   eventCode,
			Token:       token,
			TriggerTime: k.clock,
		}})
	}
	k.trace("CAUSE EVENT %d FOR TOKEN %v", eventCode, token)

	return eventCode, token, true
}

// Cancel removes the first event list record whose event code matches,
// returning its token. ok is false if no such record exists.
func (k *Kernel) Cancel(eventCode int) (token Token, ok bool) {
	var prev *eventRecord
	cur := k.eventListHead

	for cur != nil && cur.eventCode != eventCode {
		prev = cur
		cur = cur.next
	}

	if cur == nil {
		return nil, false
	}

	triggerTime := cur.triggerTime
	k.unlinkEventList(prev, cur)
	token = cur.token
	k.pool.release(cur)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosCancel, Item: ScheduleInfo{
			EventCode:   eventCode,
			Token:       token,
			TriggerTime: triggerTime,
		}})
	}
	k.trace("CANCEL EVENT %d FOR TOKEN %v", eventCode, token)

	return token, true
}

// Unschedule removes the first event list record whose (eventCode, token)
// both match.
func (k *Kernel) Unschedule(eventCode int, token Token) bool {
	var prev *eventRecord
	cur := k.eventListHead

	for cur != nil && (cur.eventCode != eventCode || cur.token != token) {
		prev = cur
		cur = cur.next
	}

	if cur == nil {
		return false
	}

	triggerTime := cur.triggerTime
	k.unlinkEventList(prev, cur)
	k.pool.release(cur)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosUnschedule, Item: ScheduleInfo{
			EventCode:   eventCode,
			Token:       token,
			TriggerTime: triggerTime,
		}})
	}
	k.trace("UNSCHEDULE EVENT %d FOR TOKEN %v", eventCode, token)

	return true
}

// Time returns the kernel's current logical clock.
func (k *Kernel) Time() float64 {
	return k.clock
}

// suspend removes the first event list record addressed to token and
// returns it. Unlike the public operations above, a missing token is a
// program bug (the caller, preempt, only ever suspends a token it already
// knows holds a server and therefore has a pending event) rather than a
// reportable precondition violation, so this panics per spec §9 Design
// Notes.
func (k *Kernel) suspend(token Token) *eventRecord {
	var prev *eventRecord
	cur := k.eventListHead

	for cur != nil && cur.token != token {
		prev = cur
		cur = cur.next
	}

	if cur == nil {
		panic("smpl: suspend: no event scheduled for token")
	}

	k.unlinkEventList(prev, cur)

	return cur
}

// enlistEventList inserts r in triggerTime order, after any existing
// record with an equal trigger time (stable FIFO tie-break, §4.2, §9
// note 3: the scan uses strict '>' so ties go to the tail).
func (k *Kernel) enlistEventList(r *eventRecord) {
	var prev *eventRecord
	cur := k.eventListHead

	for cur != nil && cur.triggerTime <= r.triggerTime {
		prev = cur
		cur = cur.next
	}

	r.next = cur
	if prev == nil {
		k.eventListHead = r
	} else {
		prev.next = r
	}
}

// prependEventList inserts r ahead of every other record, including ones
// at the same trigger time. Used only by release's blocked-request wakeup
// (§4.4) so that a just-unblocked request resolves before any other event
// already due at the current clock.
func (k *Kernel) prependEventList(r *eventRecord) {
	r.next = k.eventListHead
	k.eventListHead = r
}

func (k *Kernel) unlinkEventList(prev, cur *eventRecord) {
	if prev == nil {
		k.eventListHead = cur.next
	} else {
		prev.next = cur.next
	}
}
