package kernel

// FacilityID addresses a facility created by (*Kernel).Facility. IDs are
// assigned in creation order and never reused, which also gives the
// facility registry the insertion-stable iteration order spec §3 requires
// for report output.
type FacilityID int

// RequestResult is the outcome of Request or Preempt.
type RequestResult int

const (
	// Reserved means a server was immediately assigned to the caller.
	Reserved RequestResult = iota
	// Queued means every server was busy and the caller was parked on
	// the facility's waiting queue.
	Queued
)

func (r RequestResult) String() string {
	if r == Reserved {
		return "RESERVED"
	}
	return "QUEUED"
}

// facilityServer is one unit of a Facility (§3).
type facilityServer struct {
	busyToken     Token // nil iff the server is idle
	busyPriority  int
	busyStart     float64
	releaseCount  int
	totalBusyTime float64
}

func (s *facilityServer) idle() bool {
	return s.busyToken == nil
}

// facility is a named bundle of servers plus a priority-ordered waiting
// queue and its time-weighted statistics (§3, §4.3, §4.4).
type facility struct {
	id      FacilityID
	name    string
	servers []facilityServer

	busyCount int

	queueHead      *eventRecord
	queueLen       int
	queueExitCount int
	preemptCount   int

	lastChangeTime    float64
	totalQueueingTime float64
}

// Facility creates a named resource with n servers and returns its ID.
// Facilities are never destroyed during a run (§3 Lifecycle).
func (k *Kernel) Facility(name string, n int) (FacilityID, error) {
	if n <= 0 {
		return 0, invalidArgument("Facility", "a facility must have at least one server")
	}

	id := FacilityID(len(k.facilities))
	f := &facility{
		id:             id,
		name:           name,
		servers:        make([]facilityServer, n),
		lastChangeTime: k.clock,
	}
	k.facilities = append(k.facilities, f)

	return id, nil
}

func (k *Kernel) facilityByID(op string, id FacilityID) (*facility, error) {
	if id < 0 || int(id) >= len(k.facilities) {
		return nil, invalidArgument(op, "unknown facility id")
	}
	return k.facilities[id], nil
}

// Fname returns the name a facility was created with.
func (k *Kernel) Fname(id FacilityID) (string, error) {
	f, err := k.facilityByID("Fname", id)
	if err != nil {
		return "", err
	}
	return f.name, nil
}

// Request attempts a non-preemptive reservation of one server of facility
// id for token at the given priority (§4.4). If every server is busy, the
// request is parked on the facility queue and resumed, via the event list,
// the next time a holder releases.
func (k *Kernel) Request(id FacilityID, token Token, priority int) (RequestResult, error) {
	if tokenIsNil(token) {
		return 0, invalidArgument("Request", "token must not be nil")
	}

	f, err := k.facilityByID("Request", id)
	if err != nil {
		return 0, err
	}

	if f.busyCount < len(f.servers) {
		idx := firstIdleServer(f)
		k.reserve(f, idx, token, priority)
		k.trace("REQUEST FACILITY %s FOR TOKEN %v:  RESERVED", f.name, token)
		return Reserved, nil
	}

	k.enqueue(f, token, priority, k.lastDispatchedEventCode, 0)
	k.trace("REQUEST FACILITY %s FOR TOKEN %v:  QUEUED  (inq = %d)", f.name, token, f.queueLen)

	return Queued, nil
}

// Preempt attempts a priority reservation of one server of facility id. If
// every server is busy and all hold a priority >= the caller's, the
// request queues exactly like Request. Otherwise the lowest-priority
// holder is evicted: its pending event is suspended, its residual time to
// that event is saved, and it is parked at the head of its priority class
// on the facility queue to resume once a server frees up again (§4.4).
func (k *Kernel) Preempt(id FacilityID, token Token, priority int) (RequestResult, error) {
	if tokenIsNil(token) {
		return 0, invalidArgument("Preempt", "token must not be nil")
	}

	f, err := k.facilityByID("Preempt", id)
	if err != nil {
		return 0, err
	}

	if f.busyCount < len(f.servers) {
		idx := firstIdleServer(f)
		k.reserve(f, idx, token, priority)
		k.trace("PREEMPT FACILITY %s FOR TOKEN %v:  RESERVED", f.name, token)
		return Reserved, nil
	}

	victim := lowestPriorityServer(f)
	if priority <= f.servers[victim].busyPriority {
		k.enqueue(f, token, priority, k.lastDispatchedEventCode, 0)
		k.trace("PREEMPT FACILITY %s FOR TOKEN %v:  QUEUED  (inq = %d)", f.name, token, f.queueLen)
		return Queued, nil
	}

	k.trace("PREEMPT FACILITY %s FOR TOKEN %v:  INTERRUPT", f.name, token)

	s := &f.servers[victim]
	victimToken := s.busyToken
	ev := k.suspend(victimToken)

	te := ev.triggerTime - k.clock
	if te == 0 {
		te = preemptedResumeSentinel
	}
	evCode := ev.eventCode
	victimPriority := s.busyPriority
	k.pool.release(ev)

	k.enqueue(f, victimToken, victimPriority, evCode, te)
	k.trace("QUEUE FOR TOKEN %v (inq = %d)", victimToken, f.queueLen)

	s.releaseCount++
	s.totalBusyTime += k.clock - s.busyStart
	f.busyCount--
	f.preemptCount++

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosPreempt, Item: facilityInfo(f), Detail: victimToken})
	}

	k.reserve(f, victim, token, priority)
	k.trace("RESERVE %s FOR TOKEN %v:  RESERVED", f.name, token)

	return Reserved, nil
}

// Release frees the server that token holds in facility id. If the
// facility's waiting queue is non-empty, its head is dequeued: a blocked
// (never-served) request is re-injected at the head of the event list so
// the model re-invokes Request on the next Cause; a preempted resume
// reclaims the freed server directly and has a fresh event scheduled for
// its saved residual time (§4.4).
func (k *Kernel) Release(id FacilityID, token Token) error {
	if tokenIsNil(token) {
		return invalidArgument("Release", "token must not be nil")
	}

	f, err := k.facilityByID("Release", id)
	if err != nil {
		return err
	}

	idx := -1
	for i := range f.servers {
		if f.servers[i].busyToken == token {
			idx = i
			break
		}
	}
	if idx == -1 {
		return invalidState("Release", "no server in this facility is reserved for token")
	}

	s := &f.servers[idx]
	s.busyToken = nil
	s.releaseCount++
	s.totalBusyTime += k.clock - s.busyStart
	f.busyCount--

	k.trace("RELEASE FACILITY %s FOR TOKEN %v", f.name, token)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosRelease, Item: facilityInfo(f), Detail: token})
	}

	if f.queueLen > 0 {
		k.dequeue(f, s)
	}

	return nil
}

// Status reports whether every server of facility id is busy.
func (k *Kernel) Status(id FacilityID) (bool, error) {
	f, err := k.facilityByID("Status", id)
	if err != nil {
		return false, err
	}
	return f.busyCount == len(f.servers), nil
}

// Inq returns the current length of facility id's waiting queue.
func (k *Kernel) Inq(id FacilityID) (int, error) {
	f, err := k.facilityByID("Inq", id)
	if err != nil {
		return 0, err
	}
	return f.queueLen, nil
}

// U returns the facility's utilization: the sum, across servers, of the
// fraction of the measurement interval each server spent busy (§4.5). It
// may exceed 1 for a multi-server facility.
func (k *Kernel) U(id FacilityID) (float64, error) {
	f, err := k.facilityByID("U", id)
	if err != nil {
		return 0, err
	}

	t := k.clock - k.intervalStart
	if t <= 0 {
		return 0, nil
	}

	var busy float64
	for i := range f.servers {
		busy += f.servers[i].totalBusyTime
	}

	return busy / t, nil
}

// B returns the facility's mean busy period: total busy time divided by
// total release count, across all servers (§4.5).
func (k *Kernel) B(id FacilityID) (float64, error) {
	f, err := k.facilityByID("B", id)
	if err != nil {
		return 0, err
	}

	var busy float64
	var n int
	for i := range f.servers {
		busy += f.servers[i].totalBusyTime
		n += f.servers[i].releaseCount
	}

	if n > 0 {
		return busy / float64(n), nil
	}
	return busy, nil
}

// Lq returns the facility's time-averaged queue length, measured from
// intervalStart. As in the reference implementation this lags reality
// between queue changes: it does not fold in the open interval since the
// queue's lastChangeTime (§4.5, §9 Open Question 1). Use LqCorrected for an
// accurate-at-any-instant variant.
func (k *Kernel) Lq(id FacilityID) (float64, error) {
	f, err := k.facilityByID("Lq", id)
	if err != nil {
		return 0, err
	}

	t := k.clock - k.intervalStart
	if t <= 0 {
		return 0, nil
	}
	return f.totalQueueingTime / t, nil
}

// LqCorrected is Lq with the tail interval since the queue's last change
// folded in, so it is accurate at any query point rather than only at the
// instant of the last enqueue/dequeue.
func (k *Kernel) LqCorrected(id FacilityID) (float64, error) {
	f, err := k.facilityByID("LqCorrected", id)
	if err != nil {
		return 0, err
	}

	t := k.clock - k.intervalStart
	if t <= 0 {
		return 0, nil
	}

	tail := float64(f.queueLen) * (k.clock - f.lastChangeTime)
	return (f.totalQueueingTime + tail) / t, nil
}

func firstIdleServer(f *facility) int {
	for i := range f.servers {
		if f.servers[i].idle() {
			return i
		}
	}
	panic("smpl: firstIdleServer: facility reported non-busy but has no idle server")
}

func lowestPriorityServer(f *facility) int {
	best := 0
	for i := 1; i < len(f.servers); i++ {
		if f.servers[i].busyPriority < f.servers[best].busyPriority {
			best = i
		}
	}
	return best
}

func (k *Kernel) reserve(f *facility, idx int, token Token, priority int) {
	s := &f.servers[idx]
	s.busyToken = token
	s.busyPriority = priority
	s.busyStart = k.clock
	f.busyCount++

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosRequest, Item: facilityInfo(f), Detail: token})
	}
}

// enqueue parks a fresh queue record for token on f's waiting queue and
// updates the time-weighted queue-length bookkeeping (§4.3).
func (k *Kernel) enqueue(f *facility, token Token, priority, eventCode int, remaining float64) {
	f.totalQueueingTime += float64(f.queueLen) * (k.clock - f.lastChangeTime)
	f.queueLen++
	f.lastChangeTime = k.clock

	r := k.pool.acquire()
	r.token = token
	r.eventCode = eventCode
	r.remainingTime = remaining
	r.priority = priority

	insertIntoFacilityQueue(f, r)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosEnqueue, Item: facilityInfo(f), Detail: QueueRecordInfo{
			Token:         r.token,
			Priority:      r.priority,
			EventCode:     r.eventCode,
			RemainingTime: r.remainingTime,
		}})
	}
}

// insertIntoFacilityQueue places r in descending-priority order; within a
// priority class, a preempted resume (remainingTime > 0) goes ahead of
// every non-preempted peer (§4.3).
func insertIntoFacilityQueue(f *facility, r *eventRecord) {
	var prev *eventRecord
	cur := f.queueHead

	for cur != nil {
		before := cur.priority < r.priority ||
			(cur.priority == r.priority && r.remainingTime > 0)
		if before {
			break
		}
		prev = cur
		cur = cur.next
	}

	r.next = cur
	if prev == nil {
		f.queueHead = r
	} else {
		prev.next = r
	}
}

// dequeue pops the head of f's waiting queue after server s has just been
// freed, and either wakes a blocked request (by re-injecting it at the
// head of the event list) or hands the server straight back to a
// preempted resume and reschedules its remaining event (§4.4).
func (k *Kernel) dequeue(f *facility, s *facilityServer) {
	r := f.queueHead
	f.queueHead = r.next

	f.totalQueueingTime += float64(f.queueLen) * (k.clock - f.lastChangeTime)
	f.queueLen--
	f.queueExitCount++
	f.lastChangeTime = k.clock

	k.trace("DEQUEUE FOR TOKEN %v  (inq = %d)", r.token, f.queueLen)

	if k.NumHooks() > 0 {
		k.InvokeHook(HookCtx{Domain: k, Pos: HookPosDequeue, Item: facilityInfo(f), Detail: r.token})
	}

	if r.remainingTime == 0 {
		r.triggerTime = k.clock
		k.prependEventList(r)
		k.trace("RESCHEDULE EVENT %d FOR TOKEN %v", r.eventCode, r.token)
		return
	}

	s.busyToken = r.token
	s.busyPriority = r.priority
	s.busyStart = k.clock
	f.busyCount++
	k.trace("RESERVE %s FOR TOKEN %v", f.name, r.token)

	r.triggerTime = k.clock + r.remainingTime
	r.remainingTime = 0
	k.enlistEventList(r)
	k.trace("RESUME EVENT %d FOR TOKEN %v", r.eventCode, r.token)
}
