package kernel

// ScheduleInfo is the Item carried by a HookPosSchedule/HookPosCause/
// HookPosCancel/HookPosUnschedule hook context.
type ScheduleInfo struct {
	EventCode   int
	Token       Token
	TriggerTime float64
}

// FacilityInfo is the Item carried by a facility-transition hook context
// (HookPosRequest, HookPosPreempt, HookPosRelease, HookPosEnqueue,
// HookPosDequeue). It is a snapshot, not a live view: mutating it has no
// effect on the kernel.
type FacilityInfo struct {
	ID        FacilityID
	Name      string
	Servers   int
	BusyCount int
	QueueLen  int
}

// QueueRecordInfo is the Detail carried by a HookPosEnqueue hook context.
// RemainingTime is non-zero only for a preempted resume waiting to
// reclaim a server (§4.4); a blocked (never-served) request carries 0.
type QueueRecordInfo struct {
	Token         Token
	Priority      int
	EventCode     int
	RemainingTime float64
}

func facilityInfo(f *facility) FacilityInfo {
	return FacilityInfo{
		ID:        f.id,
		Name:      f.name,
		Servers:   len(f.servers),
		BusyCount: f.busyCount,
		QueueLen:  f.queueLen,
	}
}
