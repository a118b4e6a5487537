package kernel

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventList", func() {
	var k *Kernel

	BeforeEach(func() {
		k = New()
		Expect(k.Init("eventlist model")).To(Succeed())
	})

	It("dispatches events in trigger-time order regardless of schedule order", func() {
		Expect(k.Schedule(1, 5, IntToken(1))).To(Succeed())
		Expect(k.Schedule(2, 1, IntToken(2))).To(Succeed())
		Expect(k.Schedule(3, 3, IntToken(3))).To(Succeed())

		code, token, ok := k.Cause()
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(2))
		Expect(token).To(Equal(IntToken(2)))
		Expect(k.Time()).To(Equal(1.0))

		code, token, ok = k.Cause()
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(3))
		Expect(token).To(Equal(IntToken(3)))
		Expect(k.Time()).To(Equal(3.0))

		code, token, ok = k.Cause()
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(1))
		Expect(token).To(Equal(IntToken(1)))
		Expect(k.Time()).To(Equal(5.0))

		_, _, ok = k.Cause()
		Expect(ok).To(BeFalse())
	})

	It("breaks ties in schedule order (stable FIFO)", func() {
		Expect(k.Schedule(10, 2, IntToken(1))).To(Succeed())
		Expect(k.Schedule(20, 2, IntToken(2))).To(Succeed())
		Expect(k.Schedule(30, 2, IntToken(3))).To(Succeed())

		for _, want := range []int{10, 20, 30} {
			code, _, ok := k.Cause()
			Expect(ok).To(BeTrue())
			Expect(code).To(Equal(want))
		}
	})

	It("rejects a negative or non-finite delay", func() {
		Expect(k.Schedule(1, -1, IntToken(1))).To(HaveOccurred())
		Expect(k.Schedule(1, math.NaN(), IntToken(1))).To(HaveOccurred())
		Expect(k.Schedule(1, math.Inf(1), IntToken(1))).To(HaveOccurred())
	})

	It("rejects a nil token", func() {
		Expect(k.Schedule(1, 1, nil)).To(HaveOccurred())
	})

	It("cancels the first record with a matching event code", func() {
		Expect(k.Schedule(7, 1, IntToken(1))).To(Succeed())
		Expect(k.Schedule(7, 2, IntToken(2))).To(Succeed())

		token, ok := k.Cancel(7)
		Expect(ok).To(BeTrue())
		Expect(token).To(Equal(IntToken(1)))

		code, token, ok := k.Cause()
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(7))
		Expect(token).To(Equal(IntToken(2)))
	})

	It("reports no match when cancelling an unknown event code", func() {
		_, ok := k.Cancel(99)
		Expect(ok).To(BeFalse())
	})

	It("unschedules only the record matching both event code and token", func() {
		Expect(k.Schedule(7, 1, IntToken(1))).To(Succeed())
		Expect(k.Schedule(7, 2, IntToken(2))).To(Succeed())

		Expect(k.Unschedule(7, IntToken(1))).To(BeTrue())
		Expect(k.Unschedule(7, IntToken(1))).To(BeFalse())

		code, token, ok := k.Cause()
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(7))
		Expect(token).To(Equal(IntToken(2)))
	})

	It("invokes registered hooks on Schedule with an exported payload", func() {
		var seen ScheduleInfo
		k.AcceptHook(hookFunc(func(ctx HookCtx) {
			if ctx.Pos == HookPosSchedule {
				seen = ctx.Item.(ScheduleInfo)
			}
		}))

		Expect(k.Schedule(42, 3, IntToken(9))).To(Succeed())

		Expect(seen.EventCode).To(Equal(42))
		Expect(seen.Token).To(Equal(IntToken(9)))
		Expect(seen.TriggerTime).To(Equal(3.0))
	})
})

type hookFunc func(ctx HookCtx)

func (f hookFunc) Func(ctx HookCtx) {
	f(ctx)
}
