package kernel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Facility", func() {
	var k *Kernel

	BeforeEach(func() {
		k = New()
		Expect(k.Init("facility model")).To(Succeed())
	})

	It("reserves an idle server immediately", func() {
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		result, err := k.Request(f, IntToken(1), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		busy, err := k.Status(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(busy).To(BeTrue())
	})

	It("queues a second request against a full single-server facility and resumes it on release", func() {
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		result, err := k.Request(f, StringToken("a"), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		result, err = k.Request(f, StringToken("b"), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Queued))

		inq, _ := k.Inq(f)
		Expect(inq).To(Equal(1))

		k.clock = 7
		Expect(k.Release(f, StringToken("a"))).To(Succeed())

		inq, _ = k.Inq(f)
		Expect(inq).To(Equal(0))

		_, token, ok := k.Cause()
		Expect(ok).To(BeTrue())
		Expect(token).To(Equal(StringToken("b")))

		result, err = k.Request(f, token, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		Expect(k.facilities[f].queueExitCount).To(Equal(1))
	})

	It("preempts a lower-priority holder and resumes it with the residual time on release", func() {
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		result, err := k.Request(f, StringToken("low"), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		// "low" has a pending completion event ten time units out; at t=0
		// that is its only scheduled event, which is exactly what suspend
		// needs to find when preempt interrupts it below.
		Expect(k.Schedule(100, 10, StringToken("low"))).To(Succeed())

		k.clock = 4

		result, err = k.Preempt(f, StringToken("high"), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		busy, _ := k.Status(f)
		Expect(busy).To(BeTrue())

		Expect(k.Release(f, StringToken("high"))).To(Succeed())

		code, token, ok := k.Cause()
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(100))
		Expect(token).To(Equal(StringToken("low")))
		Expect(k.Time()).To(Equal(10.0))

		Expect(k.facilities[f].preemptCount).To(Equal(1))
	})

	It("queues a preempt attempt against an equal-priority holder instead of interrupting it", func() {
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		result, err := k.Request(f, StringToken("b"), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		result, err = k.Preempt(f, StringToken("c"), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Queued))

		inq, _ := k.Inq(f)
		Expect(inq).To(Equal(1))
	})

	It("reports utilization and mean queue length over the measurement interval", func() {
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		result, err := k.Request(f, StringToken("a"), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(Reserved))

		k.clock = 10
		Expect(k.Release(f, StringToken("a"))).To(Succeed())

		u, err := k.U(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(BeNumerically("~", 1.0, 1e-9))

		lq, err := k.Lq(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(lq).To(BeNumerically("~", 0.0, 1e-9))
	})

	It("rejects Release for a token that holds nothing", func() {
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		err = k.Release(f, StringToken("nobody"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a facility with zero or negative servers", func() {
		_, err := k.Facility("broken", 0)
		Expect(err).To(HaveOccurred())

		_, err = k.Facility("broken", -1)
		Expect(err).To(HaveOccurred())
	})

	It("fires an exported FacilityInfo on Request and Release", func() {
		f, err := k.Facility("server", 2)
		Expect(err).NotTo(HaveOccurred())

		var lastName string
		var lastBusy int
		k.AcceptHook(hookFunc(func(ctx HookCtx) {
			if info, ok := ctx.Item.(FacilityInfo); ok {
				lastName = info.Name
				lastBusy = info.BusyCount
			}
		}))

		_, err = k.Request(f, IntToken(1), 0)
		Expect(err).NotTo(HaveOccurred())

		Expect(lastName).To(Equal("server"))
		Expect(lastBusy).To(Equal(1))

		Expect(k.Release(f, IntToken(1))).To(Succeed())

		Expect(lastName).To(Equal("server"))
		Expect(lastBusy).To(Equal(0))
	})
})
