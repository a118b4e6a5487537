package kernel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Init RNG stream rotation", func() {
	It("rotates one past whatever stream is currently selected, reproducing S6", func() {
		k := New()

		Expect(k.Init("x")).To(Succeed())

		Expect(k.Rand().SetStream(3)).To(Succeed())
		Expect(k.Rand().Ranf()).To(BeNumerically("~", 355232781.0/2147483647.0, 1e-9))
		Expect(k.Rand().Seed()).To(Equal(int64(355232781)))

		Expect(k.Init("x")).To(Succeed())

		Expect(k.Rand().CurrentStream()).To(Equal(4))
		Expect(k.Rand().Seed()).To(Equal(int64(640830765)))
	})
})
