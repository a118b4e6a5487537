package kernel

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Error", func() {
	It("unwraps InvalidArgument to the package sentinel", func() {
		k := New()
		err := k.Schedule(1, -1, IntToken(1))

		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
		Expect(errors.Is(err, ErrInvalidState)).To(BeFalse())

		var kernelErr *Error
		Expect(errors.As(err, &kernelErr)).To(BeTrue())
		Expect(kernelErr.Kind).To(Equal(InvalidArgument))
	})

	It("unwraps InvalidState to the package sentinel", func() {
		k := New()
		Expect(k.Init("errors model")).To(Succeed())
		f, err := k.Facility("server", 1)
		Expect(err).NotTo(HaveOccurred())

		err = k.Release(f, StringToken("nobody"))

		Expect(errors.Is(err, ErrInvalidState)).To(BeTrue())
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeFalse())
	})
})
