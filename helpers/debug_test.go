package helpers_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Troublor/erebus-infoflow/helpers"
)

var _ = Describe("SanityCheck", func() {
	It("should panic with the joined messages", func() {
		Expect(func() {
			helpers.SanityCheck(func() bool { return false }, "extent", "overlaps")
		}).To(PanicWith("extent overlaps"))
		Expect(func() {
			helpers.SanityCheck(func() bool { return true })
		}).NotTo(Panic())
	})

	It("should be silenced by the switch", func() {
		helpers.DoSanityCheck = false
		defer func() { helpers.DoSanityCheck = true }()
		Expect(func() {
			helpers.SanityCheck(func() bool { return false })
		}).NotTo(Panic())
	})
})

var _ = Describe("Overhead", func() {
	It("should only count resumed time", func() {
		o := &helpers.Overhead{}
		Expect(o.Paused()).To(BeTrue())
		time.Sleep(5 * time.Millisecond)
		Expect(o.Time()).To(BeZero())

		o.Resume()
		time.Sleep(5 * time.Millisecond)
		o.Pause()
		counted := o.Time()
		Expect(counted).To(BeNumerically(">=", 5*time.Millisecond))

		time.Sleep(5 * time.Millisecond)
		Expect(o.Time()).To(Equal(counted))

		o.Reset()
		Expect(o.Time()).To(BeZero())
		Expect(o.Spans()).To(BeZero())
	})

	It("should count spans and ignore repeated calls", func() {
		o := &helpers.Overhead{}
		Expect(o.Mean()).To(BeZero())
		for i := 0; i < 3; i++ {
			o.Resume()
			o.Resume()
			time.Sleep(2 * time.Millisecond)
			o.Pause()
			o.Pause()
		}
		Expect(o.Spans()).To(Equal(3))
		Expect(o.Mean()).To(BeNumerically(">=", 2*time.Millisecond))
		Expect(o.Mean()).To(BeNumerically("<=", o.Time()))
	})

	It("should include a running span", func() {
		o := &helpers.Overhead{}
		o.Resume()
		time.Sleep(2 * time.Millisecond)
		Expect(o.Paused()).To(BeFalse())
		Expect(o.Time()).To(BeNumerically(">=", 2*time.Millisecond))
	})
})
