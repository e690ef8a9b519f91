package global

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cleanup", func() {
	It("should run tasks last registered first, once", func() {
		saved := cleanupTasks
		cleanupTasks = nil
		DeferCleanup(func() { cleanupTasks = saved })

		var order []int
		RegisterCleanupTask(func() { order = append(order, 1) })
		RegisterCleanupTask(func() { order = append(order, 2) })
		Cleanup()
		Cleanup()
		Expect(order).To(Equal([]int{2, 1}))
	})
})
