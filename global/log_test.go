package global

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("logWriters", func() {
	It("should open every listed output", func() {
		dir, err := os.MkdirTemp("", "log")
		Expect(err).To(BeNil())
		DeferCleanup(os.RemoveAll, dir)

		writers, err := logWriters("stdout; stderr;" + filepath.Join(dir, "infoflow.log"))
		Expect(err).To(BeNil())
		Expect(writers).To(HaveLen(3))
		Expect(filepath.Join(dir, "infoflow.log")).To(BeARegularFile())
	})

	It("should fall back to stdout", func() {
		writers, err := logWriters("")
		Expect(err).To(BeNil())
		Expect(writers).To(HaveLen(1))
	})

	It("should fail on an unwritable path", func() {
		_, err := logWriters(filepath.Join("/nonexistent", "dir", "x.log"))
		Expect(err).NotTo(BeNil())
	})
})
