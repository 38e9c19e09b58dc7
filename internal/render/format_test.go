package render_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/feed-dashboard/internal/render"
)

var _ = Describe("Formatting", func() {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	DescribeTable("RelativeLabel",
		func(age time.Duration, expected string) {
			Expect(render.RelativeLabel(now, now.Add(-age))).To(Equal(expected))
		},
		Entry("zero age", time.Duration(0), "Just now"),
		Entry("59.999s", 59*time.Second+999*time.Millisecond, "Just now"),
		Entry("exactly 60s", 60*time.Second, "1 minute ago"),
		Entry("119s", 119*time.Second, "1 minute ago"),
		Entry("exactly 120s", 120*time.Second, "2 minutes ago"),
		Entry("179s", 179*time.Second, "2 minutes ago"),
		Entry("one hour", time.Hour, "60 minutes ago"),
		Entry("future timestamp", -30*time.Second, "Just now"),
	)

	DescribeTable("MinutesAgo",
		func(age time.Duration, expected int64) {
			Expect(render.MinutesAgo(now, now.Add(-age))).To(Equal(expected))
		},
		Entry("under a minute", 30*time.Second, int64(0)),
		Entry("four and a half minutes", 270*time.Second, int64(4)),
		Entry("half a minute in the future", -30*time.Second, int64(-1)),
	)

	DescribeTable("IsNew",
		func(age time.Duration, expected bool) {
			Expect(render.IsNew(now, now.Add(-age))).To(Equal(expected))
		},
		Entry("just posted", time.Duration(0), true),
		Entry("299.999s", 300*time.Second-time.Millisecond, true),
		Entry("exactly 300s", 300*time.Second, false),
		Entry("ten minutes", 10*time.Minute, false),
		Entry("future timestamp", -time.Minute, true),
	)

	DescribeTable("AbbreviateFollowers",
		func(count int64, expected string) {
			Expect(render.AbbreviateFollowers(count)).To(Equal(expected))
		},
		Entry("zero", int64(0), "0"),
		Entry("999", int64(999), "999"),
		Entry("1000", int64(1000), "1.0K"),
		Entry("2500", int64(2500), "2.5K"),
		Entry("999999", int64(999_999), "1000.0K"),
		Entry("1000000", int64(1_000_000), "1.0M"),
		Entry("1234567", int64(1_234_567), "1.2M"),
		Entry("1500000", int64(1_500_000), "1.5M"),
	)

	It("VerifiedClass maps to two colours", func() {
		Expect(render.VerifiedClass(true)).To(Equal("bg-green-500"))
		Expect(render.VerifiedClass(false)).To(Equal("bg-red-500"))
	})

	It("CountLabel repeats the count", func() {
		Expect(render.CountLabel(0)).To(Equal("Showing 0 of 0 tweets (max 100)"))
		Expect(render.CountLabel(37)).To(Equal("Showing 37 of 37 tweets (max 100)"))
	})
})
