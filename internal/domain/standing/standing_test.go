package standing_test

import (
	"testing"

	"github.com/okian/cubestand/internal/domain/standing"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given the best rank on a list of 100", t, func() {
		s := standing.Compute(1, 100)

		Convey("Then the standing is exact", func() {
			So(s.TotalCompetitors, ShouldEqual, 100)
			So(s.Percentile, ShouldEqual, 100.0)
			So(s.PercentDownList, ShouldEqual, 1.0)
			So(s.Ranked, ShouldBeTrue)
		})
	})

	Convey("Given rank 50 of 100", t, func() {
		s := standing.Compute(50, 100)

		Convey("Then percentile is 51 and the list position is 50", func() {
			So(s.PercentDownList, ShouldAlmostEqual, 50.0, 1e-9)
			So(s.Percentile, ShouldAlmostEqual, 51.0, 1e-9)
		})
	})

	Convey("Given the last rank of a list", t, func() {
		s := standing.Compute(10, 10)

		Convey("Then the percentile stays above zero", func() {
			So(s.Percentile, ShouldAlmostEqual, 10.0, 1e-9)
			So(s.PercentDownList, ShouldEqual, 100.0)
		})
	})

	Convey("Given every rank of a list", t, func() {
		const n = 257
		prev := standing.Compute(1, n).Percentile

		Convey("Then percentile never increases and stays in bounds", func() {
			So(prev, ShouldEqual, 100.0)
			for rank := 1; rank <= n; rank++ {
				s := standing.Compute(rank, n)
				So(s.Percentile, ShouldBeLessThanOrEqualTo, prev)
				So(s.Percentile, ShouldBeBetweenOrEqual, 0.0, 100.0)
				So(s.PercentDownList, ShouldBeBetweenOrEqual, 0.0, 100.0)
				prev = s.Percentile
			}
		})
	})

	Convey("Given a rank beyond the list size", t, func() {
		s := standing.Compute(500, 100)

		Convey("Then values are clamped", func() {
			So(s.Percentile, ShouldEqual, 0.0)
			So(s.PercentDownList, ShouldEqual, 100.0)
			So(s.Ranked, ShouldBeTrue)
		})
	})

	Convey("Given non-positive inputs", t, func() {
		Convey("Then the unranked placeholder is returned", func() {
			So(standing.Compute(0, 100), ShouldResemble, standing.Standing{})
			So(standing.Compute(-3, 100), ShouldResemble, standing.Standing{})
			So(standing.Compute(5, 0), ShouldResemble, standing.Standing{})
			So(standing.Compute(5, -1).Ranked, ShouldBeFalse)
		})
	})
}

func TestLabel(t *testing.T) {
	Convey("Given standings across the bands", t, func() {
		So(standing.Compute(1, 100000).Label(), ShouldEqual, "top 0.1%")
		So(standing.Compute(5, 1000).Label(), ShouldEqual, "top 1%")
		So(standing.Compute(5, 100).Label(), ShouldEqual, "top 4.0%")
		So(standing.Compute(50, 100).Label(), ShouldEqual, "top 49.0%")
		So(standing.Standing{Percentile: 99.95}.Label(), ShouldEqual, "top 0.1%")
		So(standing.Standing{Percentile: 99.2}.Label(), ShouldEqual, "top 1%")
	})

	Convey("Given a zero percentile", t, func() {
		So(standing.Standing{}.Label(), ShouldEqual, "ranked")
		So(standing.Compute(500, 100).Label(), ShouldEqual, "ranked")
	})
}
