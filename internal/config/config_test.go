package config_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/okian/cubestand/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 10_000)
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.FetchConcurrency, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a comma-separated origin list", t, func() {
		cfg := config.New()
		cfg.CORSOrigins = " https://a.example , ,https://b.example"

		convey.Convey("Then Origins trims and drops blanks", func() {
			convey.So(cfg.Origins(), convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
		})
	})
}
