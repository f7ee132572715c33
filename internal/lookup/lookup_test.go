package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/cubestand/internal/adapters/federation"
	"github.com/okian/cubestand/internal/domain/compare"
	"github.com/okian/cubestand/internal/domain/standing"
	"github.com/okian/cubestand/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func fakeFederation() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/persons/2009ZEMD01.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"2009ZEMD01","name":"Feliks Zemdegs","country":"AU",
			"rank":{"singles":[{"eventId":"333","best":347,"rank":{"world":3,"continent":1,"country":1}}],
			"averages":[{"eventId":"333","best":521,"rank":{"world":10,"continent":1,"country":1}}]}}`)
	})
	mux.HandleFunc("/persons/2012PARK03.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"2012PARK03","name":"Max Park","country":"US",
			"rank":{"singles":[{"eventId":"333","best":313,"rank":{"world":1,"continent":1,"country":1}},
			{"eventId":"444","best":1938,"rank":{"world":1,"continent":1,"country":1}}]}}`)
	})
	mux.HandleFunc("/rank/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"total":1000}`)
	})
	return httptest.NewServer(mux)
}

func testConfig(url string, out io.Writer) *Config {
	return &Config{
		FederationURL:    url,
		AvatarURL:        url,
		Timeout:          time.Second,
		FetchConcurrency: 4,
		Format:           FormatTable,
		Out:              out,
	}
}

func TestRun(t *testing.T) {
	if err := setupLogging(io.Discard, false); err != nil {
		t.Fatal(err)
	}

	Convey("Given a fake federation", t, func() {
		srv := fakeFederation()
		defer srv.Close()
		var out bytes.Buffer
		cfg := testConfig(srv.URL, &out)
		ctx := context.Background()

		Convey("When looking up one competitor as a table", func() {
			cfg.ID = "2009zemd01"
			err := Run(ctx, cfg)

			Convey("Then the header and one row per discipline are printed", func() {
				So(err, ShouldBeNil)
				text := out.String()
				So(text, ShouldContainSubstring, "Feliks Zemdegs (2009ZEMD01)")
				So(text, ShouldContainSubstring, "🇦🇺 Australia (Oceania)")
				So(text, ShouldContainSubstring, "3x3x3 Cube")
				So(text, ShouldContainSubstring, "3.47")
				So(text, ShouldContainSubstring, "5.21")
				So(text, ShouldContainSubstring, "#3 top 1%")
			})
		})

		Convey("When looking up one competitor as JSON", func() {
			cfg.ID = "2009ZEMD01"
			cfg.Format = FormatJSON
			err := Run(ctx, cfg)

			Convey("Then the output decodes to a profile", func() {
				So(err, ShouldBeNil)
				var p types.Profile
				So(json.Unmarshal(out.Bytes(), &p), ShouldBeNil)
				So(p.Name, ShouldEqual, "Feliks Zemdegs")
				So(p.Events[0].Single.World.TotalCompetitors, ShouldEqual, 1000)
			})
		})

		Convey("When comparing two competitors", func() {
			cfg.ID = "2009ZEMD01"
			cfg.VersusID = "2012PARK03"
			err := Run(ctx, cfg)

			Convey("Then the tallies are printed", func() {
				So(err, ShouldBeNil)
				text := out.String()
				So(text, ShouldContainSubstring, "Max Park")
				So(text, ShouldContainSubstring, "shared events: 3x3x3 Cube")
				So(text, ShouldContainSubstring, "all events:    3x3x3 Cube, 4x4x4 Cube")
			})
		})

		Convey("When the competitor does not exist", func() {
			cfg.ID = "1999NONE01"
			err := Run(ctx, cfg)

			Convey("Then the not-found error is returned", func() {
				So(errors.Is(err, federation.ErrCompetitorNotFound), ShouldBeTrue)
			})
		})

		Convey("When input is incomplete", func() {
			missing := Run(ctx, cfg)
			cfg.ID = "2009ZEMD01"
			cfg.Format = "xml"
			badFormat := Run(ctx, cfg)

			Convey("Then usage errors are returned", func() {
				So(errors.Is(missing, ErrUsage), ShouldBeTrue)
				So(errors.Is(badFormat, ErrUsage), ShouldBeTrue)
			})
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Given an unknown-region profile with an unranked standing", t, func() {
		p := types.Profile{
			ID:      "2015XXXX01",
			Name:    "Nobody Known",
			Country: types.CountryView{Name: "Unknown region", ISO2: "xx"},
			Events: []types.EventView{{
				Code: "333",
				Name: "3x3x3 Cube",
				Single: &types.ResultView{
					Formatted: "12.00",
					World:     types.NewStandingView("world", standing.Compute(500, 1000)),
					Continent: types.NewStandingView("world", standing.Compute(40, 1000)),
					Country:   types.NewStandingView("", standing.Standing{}),
				},
			}},
		}
		var out bytes.Buffer

		Convey("Then the region has no flag and the national cell is a dash", func() {
			So(RenderProfile(&out, p), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Nobody Known (2015XXXX01)\nUnknown region\n")
			So(out.String(), ShouldContainSubstring, "#500 top 49.9%")
			So(out.String(), ShouldEndWith, "-\n")
		})
	})

	Convey("Given a comparison without shared events", t, func() {
		c := types.Comparison{
			A:      types.Profile{Name: "A"},
			B:      types.Profile{Name: "B"},
			Fair:   compare.Tally{Events: []string{}},
			Unfair: compare.Tally{A: 1, B: 1, Events: []string{"333", "mystery"}},
		}
		var out bytes.Buffer

		Convey("Then shared events read none and unknown codes print as-is", func() {
			So(RenderComparison(&out, c), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "shared events: none")
			So(out.String(), ShouldContainSubstring, "3x3x3 Cube, mystery")
		})
	})

	Convey("Given the help text", t, func() {
		var out bytes.Buffer
		ShowHelp(&out)
		So(out.String(), ShouldContainSubstring, "-vs string")
	})
}
