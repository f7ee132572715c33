package federation_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/cubestand/internal/adapters/federation"
	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newFederationServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/persons/2009ZEMD01.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "cubestand-test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = io.WriteString(w, `{"name":"Feliks Zemdegs","country":"AU","rank":{"singles":[{"eventId":"333","best":424,"rank":{"world":12}}]}}`)
	})
	mux.HandleFunc("/persons/BROKEN.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"name":`)
	})
	mux.HandleFunc("/persons/DOWN.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/persons/2009ZEMD01", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"person":{"avatar":{"url":"https://img.example/f.jpg","is_default":false}}}`)
	})
	mux.HandleFunc("/persons/DEFAULT", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"person":{"avatar":{"url":"https://img.example/missing.png","is_default":true}}}`)
	})
	mux.HandleFunc("/rank/world/single/333.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"total":215000,"items":[]}`)
	})
	mux.HandleFunc("/rank/au/average/333.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"pagination":{"page":1,"total":4100}}`)
	})
	mux.HandleFunc("/rank/europe/single/333.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"items":[]}`)
	})
	mux.HandleFunc("/rank/slow/single/333.json", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = io.WriteString(w, `{"total":1}`)
	})
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	Convey("Given a federation client against a fake federation", t, func() {
		srv := newFederationServer(t)
		defer srv.Close()

		client := federation.New(srv.URL+"/", federation.WithUserAgent("cubestand-test"))
		ctx := context.Background()

		Convey("When fetching a known competitor", func() {
			raw, err := client.Competitor(ctx, "2009ZEMD01")

			Convey("Then the payload is decoded and the id filled in", func() {
				So(err, ShouldBeNil)
				So(raw.ID, ShouldEqual, "2009ZEMD01")
				So(raw.Name, ShouldEqual, "Feliks Zemdegs")
				So(raw.Rank.Singles, ShouldHaveLength, 1)
			})
		})

		Convey("When fetching an unknown competitor", func() {
			_, err := client.Competitor(ctx, "2000NONE01")

			Convey("Then ErrCompetitorNotFound is returned", func() {
				So(errors.Is(err, federation.ErrCompetitorNotFound), ShouldBeTrue)
			})
		})

		Convey("When the competitor payload is malformed", func() {
			_, err := client.Competitor(ctx, "BROKEN")

			Convey("Then ErrInvalidPayload is returned", func() {
				So(errors.Is(err, record.ErrInvalidPayload), ShouldBeTrue)
			})
		})

		Convey("When the federation is unavailable", func() {
			_, err := client.Competitor(ctx, "DOWN")

			Convey("Then ErrUpstream is returned", func() {
				So(errors.Is(err, federation.ErrUpstream), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "status=503")
			})
		})

		Convey("When looking up avatars", func() {
			avatar, err := client.Avatar(ctx, "2009ZEMD01")
			defaultAvatar, defaultErr := client.Avatar(ctx, "DEFAULT")
			missing, missingErr := client.Avatar(ctx, "NOBODY")

			Convey("Then real avatars are returned and defaults or misses are nil", func() {
				So(err, ShouldBeNil)
				So(avatar, ShouldResemble, &record.RawAvatar{URL: "https://img.example/f.jpg"})
				So(defaultErr, ShouldBeNil)
				So(defaultAvatar, ShouldBeNil)
				So(missingErr, ShouldBeNil)
				So(missing, ShouldBeNil)
			})
		})

		Convey("When looking up leaderboard totals", func() {
			world, worldErr := client.LeaderboardTotal(ctx, record.LeaderboardKey{Scope: "world", Discipline: record.Single, Event: "333"})
			national, nationalErr := client.LeaderboardTotal(ctx, record.LeaderboardKey{Scope: "au", Discipline: record.Average, Event: "333"})

			Convey("Then both response shapes are understood", func() {
				So(worldErr, ShouldBeNil)
				So(world, ShouldEqual, 215000)
				So(nationalErr, ShouldBeNil)
				So(national, ShouldEqual, 4100)
			})
		})

		Convey("When a leaderboard has no total", func() {
			_, err := client.LeaderboardTotal(ctx, record.LeaderboardKey{Scope: "europe", Discipline: record.Single, Event: "333"})

			Convey("Then ErrUpstream is returned", func() {
				So(errors.Is(err, federation.ErrUpstream), ShouldBeTrue)
			})
		})

		Convey("When a leaderboard does not exist", func() {
			_, err := client.LeaderboardTotal(ctx, record.LeaderboardKey{Scope: "zz", Discipline: record.Single, Event: "333"})

			Convey("Then ErrLeaderboardNotFound is returned", func() {
				So(errors.Is(err, federation.ErrLeaderboardNotFound), ShouldBeTrue)
			})
		})

		Convey("When a response exceeds the body limit", func() {
			capped := federation.New(srv.URL, federation.WithUserAgent("cubestand-test"), federation.WithMaxBodyBytes(32))
			_, err := capped.Competitor(ctx, "2009ZEMD01")

			Convey("Then it fails instead of decoding a truncated body", func() {
				So(errors.Is(err, federation.ErrUpstream), ShouldBeTrue)
				So(errors.Is(err, record.ErrInvalidPayload), ShouldBeFalse)
				So(err.Error(), ShouldContainSubstring, "response too large")
			})
		})

		Convey("When the request outlives the timeout", func() {
			slow := federation.New(srv.URL, federation.WithTimeout(20*time.Millisecond))
			_, err := slow.LeaderboardTotal(ctx, record.LeaderboardKey{Scope: "slow", Discipline: record.Single, Event: "333"})

			Convey("Then it fails as an upstream error", func() {
				So(errors.Is(err, federation.ErrUpstream), ShouldBeTrue)
			})
		})
	})
}
