package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/cubestand/internal/adapters/federation"
	"github.com/okian/cubestand/internal/adapters/http/api"
	service "github.com/okian/cubestand/internal/app"
	"github.com/okian/cubestand/internal/domain/compare"
	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/internal/domain/types"
	"github.com/okian/cubestand/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

type mockDeps struct {
	profiles map[string]types.Profile
	errs     map[string]error
}

func (m *mockDeps) Profile(_ context.Context, id string) (types.Profile, error) {
	if err, ok := m.errs[id]; ok {
		return types.Profile{}, err
	}
	p, ok := m.profiles[id]
	if !ok {
		return types.Profile{}, fmt.Errorf("%w: %s", federation.ErrCompetitorNotFound, id)
	}
	return p, nil
}

func (m *mockDeps) Compare(ctx context.Context, a, b string) (types.Comparison, error) {
	pa, err := m.Profile(ctx, a)
	if err != nil {
		return types.Comparison{}, err
	}
	pb, err := m.Profile(ctx, b)
	if err != nil {
		return types.Comparison{}, err
	}
	return types.Comparison{
		A:      pa,
		B:      pb,
		Fair:   compare.Tally{A: 1, B: 0, Events: []string{"333"}},
		Unfair: compare.Tally{A: 1, B: 2, Events: []string{"333", "222"}},
	}, nil
}

func (m *mockDeps) Events() []types.EventInfo {
	return []types.EventInfo{{Code: "333", Name: "3x3x3 Cube", Order: 1}}
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"profiles": 3}
}

func newTestServer() *httptest.Server {
	deps := &mockDeps{
		profiles: map[string]types.Profile{
			"2009ZEMD01": {ID: "2009ZEMD01", Name: "Feliks Zemdegs"},
			"2012PARK03": {ID: "2012PARK03", Name: "Max Park"},
		},
		errs: map[string]error{
			"bad":        fmt.Errorf("%w: %q", service.ErrInvalidID, "bad"),
			"2020EMPT01": fmt.Errorf("normalizing: %w", record.ErrNoRecordsFound),
			"2020JUNK01": fmt.Errorf("normalizing: %w", record.ErrInvalidPayload),
			"2020DOWN01": fmt.Errorf("%w: status=503", federation.ErrUpstream),
			"2020LOST01": errors.New("connection reset"),
		},
	}

	r := api.NewRouter(api.RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}, Logger: logger.Get()})
	api.NewServer(deps).Register(context.Background(), r)
	return httptest.NewServer(r)
}

func getJSON(url string, v any) (*http.Response, error) {
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestCompetitorRoutes(t *testing.T) {
	Convey("Given an API server", t, func() {
		srv := newTestServer()
		defer srv.Close()

		Convey("When requesting a known competitor", func() {
			var profile types.Profile
			resp, err := getJSON(srv.URL+"/competitors/2009ZEMD01", &profile)

			Convey("Then the profile is returned as JSON", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(profile.Name, ShouldEqual, "Feliks Zemdegs")
			})
		})

		Convey("When comparing two competitors", func() {
			var cmp types.Comparison
			resp, err := getJSON(srv.URL+"/compare/2009ZEMD01/2012PARK03", &cmp)

			Convey("Then both sides and tallies are returned", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(cmp.A.Name, ShouldEqual, "Feliks Zemdegs")
				So(cmp.B.Name, ShouldEqual, "Max Park")
				So(cmp.Unfair.Events, ShouldResemble, []string{"333", "222"})
			})
		})

		Convey("When queries fail", func() {
			cases := []struct {
				path   string
				status int
				code   string
			}{
				{"/competitors/bad", http.StatusBadRequest, api.CodeInvalidID},
				{"/competitors/1999NONE01", http.StatusNotFound, api.CodeNotFound},
				{"/competitors/2020EMPT01", http.StatusNotFound, api.CodeNoRecords},
				{"/competitors/2020JUNK01", http.StatusBadGateway, api.CodeInvalidPayload},
				{"/competitors/2020DOWN01", http.StatusBadGateway, api.CodeUpstream},
				{"/competitors/2020LOST01", http.StatusBadGateway, api.CodeUpstream},
				{"/compare/2009ZEMD01/bad", http.StatusBadRequest, api.CodeInvalidID},
				{"/compare/1999NONE01/2009ZEMD01", http.StatusNotFound, api.CodeNotFound},
			}

			Convey("Then each maps to its status and error code", func() {
				for _, tc := range cases {
					var body errorBody
					resp, err := getJSON(srv.URL+tc.path, &body)
					So(err, ShouldBeNil)
					So(resp.StatusCode, ShouldEqual, tc.status)
					So(body.Code, ShouldEqual, tc.code)
					So(body.Message, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When using a method other than GET", func() {
			resp, err := http.Post(srv.URL+"/competitors/2009ZEMD01", "application/json", nil) //nolint:noctx // test
			if resp != nil {
				defer resp.Body.Close()
			}

			Convey("Then the router rejects it", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

// blockingDeps serves profiles only once the request context ends.
type blockingDeps struct {
	*mockDeps
}

func (blockingDeps) Profile(ctx context.Context, _ string) (types.Profile, error) {
	<-ctx.Done()
	return types.Profile{}, fmt.Errorf("fetching competitor: %w", ctx.Err())
}

func TestQueryDeadline(t *testing.T) {
	Convey("Given a router with a short request timeout and a stalled federation", t, func() {
		r := api.NewRouter(api.RouterOptions{RequestTimeout: 50 * time.Millisecond, Logger: logger.Get()})
		api.NewServer(blockingDeps{&mockDeps{}}).Register(context.Background(), r)

		Convey("When the request deadline passes", func() {
			srv := httptest.NewServer(r)
			defer srv.Close()

			var body errorBody
			resp, err := getJSON(srv.URL+"/competitors/2009ZEMD01", &body)

			Convey("Then a gateway timeout is reported", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusGatewayTimeout)
				So(body.Code, ShouldEqual, api.CodeTimeout)
			})
		})

		Convey("When the client abandons the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			req := httptest.NewRequest(http.MethodGet, "/competitors/2009ZEMD01", nil).WithContext(ctx)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			Convey("Then no upstream error body is written", func() {
				So(rec.Code, ShouldEqual, 499)
				So(rec.Body.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestServiceRoutes(t *testing.T) {
	Convey("Given an API server", t, func() {
		srv := newTestServer()
		defer srv.Close()

		Convey("When requesting the event catalog", func() {
			var body struct {
				Events []types.EventInfo `json:"events"`
				Count  int               `json:"count"`
			}
			resp, err := getJSON(srv.URL+"/events", &body)

			Convey("Then the catalog is listed", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body.Count, ShouldEqual, 1)
				So(body.Events[0].Code, ShouldEqual, "333")
			})
		})

		Convey("When requesting health", func() {
			var body map[string]interface{}
			resp, err := getJSON(srv.URL+"/healthz", &body)

			Convey("Then the service reports ok", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "ok")
			})
		})

		Convey("When requesting stats", func() {
			var body map[string]interface{}
			resp, err := getJSON(srv.URL+"/stats", &body)

			Convey("Then the provider's counters are returned", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["profiles"], ShouldEqual, 3.0)
			})
		})

		Convey("When requesting metrics after some traffic", func() {
			_, _ = getJSON(srv.URL+"/healthz", nil)
			resp, err := http.Get(srv.URL + "/metrics") //nolint:noctx // test
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			Convey("Then the HTTP counters are exposed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, "cubestand_standings_http_requests_total")
			})
		})

		Convey("When a browser sends a CORS preflight", func() {
			req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/events", http.NoBody) //nolint:noctx // test
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the configured origin is allowed", func() {
				So(resp.Header.Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
			})
		})
	})
}
