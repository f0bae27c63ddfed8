package transit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

var fixedNow = time.Date(2016, 12, 7, 9, 0, 0, 0, time.UTC)

func text(s, lang string) *gtfs.TranslatedString {
	return &gtfs.TranslatedString{
		Translation: []*gtfs.TranslatedString_Translation{
			{Text: proto.String(s), Language: proto.String(lang)},
		},
	}
}

func alertEntity(id, header string, routes []string, periods ...*gtfs.TimeRange) *gtfs.FeedEntity {
	var informed []*gtfs.EntitySelector
	for _, r := range routes {
		informed = append(informed, &gtfs.EntitySelector{RouteId: proto.String(r)})
	}
	return &gtfs.FeedEntity{
		Id: proto.String(id),
		Alert: &gtfs.Alert{
			ActivePeriod:    periods,
			InformedEntity:  informed,
			HeaderText:      text(header, "en"),
			DescriptionText: text(header+" details", "en"),
		},
	}
}

func span(from, to time.Time) *gtfs.TimeRange {
	r := &gtfs.TimeRange{Start: proto.Uint64(uint64(from.Unix()))}
	if !to.IsZero() {
		r.End = proto.Uint64(uint64(to.Unix()))
	}
	return r
}

func testFeed() *gtfs.FeedMessage {
	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(uint64(fixedNow.Unix())),
		},
		Entity: []*gtfs.FeedEntity{
			alertEntity("ace-signal", "A C E trains delayed", []string{"A", "C", "E", "A"}),
			alertEntity("l-weekend", "No L service", []string{"L"}, span(fixedNow.Add(-time.Hour), time.Time{})),
			alertEntity("g-expired", "G trains rerouted", []string{"G"}, span(fixedNow.Add(-48*time.Hour), fixedNow.Add(-24*time.Hour))),
			alertEntity("7-future", "7 trains express", []string{"7"}, span(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour))),
			{Id: proto.String("trip-update"), TripUpdate: &gtfs.TripUpdate{Trip: &gtfs.TripDescriptor{RouteId: proto.String("A")}}},
			{Id: proto.String("blank"), Alert: &gtfs.Alert{InformedEntity: []*gtfs.EntitySelector{{RouteId: proto.String("S")}}}},
		},
	}
}

func feedServer(t *testing.T, hits *atomic.Int32, status int) *httptest.Server {
	t.Helper()
	body, err := proto.Marshal(testFeed())
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/x-protobuf")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newService(t *testing.T, url string) *AlertService {
	t.Helper()
	svc := NewAlertService(url, 2*time.Second, time.Minute)
	svc.now = func() time.Time { return fixedNow }
	t.Cleanup(svc.Close)
	return svc
}

func TestParseAlerts(t *testing.T) {
	alerts := parseAlerts(testFeed(), fixedNow)

	ids := map[string]ServiceAlert{}
	for _, a := range alerts {
		ids[a.ID] = a
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts (%v), want 2", len(alerts), ids)
	}

	ace, ok := ids["ace-signal"]
	if !ok {
		t.Fatal("missing ace-signal alert")
	}
	if len(ace.Routes) != 3 {
		t.Errorf("routes = %v, want deduplicated A C E", ace.Routes)
	}
	if ace.Description != "A C E trains delayed details" {
		t.Errorf("description = %q", ace.Description)
	}
	if _, ok := ids["l-weekend"]; !ok {
		t.Error("open-ended alert should be active")
	}
}

func TestTranslatedTextFallback(t *testing.T) {
	ts := &gtfs.TranslatedString{
		Translation: []*gtfs.TranslatedString_Translation{
			{Text: proto.String("Retrasos"), Language: proto.String("es")},
		},
	}
	if got := translatedText(ts); got != "Retrasos" {
		t.Errorf("translatedText = %q", got)
	}
	if translatedText(nil) != "" {
		t.Error("nil translation should be empty")
	}
}

func TestGetAlertsFiltersAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := feedServer(t, &hits, http.StatusOK)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	all, err := svc.GetAlerts(ctx, nil)
	if err != nil {
		t.Fatalf("GetAlerts: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d alerts, want 2", len(all))
	}

	lineL, err := svc.GetAlerts(ctx, []string{"l"})
	if err != nil {
		t.Fatal(err)
	}
	if len(lineL) != 1 || lineL[0].ID != "l-weekend" {
		t.Errorf("L alerts = %+v", lineL)
	}

	none, err := svc.GetAlerts(ctx, []string{"G"})
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("G alerts = %#v, want empty slice", none)
	}

	if n := hits.Load(); n != 1 {
		t.Errorf("feed fetched %d times, want 1", n)
	}
}

func TestGetAlertsErrors(t *testing.T) {
	ctx := context.Background()

	disabled := newService(t, "")
	if disabled.Enabled() {
		t.Error("service without URL should be disabled")
	}
	if _, err := disabled.GetAlerts(ctx, nil); !errors.Is(err, ErrAlertsDisabled) {
		t.Errorf("err = %v, want ErrAlertsDisabled", err)
	}

	srv := feedServer(t, nil, http.StatusServiceUnavailable)
	if _, err := newService(t, srv.URL).GetAlerts(ctx, nil); err == nil {
		t.Error("expected error for 503 feed")
	}

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xff, 0xff})
	}))
	defer garbage.Close()
	if _, err := newService(t, garbage.URL).GetAlerts(ctx, nil); err == nil {
		t.Error("expected error for malformed protobuf")
	}
}
