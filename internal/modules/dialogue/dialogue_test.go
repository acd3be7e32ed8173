// README: End-to-end dialogue tests over in-memory collaborators.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"foodiespot/internal/metrics"
	"foodiespot/internal/modules/booking"
	"foodiespot/internal/modules/catalog"
	"foodiespot/internal/modules/extract"
	"foodiespot/internal/modules/intent"
	"foodiespot/internal/modules/session"
	"foodiespot/internal/types"
)

type harness struct {
	orch     *Orchestrator
	sessions *session.Store
	bookings *booking.Service
	metrics  *metrics.Metrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat := catalog.Default()
	store := session.NewStore(session.NewMemoryRepository())
	engine := booking.NewService(cat, booking.NewMemoryStore(), nil)
	m := metrics.New(prometheus.NewRegistry())
	orch := NewOrchestrator(
		store,
		intent.NewRuleClassifier(intent.DefaultRules(cat.Names())),
		extract.New(cat.Names()),
		engine,
		cat,
		m,
		nil,
	)
	return &harness{orch: orch, sessions: store, bookings: engine, metrics: m}
}

func (h *harness) say(t *testing.T, sessionID, msg string) *Reply {
	t.Helper()
	r, err := h.orch.Process(context.Background(), msg, sessionID)
	if err != nil {
		t.Fatalf("Process(%q): %v", msg, err)
	}
	return r
}

func (h *harness) session(t *testing.T, id string) *session.Session {
	t.Helper()
	s, err := h.sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session %s: %v", id, err)
	}
	return s
}

func TestSingleTurnBooking(t *testing.T) {
	h := newHarness(t)
	r := h.say(t, "s1", "Book table for 4 at Ocean View tomorrow 7PM")

	if r.Data == nil || r.Data.BookingID == "" {
		t.Fatalf("expected a booking id, got %+v", r)
	}
	if r.Intent != intent.BookReservation {
		t.Fatalf("intent = %s", r.Intent)
	}
	if !strings.Contains(r.Response, "Booking Confirmed") {
		t.Fatalf("response = %q", r.Response)
	}

	b, err := h.bookings.Get(context.Background(), types.ID(r.Data.BookingID))
	if err != nil {
		t.Fatalf("booking not registered: %v", err)
	}
	want := booking.Booking{ID: b.ID, RestaurantName: "Ocean View", Date: "tomorrow", Time: "19:00", PartySize: 4, Status: booking.StatusConfirmed, CreatedAt: b.CreatedAt}
	if *b != want {
		t.Fatalf("booking = %+v", b)
	}

	s := h.session(t, "s1")
	if s.State != types.StateInitial || !s.Booking.Empty() {
		t.Fatalf("after commit: state=%s booking=%+v", s.State, s.Booking)
	}
	if s.LastSuccessful == nil || s.LastSuccessful.Time != "19:00" {
		t.Fatalf("snapshot = %+v", s.LastSuccessful)
	}
	if got := testutil.ToFloat64(h.metrics.CommitsTotal.WithLabelValues("confirmed")); got != 1 {
		t.Fatalf("confirmed commits = %v", got)
	}
}

func TestBookingRequestWithoutDetails(t *testing.T) {
	h := newHarness(t)
	r := h.say(t, "s2", "I want to book a table")

	if r.Data != nil {
		t.Fatal("no booking expected")
	}
	for _, f := range []string{"restaurant", "date", "time", "party size"} {
		if !strings.Contains(r.Response, f) {
			t.Errorf("response %q does not ask for %s", r.Response, f)
		}
	}
	if s := h.session(t, "s2"); s.State != types.StateGatheringInfo {
		t.Fatalf("state = %s, want gathering_info", s.State)
	}
	if n := testutil.CollectAndCount(h.metrics.CommitsTotal); n != 0 {
		t.Fatalf("no commit should be attempted, got %d series", n)
	}
}

func TestChangeTimeAfterBooking(t *testing.T) {
	h := newHarness(t)
	first := h.say(t, "s3", "Book table for 4 at Ocean View tomorrow 7PM")
	if first.Data == nil {
		t.Fatalf("first booking failed: %s", first.Response)
	}

	r := h.say(t, "s3", "And change the time to 8PM")
	if r.Intent != intent.ModifyBooking {
		t.Fatalf("intent = %s", r.Intent)
	}
	if r.Data == nil || r.Data.BookingID == "" || r.Data.BookingID == first.Data.BookingID {
		t.Fatalf("expected a new booking id, got %+v (%s)", r.Data, r.Response)
	}
	b, _ := h.bookings.Get(context.Background(), types.ID(r.Data.BookingID))
	if b.RestaurantName != "Ocean View" || b.Date != "tomorrow" || b.Time != "20:00" || b.PartySize != 4 {
		t.Fatalf("modified booking = %+v", b)
	}
}

func TestChangeTimeToUnofferedSlot(t *testing.T) {
	h := newHarness(t)
	h.say(t, "s4", "Book table for 4 at Ocean View tomorrow 7PM")

	r := h.say(t, "s4", "change the time to 9pm")
	if r.Data != nil {
		t.Fatal("21:00 is not an Ocean View slot")
	}
	if !strings.HasPrefix(r.Response, "Got it! I've updated your booking. Now I have: Restaurant: Ocean View, Date: tomorrow, Time: 21:00, Party size: 4") {
		t.Fatalf("response = %q", r.Response)
	}
	if !strings.Contains(r.Response, "Available times: 17:00, 18:00, 19:00, 20:00") {
		t.Fatalf("response should list slots: %q", r.Response)
	}
	if s := h.session(t, "s4"); s.State != types.StateModifying {
		t.Fatalf("state = %s, want modifying", s.State)
	}

	r = h.say(t, "s4", "make it 8pm instead")
	if r.Data == nil {
		t.Fatalf("expected booking after fixing time: %s", r.Response)
	}
}

func TestModificationScopesToOneField(t *testing.T) {
	h := newHarness(t)
	h.say(t, "s5", "Book table for 4 at Ocean View tomorrow 7PM")

	r := h.say(t, "s5", "actually make it 6 people")
	if r.Data == nil {
		t.Fatalf("expected booking: %s", r.Response)
	}
	b, _ := h.bookings.Get(context.Background(), types.ID(r.Data.BookingID))
	if b.RestaurantName != "Ocean View" || b.Date != "tomorrow" || b.Time != "19:00" || b.PartySize != 6 {
		t.Fatalf("booking = %+v", b)
	}
}

func TestDifferentTimeRestoresLastBooking(t *testing.T) {
	h := newHarness(t)
	h.say(t, "s13", "Book table for 4 at Ocean View tomorrow 7PM")

	r := h.say(t, "s13", "a different time please, 8pm")
	if r.Intent != intent.ModifyBooking {
		t.Fatalf("intent = %s", r.Intent)
	}
	if r.Data == nil {
		t.Fatalf("expected booking: %s", r.Response)
	}
	b, _ := h.bookings.Get(context.Background(), types.ID(r.Data.BookingID))
	if b.RestaurantName != "Ocean View" || b.Date != "tomorrow" || b.Time != "20:00" || b.PartySize != 4 {
		t.Fatalf("booking = %+v", b)
	}
}

func TestAmbiguousModificationAsksForClarification(t *testing.T) {
	h := newHarness(t)
	h.say(t, "s6", "I want to book a table at Zen Garden")
	before := h.session(t, "s6")

	r := h.say(t, "s6", "actually, hmm")
	if r.Response != clarifyModification {
		t.Fatalf("response = %q", r.Response)
	}
	after := h.session(t, "s6")
	if after.Booking != before.Booking || after.State != before.State {
		t.Fatalf("session changed: %+v/%s -> %+v/%s", before.Booking, before.State, after.Booking, after.State)
	}
}

func TestMultiTurnGathering(t *testing.T) {
	h := newHarness(t)
	steps := []struct {
		msg      string
		intent   intent.Intent
		contains string
	}{
		{"I'd like to book a table", intent.BookReservation, "I still need the restaurant, date, time and party size."},
		{"Spice Garden", intent.ProvideInfo, "Great! I have: Restaurant: Spice Garden"},
		{"tomorrow at 7:30pm", intent.ProvideInfo, "How many people will be dining?"},
		{"ok", intent.ConfirmBooking, "How many people will be dining?"},
		{"hmm", intent.ContinueBooking, "How many people will be dining?"},
		{"3", intent.ProvideInfo, "Booking Confirmed"},
	}
	var last *Reply
	for _, st := range steps {
		last = h.say(t, "s7", st.msg)
		if last.Intent != st.intent {
			t.Fatalf("%q: intent = %s, want %s", st.msg, last.Intent, st.intent)
		}
		if !strings.Contains(last.Response, st.contains) {
			t.Fatalf("%q: response %q does not contain %q", st.msg, last.Response, st.contains)
		}
	}
	if last.Data == nil {
		t.Fatal("expected booking id on final turn")
	}

	s := h.session(t, "s7")
	if len(s.History) != 2*len(steps) {
		t.Fatalf("history = %d entries, want %d", len(s.History), 2*len(steps))
	}
	if s.History[0].Role != session.RoleUser || s.History[1].Role != session.RoleAssistant {
		t.Fatalf("history roles = %s, %s", s.History[0].Role, s.History[1].Role)
	}
	if s.LastIntent != string(intent.ProvideInfo) {
		t.Fatalf("last intent = %s", s.LastIntent)
	}
}

func TestOverCapacityRejected(t *testing.T) {
	cat, err := catalog.New([]catalog.Restaurant{{ID: 1, Name: "Tiny Cafe", Cuisine: "Cafe", Location: "Harbor", Capacity: 2, AvailableTimes: []string{"09:00"}}})
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewStore(session.NewMemoryRepository())
	engine := booking.NewService(cat, booking.NewMemoryStore(), nil)
	orch := NewOrchestrator(store, intent.NewRuleClassifier(intent.DefaultRules(cat.Names())),
		extract.New(cat.Names()), engine, cat, nil, nil)

	r, err := orch.Process(context.Background(), "book a table for 4 at tiny cafe today 9am", "cap")
	if err != nil {
		t.Fatal(err)
	}
	if r.Data != nil {
		t.Fatal("over-capacity booking must not get an id")
	}
	if !strings.Contains(r.Response, "can accommodate up to 2 people") {
		t.Fatalf("response = %q", r.Response)
	}
}

// Informational intents outside an active gathering state leave the booking alone.
func TestInformationalIntentsDoNotMutateBooking(t *testing.T) {
	h := newHarness(t)
	r := h.say(t, "s11", "book a table for 2 at Ocean View today 6pm")
	if r.Data == nil {
		t.Fatalf("expected booking: %s", r.Response)
	}
	before := h.session(t, "s11")
	if before.State != types.StateInitial || before.LastSuccessful == nil {
		t.Fatalf("after commit: state=%s snapshot=%+v", before.State, before.LastSuccessful)
	}

	r = h.say(t, "s11", "can you recommend something italian")
	if r.Intent != intent.GetRecommendations || !strings.Contains(r.Response, "The Golden Spoon") {
		t.Fatalf("recommendation = %s %q", r.Intent, r.Response)
	}
	r = h.say(t, "s11", "is Taco Libre available at 9pm")
	if r.Intent != intent.CheckAvailability || !strings.Contains(r.Response, "Yes, Taco Libre has tables at 21:00") {
		t.Fatalf("availability = %s %q", r.Intent, r.Response)
	}
	r = h.say(t, "s11", "hello")
	if r.Intent != intent.GeneralInquiry || r.Response != generalReply {
		t.Fatalf("general = %s %q", r.Intent, r.Response)
	}

	after := h.session(t, "s11")
	if after.State != types.StateInitial || !after.Booking.Empty() || *after.LastSuccessful != *before.LastSuccessful {
		t.Fatalf("session mutated: state=%s booking=%+v snapshot=%+v", after.State, after.Booking, after.LastSuccessful)
	}
}

// After a rejected commit the next short answer is still read as booking information.
func TestRejectedCommitKeepsContext(t *testing.T) {
	h := newHarness(t)
	r := h.say(t, "s12", "Book a table at Ocean View today at 3pm for 4 people")
	if r.Data != nil {
		t.Fatal("15:00 is not an Ocean View slot")
	}
	if !strings.Contains(r.Response, "Available times: 17:00, 18:00, 19:00, 20:00") {
		t.Fatalf("response = %q", r.Response)
	}
	if s := h.session(t, "s12"); s.State != types.StateGatheringInfo {
		t.Fatalf("state = %s, want gathering_info", s.State)
	}

	r = h.say(t, "s12", "tomorrow")
	if r.Intent != intent.ProvideInfo || r.Data != nil {
		t.Fatalf("tomorrow: intent=%s data=%+v", r.Intent, r.Data)
	}
	s := h.session(t, "s12")
	if s.State != types.StateGatheringInfo || s.Booking.Date != "tomorrow" {
		t.Fatalf("after date: state=%s booking=%+v", s.State, s.Booking)
	}

	r = h.say(t, "s12", "6pm")
	if r.Intent != intent.ProvideInfo || r.Data == nil {
		t.Fatalf("6pm: intent=%s response=%q", r.Intent, r.Response)
	}
	b, err := h.bookings.Get(context.Background(), types.ID(r.Data.BookingID))
	if err != nil {
		t.Fatal(err)
	}
	if b.Date != "tomorrow" || b.Time != "18:00" || b.PartySize != 4 {
		t.Fatalf("booking = %+v", b)
	}
}

func TestRecommendationLimit(t *testing.T) {
	h := newHarness(t)
	r := h.say(t, "r1", "recommend a place downtown")
	if !strings.Contains(r.Response, "The Golden Spoon") || !strings.Contains(r.Response, "Taco Libre") {
		t.Fatalf("response = %q", r.Response)
	}
	if n := strings.Count(r.Response, "•"); n > recommendationLimit {
		t.Fatalf("listed %d restaurants", n)
	}
	r = h.say(t, "r2", "can you suggest somewhere")
	if !strings.Contains(r.Response, "What type of cuisine") {
		t.Fatalf("response = %q", r.Response)
	}
}

func TestFollowUp(t *testing.T) {
	tests := []struct {
		missing []types.Field
		want    string
	}{
		{nil, ""},
		{[]types.Field{types.FieldRestaurant}, "Which restaurant would you like to book?"},
		{[]types.Field{types.FieldTime}, "What time works best for you?"},
		{[]types.Field{types.FieldDate, types.FieldPartySize}, "I still need the date and party size."},
		{types.Fields, "I still need the restaurant, date, time and party size."},
	}
	for _, tt := range tests {
		if got := FollowUp(tt.missing); got != tt.want {
			t.Errorf("FollowUp(%v) = %q, want %q", tt.missing, got, tt.want)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	h := newHarness(t)
	if _, err := h.orch.Process(context.Background(), "  ", "s"); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

type failingEngine struct{}

func (failingEngine) AttemptCommit(context.Context, types.BookingSlots) (booking.CommitResult, error) {
	return booking.CommitResult{}, errors.New("registry down")
}

func TestEngineFailureLeavesSessionUnchanged(t *testing.T) {
	cat := catalog.Default()
	store := session.NewStore(session.NewMemoryRepository())
	orch := NewOrchestrator(store, intent.NewRuleClassifier(intent.DefaultRules(cat.Names())),
		extract.New(cat.Names()), failingEngine{}, cat, nil, nil)
	ctx := context.Background()

	if _, err := orch.Process(ctx, "I want to book a table at Farm Table", "f"); err != nil {
		t.Fatal(err)
	}
	if _, err := orch.Process(ctx, "today 7pm for 2 people", "f"); err == nil {
		t.Fatal("expected engine error")
	}
	s, _ := store.Get(ctx, "f")
	if s.Booking != (types.BookingSlots{Restaurant: "Farm Table"}) || len(s.History) != 2 {
		t.Fatalf("failed turn leaked into session: %+v, history=%d", s.Booking, len(s.History))
	}
}

func TestConcurrentTurnsOnOneSession(t *testing.T) {
	h := newHarness(t)
	h.say(t, "c", "I want to book a table at Taco Libre")

	msgs := []string{"today", "9pm", "for 2 people"}
	start := make(chan struct{})
	errs := make(chan error, len(msgs))
	replies := make(chan *Reply, len(msgs))
	var wg sync.WaitGroup
	for _, m := range msgs {
		wg.Add(1)
		go func(msg string) {
			defer wg.Done()
			<-start
			r, err := h.orch.Process(context.Background(), msg, "c")
			errs <- err
			replies <- r
		}(m)
	}
	close(start)
	wg.Wait()
	close(errs)
	close(replies)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	booked := 0
	for r := range replies {
		if r.Data != nil {
			booked++
		}
	}
	if booked != 1 {
		t.Fatalf("expected exactly one booking once all fields arrive, got %d", booked)
	}
	if s := h.session(t, "c"); len(s.History) != 2*(len(msgs)+1) {
		t.Fatalf("history = %d, want %d", len(s.History), 2*(len(msgs)+1))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("iso-%d", n)
			_, _ = h.orch.Process(context.Background(), fmt.Sprintf("table for %d at Farm Table today 12pm", n+1), id)
		}(i)
	}
	wg.Wait()
	for i := 0; i < 10; i++ {
		s := h.session(t, fmt.Sprintf("iso-%d", i))
		if s.LastSuccessful == nil || s.LastSuccessful.PartySize != i+1 {
			t.Fatalf("session %d snapshot = %+v", i, s.LastSuccessful)
		}
	}
}
