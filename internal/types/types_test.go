// README: Tests for slot bookkeeping and the dialogue transition table.
package types

import (
	"reflect"
	"testing"
)

func TestBookingSlotsMissing(t *testing.T) {
	b := BookingSlots{Restaurant: "Ocean View", Time: "19:00"}
	want := []Field{FieldDate, FieldPartySize}
	if got := b.Missing(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing() = %v, want %v", got, want)
	}
	if b.Complete() {
		t.Fatal("expected incomplete booking")
	}
	b.Date = "today"
	b.PartySize = 2
	if !b.Complete() {
		t.Fatalf("expected complete booking, missing %v", b.Missing())
	}
}

func TestBookingSlotsSetAndValue(t *testing.T) {
	var b BookingSlots
	if !b.Empty() {
		t.Fatal("zero value should be empty")
	}
	b.Set(FieldPartySize, BookingSlots{PartySize: 6})
	if got := b.Value(FieldPartySize); got != "6" {
		t.Fatalf("Value(party size) = %q, want 6", got)
	}
	if b.Value(FieldTime) != "" {
		t.Fatal("unset field should render empty")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to DialogueState
		want     bool
	}{
		{StateInitial, StateGatheringInfo, true},
		{StateInitial, StateModifying, true},
		{StateGatheringInfo, StateCompleted, true},
		{StateModifying, StateConfirming, true},
		{StateCompleted, StateInitial, true},
		{StateGatheringInfo, StateInitial, true},
		// commit is only reachable from an active booking conversation
		{StateInitial, StateCompleted, false},
		{StateCompleted, StateGatheringInfo, false},
		{StateInitial, StateConfirming, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
