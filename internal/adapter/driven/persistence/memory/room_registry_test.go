package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Wyydra/yacall/internal/core/domain"
	"github.com/Wyydra/yacall/internal/core/port"
)

var _ port.RoomRegistry = (*RoomRegistry)(nil)

func TestJoinCreatesRoom(t *testing.T) {
	reg := NewRoomRegistry()

	if reg.Exists("r1") {
		t.Fatal("Expected room r1 not to exist before the first join")
	}

	reg.Join("r1", "a")

	if !reg.Exists("r1") {
		t.Fatal("Expected first join to create room r1")
	}
	if !reg.IsMember("r1", "a") {
		t.Error("Expected a to be a member of r1")
	}
	if got := reg.RoomCount(); got != 1 {
		t.Errorf("Expected 1 room, got %d", got)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	reg := NewRoomRegistry()

	reg.Join("r1", "a")
	reg.Join("r1", "a")

	if got := len(reg.Members("r1")); got != 1 {
		t.Errorf("Expected 1 member after joining twice, got %d", got)
	}
	if got := len(reg.RoomsOf("a")); got != 1 {
		t.Errorf("Expected a to be in 1 room, got %d", got)
	}
}

func TestLeaveDropsEmptyRoom(t *testing.T) {
	tests := []struct {
		name    string
		joins   []domain.ConnID
		leaver  domain.ConnID
		wantLen int
		exists  bool
	}{
		{name: "last member", joins: []domain.ConnID{"a"}, leaver: "a", wantLen: 0, exists: false},
		{name: "one of two", joins: []domain.ConnID{"a", "b"}, leaver: "a", wantLen: 1, exists: true},
		{name: "non member", joins: []domain.ConnID{"a"}, leaver: "z", wantLen: 1, exists: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRoomRegistry()
			for _, id := range tt.joins {
				reg.Join("r1", id)
			}

			reg.Leave("r1", tt.leaver)

			if reg.IsMember("r1", tt.leaver) {
				t.Errorf("Expected %s to be gone from r1", tt.leaver)
			}
			if got := len(reg.Members("r1")); got != tt.wantLen {
				t.Errorf("Expected %d members, got %d", tt.wantLen, got)
			}
			if reg.Exists("r1") != tt.exists {
				t.Errorf("Expected Exists=%v, got %v", tt.exists, !tt.exists)
			}
		})
	}
}

func TestLeaveAll(t *testing.T) {
	reg := NewRoomRegistry()
	reg.Join("r1", "a")
	reg.Join("r1", "b")
	reg.Join("r2", "a")

	left := reg.LeaveAll("a")

	if len(left) != 2 {
		t.Fatalf("Expected a to leave 2 rooms, got %d", len(left))
	}
	if reg.Exists("r2") {
		t.Error("Expected r2 to be dropped once empty")
	}
	if !reg.IsMember("r1", "b") {
		t.Error("Expected b to stay in r1")
	}
	if got := len(reg.RoomsOf("a")); got != 0 {
		t.Errorf("Expected a to be in no rooms, got %d", got)
	}
	if got := reg.LeaveAll("a"); len(got) != 0 {
		t.Errorf("Expected second LeaveAll to be a no-op, got %v", got)
	}
}

func TestMembersExcept(t *testing.T) {
	reg := NewRoomRegistry()
	reg.Join("r1", "a")
	reg.Join("r1", "b")

	others := reg.MembersExcept("r1", "a")
	if len(others) != 1 || others[0] != "b" {
		t.Errorf("Expected [b], got %v", others)
	}

	if got := reg.MembersExcept("missing", "a"); len(got) != 0 {
		t.Errorf("Expected no members for a missing room, got %v", got)
	}
}

func TestJoinLeaveSequencesNeverRetainEmptyRooms(t *testing.T) {
	reg := NewRoomRegistry()

	for i := 0; i < 200; i++ {
		room := domain.RoomID(fmt.Sprintf("room-%d", i%7))
		conn := domain.ConnID(fmt.Sprintf("conn-%d", i%5))
		reg.Join(room, conn)
		reg.Leave(room, conn)
		if reg.IsMember(room, conn) {
			t.Fatalf("Expected %s to be gone from %s", conn, room)
		}
	}

	if got := reg.RoomCount(); got != 0 {
		t.Errorf("Expected no rooms to be retained, got %d", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	reg := NewRoomRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn := domain.ConnID(fmt.Sprintf("conn-%d", i))
			reg.Join("shared", conn)
			_ = reg.MembersExcept("shared", conn)
			reg.LeaveAll(conn)
		}(i)
	}
	wg.Wait()

	if reg.Exists("shared") {
		t.Error("Expected shared room to be dropped after everyone left")
	}
}
