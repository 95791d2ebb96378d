package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// overlapConn counts how many writers are inside WriteJSON at once. The
// connection contract allows only one concurrent writer, so inFlight must
// never exceed 1.
type overlapConn struct {
	inFlight   int32
	maxFlight  int32
	totalCalls int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	n := atomic.AddInt32(&c.inFlight, 1)
	for {
		max := atomic.LoadInt32(&c.maxFlight)
		if n <= max || atomic.CompareAndSwapInt32(&c.maxFlight, max, n) {
			break
		}
	}
	// Hold the write long enough for racing goroutines to pile up.
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.totalCalls, 1)
	return nil
}

func (c *overlapConn) ReadJSON(dest interface{}) error { return nil }
func (c *overlapConn) Close() error                    { return nil }

func waitForCalls(t *testing.T, c *overlapConn, want int32) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&c.totalCalls) < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for writes: got %d, want %d",
				atomic.LoadInt32(&c.totalCalls), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFanOutSerializesConnectionWrites(t *testing.T) {
	conn := &overlapConn{}
	_, unregister := RegisterRoomConnection("user-1", "room-serial", conn)
	defer unregister()

	const events = 50
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			FanOutChatEvent(ChatEvent{Type: "message", RoomID: "room-serial", Message: "hi"})
		}()
	}
	wg.Wait()

	waitForCalls(t, conn, events)

	if max := atomic.LoadInt32(&conn.maxFlight); max > 1 {
		t.Fatalf("observed %d concurrent writers on one connection, want at most 1", max)
	}
}

func TestSendSerializedAgainstFanOut(t *testing.T) {
	conn := &overlapConn{}
	rc, unregister := RegisterRoomConnection("user-2", "room-mixed", conn)
	defer unregister()

	const events = 25
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			FanOutChatEvent(ChatEvent{Type: "message", RoomID: "room-mixed", Message: "hi"})
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			// The read loop's own replies use the same serialized path.
			_ = rc.Send(ChatEvent{Type: "pong"})
		}()
	}
	wg.Wait()

	waitForCalls(t, conn, 2*events)

	if max := atomic.LoadInt32(&conn.maxFlight); max > 1 {
		t.Fatalf("observed %d concurrent writers on one connection, want at most 1", max)
	}
}

func TestFanOutSkipsOtherRooms(t *testing.T) {
	inRoom := &overlapConn{}
	elsewhere := &overlapConn{}

	_, unregisterA := RegisterRoomConnection("user-3", "room-a", inRoom)
	defer unregisterA()
	_, unregisterB := RegisterRoomConnection("user-4", "room-b", elsewhere)
	defer unregisterB()

	FanOutChatEvent(ChatEvent{Type: "message", RoomID: "room-a", Message: "hi"})

	waitForCalls(t, inRoom, 1)
	if got := atomic.LoadInt32(&elsewhere.totalCalls); got != 0 {
		t.Fatalf("connection in another room received %d events, want 0", got)
	}
}
