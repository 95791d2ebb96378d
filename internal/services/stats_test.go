package services

import (
	"context"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeStats is an in-memory stand-in for the users collection. It interprets
// the same $inc/$set documents ApplyAward builds, guarded by a mutex the way
// MongoDB serializes single-document updates.
type fakeStats struct {
	mu     sync.Mutex
	points map[string]int64
	waste  map[string]float64
	meals  map[string]float64
}

func newFakeStats(uids ...string) *fakeStats {
	f := &fakeStats{
		points: make(map[string]int64),
		waste:  make(map[string]float64),
		meals:  make(map[string]float64),
	}
	for _, uid := range uids {
		f.points[uid] = 0
	}
	return f
}

func (f *fakeStats) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	uid := filter.(bson.M)["uid"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.points[uid]; !ok {
		return &mongo.UpdateResult{MatchedCount: 0}, nil
	}

	inc := update.(bson.M)["$inc"].(bson.M)
	if v, ok := inc["eco_points"]; ok {
		f.points[uid] += v.(int64)
	}
	if v, ok := inc["waste_recycled"]; ok {
		f.waste[uid] += v.(float64)
	}
	if v, ok := inc["meals_rescued"]; ok {
		f.meals[uid] += v.(float64)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func TestApplyAwardIncrements(t *testing.T) {
	fake := newFakeStats("user-1")
	svc := NewStatsService(fake)

	if err := svc.ApplyAward(context.Background(), "user-1", Award{EcoPoints: 60, WasteKg: 3.0}); err != nil {
		t.Fatalf("ApplyAward: %v", err)
	}
	if err := svc.ApplyAward(context.Background(), "user-1", Award{EcoPoints: 20, MealsUnits: 4}); err != nil {
		t.Fatalf("ApplyAward: %v", err)
	}

	if got := fake.points["user-1"]; got != 80 {
		t.Fatalf("eco_points = %d, want 80", got)
	}
	if got := fake.waste["user-1"]; got != 3.0 {
		t.Fatalf("waste_recycled = %v, want 3.0", got)
	}
	if got := fake.meals["user-1"]; got != 4.0 {
		t.Fatalf("meals_rescued = %v, want 4.0", got)
	}
}

func TestApplyAwardUserNotFound(t *testing.T) {
	svc := NewStatsService(newFakeStats("someone-else"))

	err := svc.ApplyAward(context.Background(), "missing", Award{EcoPoints: 10})
	if err != ErrUserNotFound {
		t.Fatalf("ApplyAward error = %v, want ErrUserNotFound", err)
	}
}

// Awards are not idempotent: applying the same award twice doubles the stats.
func TestApplyAwardNotIdempotent(t *testing.T) {
	fake := newFakeStats("user-1")
	svc := NewStatsService(fake)

	award := Award{EcoPoints: 38, WasteKg: 2.5}
	for i := 0; i < 2; i++ {
		if err := svc.ApplyAward(context.Background(), "user-1", award); err != nil {
			t.Fatalf("ApplyAward: %v", err)
		}
	}

	if got := fake.points["user-1"]; got != 76 {
		t.Fatalf("eco_points = %d, want 76", got)
	}
}

// Two concurrent submissions for the same user must both be reflected
// (lost-update check from the submission flow: awards 10 and 15 on an
// initially zero profile must end at 25).
func TestApplyAwardConcurrent(t *testing.T) {
	fake := newFakeStats("user-1")
	svc := NewStatsService(fake)

	var wg sync.WaitGroup
	for _, pts := range []int{10, 15} {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			if err := svc.ApplyAward(context.Background(), "user-1", Award{EcoPoints: p}); err != nil {
				t.Errorf("ApplyAward(%d): %v", p, err)
			}
		}(pts)
	}
	wg.Wait()

	if got := fake.points["user-1"]; got != 25 {
		t.Fatalf("eco_points = %d, want 25", got)
	}
}

// Stress version: N concurrent awards of 1 point each must sum exactly.
func TestApplyAwardConcurrentStress(t *testing.T) {
	fake := newFakeStats("user-1")
	svc := NewStatsService(fake)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.ApplyAward(context.Background(), "user-1", Award{EcoPoints: 1, WasteKg: 0.5}); err != nil {
				t.Errorf("ApplyAward: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := fake.points["user-1"]; got != n {
		t.Fatalf("eco_points = %d, want %d", got, n)
	}
	if got := fake.waste["user-1"]; got != n*0.5 {
		t.Fatalf("waste_recycled = %v, want %v", got, n*0.5)
	}
}
