package collection

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"visitor-pass-console/internal/credential"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func visitorInput(name, date string) model.VisitorInput {
	return model.VisitorInput{FullName: name, CardNumber: "C-" + name, Destination: "Main Office", VisitDate: date, VisitTime: "10:00"}
}

func TestAddAssignsUniqueIdentity(t *testing.T) {
	ctx := context.Background()
	// A frozen clock forces every id to collide on the timestamp.
	visitors := NewVisitors(storage.NewMemoryProvider(), WithClock(fixedClock{testNow}))

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		v := visitors.Add(ctx, visitorInput("V", "2024-05-01"))
		if v.ID == "" {
			t.Fatal("expected a non-empty id")
		}
		if seen[v.ID] {
			t.Fatalf("duplicate id %s", v.ID)
		}
		seen[v.ID] = true

		created, err := model.ParseTimestamp(v.CreatedAt)
		if err != nil {
			t.Fatalf("invalid createdAt %q: %v", v.CreatedAt, err)
		}
		if created.After(testNow) {
			t.Errorf("createdAt %v is after the clock time", created)
		}
	}
}

func TestAddSkipsIdsAlreadyStored(t *testing.T) {
	ctx := context.Background()
	p := storage.NewMemoryProvider()

	first := NewEmployees(p, WithClock(fixedClock{testNow}))
	a := first.Add(ctx, model.EmployeeInput{FullName: "A", Position: "P", Department: "D"})

	// A new process with a fresh generator starts from the same timestamp.
	second := NewEmployees(p, WithClock(fixedClock{testNow}))
	b := second.Add(ctx, model.EmployeeInput{FullName: "B", Position: "P", Department: "D"})

	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both are %s", a.ID)
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	buildings := NewBuildings(storage.NewMemoryProvider())
	buildings.Add(ctx, model.BuildingInput{Name: "HQ", Address: "Main st 1", FloorCount: 3})

	before := buildings.List(ctx)
	name := "Renamed"
	if _, ok := buildings.Update(ctx, "missing", model.BuildingPatch{Name: &name}); ok {
		t.Error("update of a missing id reported success")
	}
	if after := buildings.List(ctx); !reflect.DeepEqual(before, after) {
		t.Errorf("contents changed: %v -> %v", before, after)
	}
}

func TestUpdateIsShallowMerge(t *testing.T) {
	ctx := context.Background()
	buildings := NewBuildings(storage.NewMemoryProvider())
	b := buildings.Add(ctx, model.BuildingInput{Name: "HQ", Address: "Main st 1", FloorCount: 3, Departments: model.Departments{"IT"}})

	floors := 4
	updated, ok := buildings.Update(ctx, b.ID, model.BuildingPatch{FloorCount: &floors})
	if !ok {
		t.Fatal("update failed")
	}
	if updated.FloorCount != 4 || updated.Name != "HQ" || !reflect.DeepEqual(updated.Departments, model.Departments{"IT"}) {
		t.Errorf("unexpected merge result: %+v", updated)
	}
	if updated.ID != b.ID || updated.CreatedAt != b.CreatedAt {
		t.Errorf("identity changed: %+v", updated)
	}
}

func TestDeleteThenNotFound(t *testing.T) {
	ctx := context.Background()
	employees := NewEmployees(storage.NewMemoryProvider())
	e := employees.Add(ctx, model.EmployeeInput{FullName: "Petrova", Position: "Engineer", Department: "R&D"})

	if !employees.Delete(ctx, e.ID) {
		t.Fatal("delete reported no match")
	}
	if _, ok := employees.Find(ctx, e.ID); ok {
		t.Error("deleted record still found")
	}
	if employees.Delete(ctx, e.ID) {
		t.Error("second delete should be a no-op")
	}
}

func TestRoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	p, err := storage.NewFileProvider(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileProvider failed: %v", err)
	}

	buildings := NewBuildings(p)
	buildings.Add(ctx, model.BuildingInput{Name: "HQ", Address: "Main st 1", FloorCount: 3, Departments: model.ParseDepartments("IT, HR")})
	buildings.Add(ctx, model.BuildingInput{Name: "Annex", Address: "Side st 2", FloorCount: 1})
	want := buildings.List(ctx)

	reloaded := NewBuildings(p)
	if got := reloaded.List(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestOperatorsSeedOnce(t *testing.T) {
	ctx := context.Background()
	p := storage.NewMemoryProvider()

	ops := NewOperators(p, credential.Plaintext{})
	if n := ops.Len(ctx); n != 2 {
		t.Fatalf("expected 2 seeded operators, got %d", n)
	}
	admin, ok := ops.Active(ctx, "admin", "admin123")
	if !ok || admin.Role != model.RoleAdmin || !reflect.DeepEqual(admin.Permissions, []string{model.PermissionAll}) {
		t.Errorf("unexpected admin seed: %+v", admin)
	}

	for _, op := range ops.List(ctx) {
		ops.Delete(ctx, op.ID)
	}

	// An emptied slot is not re-seeded.
	again := NewOperators(p, credential.Plaintext{})
	if n := again.Len(ctx); n != 0 {
		t.Errorf("expected no operators after deleting all, got %d", n)
	}
}

func TestOperatorsHashPasswords(t *testing.T) {
	ctx := context.Background()
	ops := NewOperators(storage.NewMemoryProvider(), credential.NewArgon2id())

	for _, op := range ops.List(ctx) {
		if !credential.IsHashed(op.Password) {
			t.Errorf("seed %s stored an unhashed password", op.Username)
		}
	}
	if _, ok := ops.Active(ctx, "operator", "pass123"); !ok {
		t.Error("expected seeded operator to authenticate")
	}

	op, err := ops.Add(ctx, model.OperatorInput{FullName: "Night", Username: "night", Password: "moon", Role: model.RoleOperator, Shift: model.ShiftNight})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if op.Password == "moon" {
		t.Error("expected hashed password")
	}

	password := "sun"
	if _, ok, err := ops.Update(ctx, op.ID, model.OperatorPatch{Password: &password}); err != nil || !ok {
		t.Fatalf("Update failed: ok=%v err=%v", ok, err)
	}
	if _, ok := ops.Active(ctx, "night", "sun"); !ok {
		t.Error("expected new password to authenticate")
	}
	if _, ok := ops.Active(ctx, "night", "moon"); ok {
		t.Error("old password still authenticates")
	}
}

func TestOperatorsInactiveCannotAuthenticate(t *testing.T) {
	ctx := context.Background()
	ops := NewOperators(storage.NewMemoryProvider(), credential.Plaintext{})

	inactive := model.StatusInactive
	ops.Update(ctx, "2", model.OperatorPatch{Status: &inactive})
	if _, ok := ops.Active(ctx, "operator", "pass123"); ok {
		t.Error("inactive operator authenticated")
	}
}

func TestVisitorDecisions(t *testing.T) {
	ctx := context.Background()
	visitors := NewVisitors(storage.NewMemoryProvider())
	v := visitors.Add(ctx, visitorInput("Ivanov", "2024-05-01"))

	if _, err := visitors.Complete(ctx, v.ID); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("completing a pending visitor: expected ErrInvalidTransition, got %v", err)
	}
	approved, err := visitors.Approve(ctx, v.ID)
	if err != nil || approved.Status != model.VisitorApproved {
		t.Fatalf("Approve: %+v, %v", approved, err)
	}
	if _, err := visitors.Deny(ctx, v.ID); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("denying an approved visitor: expected ErrInvalidTransition, got %v", err)
	}
	if done, err := visitors.Complete(ctx, v.ID); err != nil || done.Status != model.VisitorCompleted {
		t.Errorf("Complete: %+v, %v", done, err)
	}
	if _, err := visitors.Approve(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	p := &readOnlyProvider{Provider: storage.NewMemoryProvider()}
	visitors := NewVisitors(p)

	v := visitors.Add(ctx, visitorInput("Ivanov", "2024-05-01"))
	if _, ok := visitors.Find(ctx, v.ID); !ok {
		t.Error("record missing from memory after failed write")
	}
	if _, err := p.Get(ctx, store.KeyVisitors); !errors.Is(err, storage.ErrSlotNotFound) {
		t.Errorf("expected nothing persisted, got %v", err)
	}
}

type readOnlyProvider struct {
	storage.Provider
}

func (readOnlyProvider) Put(ctx context.Context, key string, data []byte) error {
	return errors.New("quota exceeded")
}

func TestBuildingNames(t *testing.T) {
	ctx := context.Background()
	buildings := NewBuildings(storage.NewMemoryProvider())
	buildings.Add(ctx, model.BuildingInput{Name: "HQ", Address: "a", FloorCount: 1})
	buildings.Add(ctx, model.BuildingInput{Name: "Annex", Address: "b", FloorCount: 1})

	if got := buildings.Names(ctx); !reflect.DeepEqual(got, []string{"HQ", "Annex"}) {
		t.Errorf("unexpected names %v", got)
	}
}

func TestOperatorsUsernameTaken(t *testing.T) {
	ctx := context.Background()
	ops := NewOperators(storage.NewMemoryProvider(), credential.Plaintext{})

	if !ops.UsernameTaken(ctx, "admin", "") {
		t.Error("expected seeded admin username to be taken")
	}
	if ops.UsernameTaken(ctx, "admin", "1") {
		t.Error("an operator's own username should not count as taken")
	}
	if ops.UsernameTaken(ctx, "guard", "") {
		t.Error("unused username reported as taken")
	}
}
