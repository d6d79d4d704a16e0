package domain_test

import (
	"testing"

	"go-circle-api/internal/domain"
)

func testOwner(t *testing.T) domain.Member {
	t.Helper()
	g, err := domain.NewGrade(3)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	m, err := domain.NewMember("John Lennon", 21, g, domain.MajorMusic)
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	return m
}

func testMember(t *testing.T, id int, name string) domain.Member {
	t.Helper()
	return domain.ReconstructMember(domain.MemberID(id), name, 20, domain.Grade(2), domain.MajorArt)
}

func TestNewGrade(t *testing.T) {
	for v := 1; v <= 4; v++ {
		g, err := domain.NewGrade(v)
		if err != nil {
			t.Fatalf("grade %d: %v", v, err)
		}
		if int(g) != v {
			t.Fatalf("grade %d stored as %d", v, g)
		}
	}
	for _, v := range []int{-1, 0, 5, 100} {
		if _, err := domain.NewGrade(v); !domain.IsValidation(err) {
			t.Fatalf("grade %d: expected validation error, got %v", v, err)
		}
	}
}

func TestParseMajor(t *testing.T) {
	m, err := domain.ParseMajor("Music")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m != domain.MajorMusic {
		t.Fatalf("unexpected major: %q", m)
	}
	if _, err := domain.ParseMajor("Basketweaving"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewMember_Invalid(t *testing.T) {
	g, _ := domain.NewGrade(1)
	if _, err := domain.NewMember("", 20, g, domain.MajorLaw); !domain.IsValidation(err) {
		t.Fatalf("empty name: expected validation error, got %v", err)
	}
	if _, err := domain.NewMember("Paul", 0, g, domain.MajorLaw); !domain.IsValidation(err) {
		t.Fatalf("zero age: expected validation error, got %v", err)
	}
}

func TestNewCircle(t *testing.T) {
	owner := testOwner(t)

	c, err := domain.NewCircle("Music club", 10, owner)
	if err != nil {
		t.Fatalf("new circle: %v", err)
	}
	if c.Owner != owner {
		t.Fatalf("owner changed: %+v", c.Owner)
	}
	if len(c.Members) != 0 {
		t.Fatalf("expected no members, got %d", len(c.Members))
	}
	if c.ID.Assigned() {
		t.Fatalf("new circle should not have an id, got %d", c.ID)
	}

	if _, err := domain.NewCircle("Music club", 0, owner); !domain.IsValidation(err) {
		t.Fatalf("capacity 0: expected validation error, got %v", err)
	}
	if _, err := domain.NewCircle("  ", 10, owner); !domain.IsValidation(err) {
		t.Fatalf("blank name: expected validation error, got %v", err)
	}
}

func TestAddMember_CapacityFull(t *testing.T) {
	c, err := domain.NewCircle("Tiny club", 2, testOwner(t))
	if err != nil {
		t.Fatalf("new circle: %v", err)
	}
	if err := c.AddMember(testMember(t, 0, "Paul")); err != nil {
		t.Fatalf("first member should fit: %v", err)
	}
	// owner + 1 member = capacity 2, next one must fail
	if err := c.AddMember(testMember(t, 0, "George")); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(c.Members) != 1 {
		t.Fatalf("failed add must not mutate members, got %d", len(c.Members))
	}
}

func TestCircleUpdate_Partial(t *testing.T) {
	c, _ := domain.NewCircle("Music club", 10, testOwner(t))

	capacity := 20
	if err := c.Update(nil, &capacity); err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.Name != "Music club" {
		t.Fatalf("name must be unchanged, got %q", c.Name)
	}
	if c.Capacity != 20 {
		t.Fatalf("capacity not applied: %d", c.Capacity)
	}

	name := "Football club"
	if err := c.Update(&name, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.Name != "Football club" || c.Capacity != 20 {
		t.Fatalf("unexpected state: %q/%d", c.Name, c.Capacity)
	}
}

func TestCircleUpdate_CapacityBelowHeadcount(t *testing.T) {
	c, _ := domain.NewCircle("Music club", 10, testOwner(t))
	if err := c.AddMember(testMember(t, 0, "Paul")); err != nil {
		t.Fatalf("add member: %v", err)
	}
	tooSmall := 1 // owner + 1 member need at least 2
	if err := c.Update(nil, &tooSmall); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if c.Capacity != 10 {
		t.Fatalf("failed update must not mutate capacity, got %d", c.Capacity)
	}
}

func TestReconstructCircle_OwnerNotAmongMembers(t *testing.T) {
	owner := testMember(t, 1, "John")
	others := []domain.Member{testMember(t, 2, "Paul")}

	c, err := domain.ReconstructCircle(5, "Music club", owner, 10, others)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if c.ID != 5 || len(c.Members) != 1 {
		t.Fatalf("unexpected aggregate: %+v", c)
	}

	dup := []domain.Member{owner, testMember(t, 2, "Paul")}
	if _, err := domain.ReconstructCircle(5, "Music club", owner, 10, dup); !domain.IsValidation(err) {
		t.Fatalf("owner duplicated in members: expected validation error, got %v", err)
	}
}
