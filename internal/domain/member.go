package domain

import "strings"

type Member struct {
	ID    MemberID
	Name  string
	Age   int
	Grade Grade
	Major Major
}

// NewMember 新成员，ID 由存储层分配
func NewMember(name string, age int, grade Grade, major Major) (Member, error) {
	if strings.TrimSpace(name) == "" {
		return Member{}, invalid("name", "must not be empty")
	}
	if age <= 0 {
		return Member{}, invalid("age", "must be positive")
	}
	return Member{Name: name, Age: age, Grade: grade, Major: major}, nil
}

// ReconstructMember 从存储还原；存储内容视为可信，不再校验
func ReconstructMember(id MemberID, name string, age int, grade Grade, major Major) Member {
	return Member{ID: id, Name: name, Age: age, Grade: grade, Major: major}
}
